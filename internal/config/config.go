package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Site    SiteConfig
	Scraper ScraperConfig
	Output  OutputConfig
	Content ContentConfig
	Preview PreviewConfig
	Logging LoggingConfig
}

type SiteConfig struct {
	BaseURL    string
	Categories []Category
}

// Category maps a category tag to its listing-page path on the shop.
// Order matters: categories are crawled in the order listed.
type Category struct {
	Name string
	Path string
}

type ScraperConfig struct {
	UserAgent       string
	RequestTimeout  time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration
	PolitenessDelay time.Duration
}

type OutputConfig struct {
	ManifestPath string
	ImageDir     string
	// ImagePathPrefix is the prefix recorded in each manifest entry's
	// local_image field, relative to the site's asset root.
	ImagePathPrefix string
}

type ContentConfig struct {
	DutchDir   string
	EnglishDir string
}

type PreviewConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Site: SiteConfig{
			BaseURL:    getEnvOrDefault("SITE_BASE_URL", "https://sanderveen-artshop.nl"),
			Categories: defaultCategories(),
		},
		Scraper: ScraperConfig{
			UserAgent:       getEnvOrDefault("SCRAPER_USER_AGENT", "Mozilla/5.0 (sanderveen.art migration script)"),
			RequestTimeout:  getDurationOrDefault("SCRAPER_REQUEST_TIMEOUT", 30*time.Second),
			MaxAttempts:     getIntOrDefault("SCRAPER_MAX_ATTEMPTS", 3),
			RetryDelay:      getDurationOrDefault("SCRAPER_RETRY_DELAY", 2*time.Second),
			PolitenessDelay: getDurationOrDefault("SCRAPER_POLITENESS_DELAY", 500*time.Millisecond),
		},
		Output: OutputConfig{
			ManifestPath:    getEnvOrDefault("OUTPUT_MANIFEST_PATH", "manifest.json"),
			ImageDir:        getEnvOrDefault("OUTPUT_IMAGE_DIR", "assets/images/paintings"),
			ImagePathPrefix: getEnvOrDefault("OUTPUT_IMAGE_PATH_PREFIX", "images/paintings"),
		},
		Content: ContentConfig{
			DutchDir:   getEnvOrDefault("CONTENT_NL_DIR", "content/schilderijen"),
			EnglishDir: getEnvOrDefault("CONTENT_EN_DIR", "content/en/paintings"),
		},
		Preview: PreviewConfig{
			Addr: getEnvOrDefault("PREVIEW_ADDR", ":8080"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Site.BaseURL, "http") {
		return fmt.Errorf("SITE_BASE_URL must be an absolute URL")
	}

	if len(c.Site.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}

	if c.Scraper.MaxAttempts < 1 {
		return fmt.Errorf("SCRAPER_MAX_ATTEMPTS must be at least 1")
	}

	if c.Scraper.PolitenessDelay < 0 {
		return fmt.Errorf("SCRAPER_POLITENESS_DELAY cannot be negative")
	}

	return nil
}

// SITE_CATEGORIES overrides the category map as comma-separated
// name=path pairs, e.g. "abstract=/webshop/a/,modern=/webshop/m/".
func defaultCategories() []Category {
	raw := os.Getenv("SITE_CATEGORIES")
	if raw == "" {
		return []Category{
			{Name: "abstract", Path: "/webshop/schilderijenpaintings/abstract/"},
			{Name: "magisch-realisme", Path: "/webshop/schilderijenpaintings/magisch-realisme--reverso-context/"},
		}
	}

	var categories []Category
	for _, pair := range strings.Split(raw, ",") {
		name, path, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || path == "" {
			continue
		}
		categories = append(categories, Category{Name: name, Path: path})
	}
	return categories
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
