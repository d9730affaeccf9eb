package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ducroq/sanderveen.art/internal/config"
	"github.com/ducroq/sanderveen.art/internal/downloader"
	"github.com/ducroq/sanderveen.art/internal/fetcher"
	"github.com/ducroq/sanderveen.art/internal/manifest"
	"github.com/ducroq/sanderveen.art/internal/models"
	"github.com/ducroq/sanderveen.art/internal/parser"
	"github.com/ducroq/sanderveen.art/internal/ratelimit"
)

// ErrNothingToProcess is returned when no category listing page could
// be reached at all.
var ErrNothingToProcess = errors.New("no category listing reachable")

const defaultImageExt = ".jpg"

// Crawler drives the category -> links -> paintings pipeline and owns
// the side effects: image downloads and the manifest file.
type Crawler struct {
	cfg        *config.Config
	fetcher    fetcher.Fetcher
	parser     parser.Parser
	downloader downloader.Downloader
	limiter    ratelimit.RateLimiter
	logger     *slog.Logger
}

func New(cfg *config.Config, f fetcher.Fetcher, p parser.Parser, d downloader.Downloader, l ratelimit.RateLimiter, logger *slog.Logger) *Crawler {
	return &Crawler{
		cfg:        cfg,
		fetcher:    f,
		parser:     p,
		downloader: d,
		limiter:    l,
		logger:     logger.With("component", "crawler"),
	}
}

// Run performs a full crawl and writes the manifest. Per-category and
// per-item failures are logged and skipped; the run only fails when no
// listing page was reachable or the manifest cannot be written.
func (c *Crawler) Run(ctx context.Context) error {
	runID := uuid.New().String()
	logger := c.logger.With("run_id", runID)

	paintings, err := c.Crawl(ctx, logger)
	if err != nil {
		return err
	}

	if dups := models.DuplicateSlugs(paintings); len(dups) > 0 {
		logger.Warn("duplicate slugs in crawl result", "slugs", dups)
	}

	if err := manifest.Write(c.cfg.Output.ManifestPath, paintings); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	logger.Info("crawl completed", "paintings", len(paintings), "manifest", c.cfg.Output.ManifestPath)
	return nil
}

// Crawl walks every configured category and returns the collected
// paintings sorted by id descending. It performs image downloads but
// does not write the manifest.
func (c *Crawler) Crawl(ctx context.Context, logger *slog.Logger) ([]models.Painting, error) {
	var paintings []models.Painting
	listingsReached := 0

	for _, category := range c.cfg.Site.Categories {
		catLogger := logger.With("category", category.Name)

		listingURL := c.cfg.Site.BaseURL + category.Path
		html, err := c.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			catLogger.Warn("skipping category, listing unreachable", "url", listingURL, "error", err)
			continue
		}
		listingsReached++

		links := c.parser.ExtractLinks(html)
		catLogger.Info("found paintings in category", "count", len(links))

		for _, link := range links {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}

			painting, err := c.processItem(ctx, category.Name, link, catLogger)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				catLogger.Warn("skipping painting", "link", link, "error", err)
				continue
			}

			paintings = append(paintings, *painting)
		}
	}

	if listingsReached == 0 {
		return nil, ErrNothingToProcess
	}

	models.SortByID(paintings)
	return paintings, nil
}

func (c *Crawler) processItem(ctx context.Context, category, link string, logger *slog.Logger) (*models.Painting, error) {
	detailURL := link
	if !strings.HasPrefix(detailURL, "http") {
		detailURL = c.cfg.Site.BaseURL + link
	}

	html, err := c.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	painting := c.parser.ExtractPainting(html, link)
	painting.Category = category
	painting.Slug = parser.Slugify(painting.TitleNL)

	c.fetchPrimaryImage(painting, logger)

	return painting, nil
}

// fetchPrimaryImage downloads the first image of the record and sets
// local_image on success. Failures leave local_image empty so the
// manifest never points at a file that does not exist.
func (c *Crawler) fetchPrimaryImage(painting *models.Painting, logger *slog.Logger) {
	if len(painting.Images) == 0 {
		logger.Warn("no image found", "slug", painting.Slug)
		return
	}

	imageURL := painting.Images[0]
	if !strings.HasPrefix(imageURL, "http") {
		imageURL = c.cfg.Site.BaseURL + imageURL
	}

	filename := painting.Slug + imageExt(imageURL)
	dest := filepath.Join(c.cfg.Output.ImageDir, painting.Category, filename)

	if err := c.downloader.Download(imageURL, dest); err != nil {
		logger.Warn("image download failed", "slug", painting.Slug, "url", imageURL, "error", err)
		return
	}

	painting.LocalImage = path.Join(c.cfg.Output.ImagePathPrefix, painting.Category, filename)
}

func imageExt(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return defaultImageExt
	}

	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return defaultImageExt
}
