package content

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ducroq/sanderveen.art/internal/config"
	"github.com/ducroq/sanderveen.art/internal/models"
)

// featuredPriceThreshold marks higher-priced works as featured on the
// site.
const featuredPriceThreshold = 900

// Section index front matter, one file per language. Both share the
// "paintings" translationKey so Hugo links them.
const (
	dutchSectionIndex = `---
title: "Schilderijen"
description: "Bekijk het volledige portfolio van schilderijen. Olieverf, acryl en mixed media op paneel en doek."
translationKey: "paintings"
---
`
	englishSectionIndex = `---
title: "Paintings"
description: "Browse the full portfolio of paintings. Oil, acrylic and mixed media on panel and canvas."
translationKey: "paintings"
---
`
)

// frontMatter is the Hugo front matter written for each painting, in
// both languages, keyed by the slug as translationKey.
type frontMatter struct {
	Title          string `yaml:"title"`
	Date           string `yaml:"date"`
	Draft          bool   `yaml:"draft"`
	TranslationKey string `yaml:"translationKey"`
	Type           string `yaml:"type"`
	Medium         string `yaml:"medium"`
	Dimensions     string `yaml:"dimensions"`
	Year           string `yaml:"year"`
	Price          string `yaml:"price"`
	Status         string `yaml:"status"`
	Featured       bool   `yaml:"featured"`
	Weight         int    `yaml:"weight"`
	Image          string `yaml:"image"`
}

// Generator renders Hugo content files from a crawl manifest. It is
// the sole consumer of the manifest and tolerates every optional
// field being empty: absent price, empty dimensions/medium, and an
// empty local_image all produce valid content files.
type Generator struct {
	cfg    config.ContentConfig
	logger *slog.Logger
}

func NewGenerator(cfg config.ContentConfig, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logger.With("component", "content_generator"),
	}
}

// Generate writes two content files per painting (Dutch and English)
// plus the two fixed section index files. Returns the number of
// painting files written.
func (g *Generator) Generate(paintings []models.Painting) (int, error) {
	for _, dir := range []string{g.cfg.DutchDir, g.cfg.EnglishDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create content dir: %w", err)
		}
	}

	written := 0
	for i, painting := range paintings {
		weight := (i + 1) * 10

		nlPath := filepath.Join(g.cfg.DutchDir, painting.Slug+".md")
		if err := g.writePainting(nlPath, g.dutchFrontMatter(painting, weight), painting.Description); err != nil {
			return written, err
		}
		written++

		enPath := filepath.Join(g.cfg.EnglishDir, painting.Slug+".md")
		if err := g.writePainting(enPath, g.englishFrontMatter(painting, weight), painting.Description); err != nil {
			return written, err
		}
		written++

		g.logger.Debug("generated painting content", "slug", painting.Slug)
	}

	if err := g.writeIndexes(); err != nil {
		return written, err
	}

	return written, nil
}

func (g *Generator) dutchFrontMatter(p models.Painting, weight int) frontMatter {
	fm := g.baseFrontMatter(p, weight)
	fm.Title = FixDutchTitle(p.TitleNL)
	fm.Medium = DutchMedium(p.Medium)
	return fm
}

func (g *Generator) englishFrontMatter(p models.Painting, weight int) frontMatter {
	fm := g.baseFrontMatter(p, weight)
	fm.Title = p.TitleEN
	fm.Medium = TranslateMedium(DutchMedium(p.Medium))
	return fm
}

func (g *Generator) baseFrontMatter(p models.Painting, weight int) frontMatter {
	return frontMatter{
		Date:           "2025-01-01",
		Draft:          false,
		TranslationKey: p.Slug,
		Type:           "schilderijen",
		Dimensions:     p.Dimensions,
		Year:           "",
		Price:          formatPrice(p.Price),
		Status:         "available",
		Featured:       p.Price != nil && *p.Price >= featuredPriceThreshold,
		Weight:         weight,
		Image:          p.LocalImage,
	}
}

func (g *Generator) writePainting(path string, fm frontMatter, body string) error {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("marshal front matter: %w", err)
	}
	buf.Write(meta)
	buf.WriteString("---\n")

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write content file: %w", err)
	}
	return nil
}

func (g *Generator) writeIndexes() error {
	if err := os.WriteFile(filepath.Join(g.cfg.DutchDir, "_index.md"), []byte(dutchSectionIndex), 0o644); err != nil {
		return fmt.Errorf("write section index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.cfg.EnglishDir, "_index.md"), []byte(englishSectionIndex), 0o644); err != nil {
		return fmt.Errorf("write section index: %w", err)
	}
	return nil
}

// formatPrice renders the optional price for front matter: absent
// becomes empty, whole amounts drop the decimals.
func formatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	if *price == float64(int(*price)) {
		return fmt.Sprintf("%d", int(*price))
	}
	return fmt.Sprintf("%.2f", *price)
}
