package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ducroq/sanderveen.art/internal/models"
)

const (
	detailSegment = "/detail/"
	pageExtension = ".html"

	// Medium matches longer than this are runaway captures, not
	// material descriptions, and are discarded outright.
	maxMediumLength = 100
)

// SanderveenParser extracts painting data from sanderveen-artshop.nl
// markup. The shop's pages carry no structured product data, so every
// field comes from its own optional pattern; a pattern that does not
// match leaves its field empty and never affects the others.
type SanderveenParser struct {
	idPattern        *regexp.Regexp
	pricePattern     *regexp.Regexp
	imagePattern     *regexp.Regexp
	dimensionPattern *regexp.Regexp
	mediumPatterns   []*regexp.Regexp

	titleNL cases.Caser
	titleEN cases.Caser
}

func NewSanderveenParser() *SanderveenParser {
	return &SanderveenParser{
		idPattern:        regexp.MustCompile(`/detail/(\d+)/`),
		pricePattern:     regexp.MustCompile(`€\s*([\d.,]+)`),
		imagePattern:     regexp.MustCompile(`(?:src|href)=["']([^"']*/data/upload/Shop/images/[^"']+)["']`),
		dimensionPattern: regexp.MustCompile(`(\d+(?:[.,]\d+)?\s*x\s*\d+(?:[.,]\d+)?)\s*cm`),
		mediumPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(Olie(?:verf)?[^<.]{0,60}(?:paneel|doek|canvas|panel))`),
			regexp.MustCompile(`(?i)(Oil[^<.]{0,60}(?:panel|canvas))`),
			regexp.MustCompile(`(?i)(Acryl[^<.]{0,60}(?:paneel|doek|canvas|panel))`),
			regexp.MustCompile(`(?i)(Mixed media[^<.]{0,60})`),
		},
		titleNL: cases.Title(language.Dutch),
		titleEN: cases.Title(language.English),
	}
}

// ExtractLinks returns the detail-page paths found in a category
// listing, deduplicated in first-seen order. Malformed markup is
// tolerated; at worst fewer links are found.
func (p *SanderveenParser) ExtractLinks(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.Contains(href, detailSegment) || !strings.HasSuffix(href, pageExtension) {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})

	return links
}

// ExtractPainting derives a painting record from a detail page. Every
// extraction step is independently optional: missing patterns yield
// empty fields, never an error.
func (p *SanderveenParser) ExtractPainting(html string, url string) *models.Painting {
	painting := &models.Painting{
		URL:    url,
		Images: make([]string, 0),
	}

	painting.TitleNL, painting.TitleEN = p.titlesFromURL(url)
	painting.ID = p.extractID(url)
	painting.Price = p.extractPrice(html)
	painting.Images = p.extractImages(html)
	painting.Description = p.extractDescription(html)
	painting.Dimensions = p.extractDimensions(html)
	painting.Medium = p.extractMedium(html)

	return painting
}

// titlesFromURL derives the bilingual titles from the final URL path
// segment. A "--" separator splits Dutch and English halves; without
// one the single title fills both slots.
func (p *SanderveenParser) titlesFromURL(url string) (string, string) {
	slug := strings.TrimSuffix(url, pageExtension)
	if idx := strings.LastIndex(slug, "/"); idx >= 0 {
		slug = slug[idx+1:]
	}

	if nl, en, ok := strings.Cut(slug, "--"); ok {
		return p.titleNL.String(humanize(nl)), p.titleEN.String(humanize(en))
	}

	title := p.titleNL.String(humanize(slug))
	return title, title
}

func (p *SanderveenParser) extractID(url string) int {
	matches := p.idPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return 0
	}

	id, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return id
}

// extractPrice finds the first currency-marked token. Dots are
// thousands separators and the comma is the decimal mark, so
// "€ 1.250,50" parses to 1250.50. No match or an unparsable token
// leaves the price absent.
func (p *SanderveenParser) extractPrice(html string) *float64 {
	matches := p.pricePattern.FindStringSubmatch(html)
	if len(matches) < 2 {
		return nil
	}

	normalized := strings.ReplaceAll(matches[1], ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil
	}
	return &price
}

// extractImages collects every upload-path URL in document order,
// deduplicated. When an og:image meta is present and not already in
// the list it is inserted at the front: downstream image selection
// always takes element zero, so the meta image wins as primary.
func (p *SanderveenParser) extractImages(html string) []string {
	images := make([]string, 0)
	seen := make(map[string]struct{})

	for _, matches := range p.imagePattern.FindAllStringSubmatch(html, -1) {
		src := matches[1]
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		images = append(images, src)
	}

	if ogImage := p.extractOGImage(html); ogImage != "" {
		if _, dup := seen[ogImage]; !dup {
			images = append([]string{ogImage}, images...)
		}
	}

	return images
}

func (p *SanderveenParser) extractOGImage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	content, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	return content
}

// extractDescription takes the first div whose class hints at being a
// description container, with all tags stripped and whitespace
// collapsed.
func (p *SanderveenParser) extractDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	hints := []string{"description", "product-text", "detail"}

	var description string
	doc.Find("div[class]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, hint := range hints {
			if strings.Contains(class, hint) {
				description = collapseWhitespace(s.Text())
				return false
			}
		}
		return true
	})

	return description
}

func (p *SanderveenParser) extractDimensions(html string) string {
	matches := p.dimensionPattern.FindStringSubmatch(html)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1]) + " cm"
}

// extractMedium tries the material patterns in priority order.
func (p *SanderveenParser) extractMedium(html string) string {
	for _, pattern := range p.mediumPatterns {
		matches := pattern.FindStringSubmatch(html)
		if len(matches) < 2 {
			continue
		}

		medium := collapseWhitespace(stripTags(matches[1]))
		if medium == "" || len(medium) >= maxMediumLength {
			continue
		}
		return medium
	}
	return ""
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	slugStripPattern  = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpacesPattern = regexp.MustCompile(`[\s_]+`)
	slugDashesPattern = regexp.MustCompile(`-+`)
)

// Slugify converts a title to its URL-safe form: lowercase
// alphanumerics and single hyphens, no leading or trailing hyphen.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugSpacesPattern.ReplaceAllString(s, "-")
	s = slugDashesPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func humanize(slug string) string {
	return strings.TrimSpace(strings.ReplaceAll(slug, "-", " "))
}

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
