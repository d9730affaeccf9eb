package models

import (
	"regexp"
	"sort"
)

// Painting is one manifest entry for a crawled painting detail page.
type Painting struct {
	ID          int      `json:"id"`
	Slug        string   `json:"slug"`
	TitleNL     string   `json:"title_nl"`
	TitleEN     string   `json:"title_en"`
	Price       *float64 `json:"price,omitempty"`
	Dimensions  string   `json:"dimensions"`
	Medium      string   `json:"medium"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	LocalImage  string   `json:"local_image"`
	Category    string   `json:"category"`
	URL         string   `json:"url"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is lowercase alphanumerics and single
// hyphens with no leading or trailing hyphen.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func (p *Painting) Validate() []string {
	var problems []string

	if !ValidSlug(p.Slug) {
		problems = append(problems, "invalid slug")
	}

	if p.URL == "" {
		problems = append(problems, "source URL is required")
	}

	seen := make(map[string]struct{}, len(p.Images))
	for _, img := range p.Images {
		if _, dup := seen[img]; dup {
			problems = append(problems, "duplicate image URL: "+img)
		}
		seen[img] = struct{}{}
	}

	return problems
}

// SortByID orders paintings by id descending. The sort is stable so
// ties and zero ids keep their discovery order, which makes the
// manifest deterministic for a given crawl.
func SortByID(paintings []Painting) {
	sort.SliceStable(paintings, func(i, j int) bool {
		return paintings[i].ID > paintings[j].ID
	})
}

// DuplicateSlugs returns every slug appearing more than once. Slug
// collisions are a data-quality defect in the source shop, not a
// crawl fault, so callers warn rather than fail.
func DuplicateSlugs(paintings []Painting) []string {
	counts := make(map[string]int, len(paintings))
	for _, p := range paintings {
		counts[p.Slug]++
	}

	var dups []string
	for _, p := range paintings {
		if counts[p.Slug] > 1 {
			dups = append(dups, p.Slug)
			counts[p.Slug] = 0
		}
	}
	return dups
}
