package parser

import (
	"github.com/ducroq/sanderveen.art/internal/models"
)

type Parser interface {
	ExtractLinks(html string) []string
	ExtractPainting(html string, url string) *models.Painting
}
