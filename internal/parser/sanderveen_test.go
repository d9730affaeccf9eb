package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		html     string
		expected []string
	}{
		{
			name: "Qualifying links in document order",
			html: `<html><body>
				<a href="/webshop/schilderijenpaintings/abstract/detail/1035898/de-kloof--the-gap.html">De kloof</a>
				<a href="/webshop/schilderijenpaintings/abstract/detail/1035897/toro.html">Toro</a>
			</body></html>`,
			expected: []string{
				"/webshop/schilderijenpaintings/abstract/detail/1035898/de-kloof--the-gap.html",
				"/webshop/schilderijenpaintings/abstract/detail/1035897/toro.html",
			},
		},
		{
			name: "Non-qualifying links are skipped",
			html: `<html><body>
				<a href="/webshop/schilderijenpaintings/abstract/detail/1035898/de-kloof.html">ok</a>
				<a href="/webshop/schilderijenpaintings/abstract/overview.html">no detail segment</a>
				<a href="/webshop/schilderijenpaintings/abstract/detail/1035897/">no extension</a>
				<a href="https://example.com/about">external</a>
			</body></html>`,
			expected: []string{
				"/webshop/schilderijenpaintings/abstract/detail/1035898/de-kloof.html",
			},
		},
		{
			name: "Duplicates keep first occurrence",
			html: `<html><body>
				<a href="/x/detail/1/a.html">first</a>
				<a href="/x/detail/2/b.html">second</a>
				<a href="/x/detail/1/a.html">again</a>
			</body></html>`,
			expected: []string{"/x/detail/1/a.html", "/x/detail/2/b.html"},
		},
		{
			name: "Unclosed markup is tolerated",
			html: `<div><a href="/x/detail/1/a.html">broken<p><a href="/x/detail/2/b.html">`,
			expected: []string{"/x/detail/1/a.html", "/x/detail/2/b.html"},
		},
		{
			name:     "No links",
			html:     `<html><body><p>nothing here</p></body></html>`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.ExtractLinks(tt.html))
		})
	}
}

func TestBilingualTitleSplit(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name       string
		url        string
		expectedNL string
		expectedEN string
	}{
		{
			name:       "Bilingual slug splits on double hyphen",
			url:        "/x/detail/1035898/de-kloof--the-gap.html",
			expectedNL: "De Kloof",
			expectedEN: "The Gap",
		},
		{
			name:       "Single title fills both slots",
			url:        "/x/detail/1035898/de-kloof.html",
			expectedNL: "De Kloof",
			expectedEN: "De Kloof",
		},
		{
			name:       "Multi-word halves",
			url:        "/x/detail/1/de-vorst-en-het-volk--the-power-and-the-people.html",
			expectedNL: "De Vorst En Het Volk",
			expectedEN: "The Power And The People",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting("<html></html>", tt.url)
			assert.Equal(t, tt.expectedNL, painting.TitleNL)
			assert.Equal(t, tt.expectedEN, painting.TitleEN)
		})
	}
}

func TestExtractID(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		url      string
		expected int
	}{
		{name: "ID after detail marker", url: "/x/detail/1035898/toro.html", expected: 1035898},
		{name: "No detail marker", url: "/x/overview/toro.html", expected: 0},
		{name: "Detail without digits", url: "/x/detail/toro.html", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting("<html></html>", tt.url)
			assert.Equal(t, tt.expected, painting.ID)
		})
	}
}

func TestExtractPrice(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		html     string
		expected *float64
	}{
		{
			name:     "Thousands dot and decimal comma",
			html:     `<span class="price">€ 1.250,50</span>`,
			expected: floatPtr(1250.50),
		},
		{
			name:     "Whole amount",
			html:     `<span>€ 850</span>`,
			expected: floatPtr(850),
		},
		{
			name:     "No currency marker yields absent price",
			html:     `<span>1.250,50</span>`,
			expected: nil,
		},
		{
			name:     "Empty page",
			html:     ``,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting(tt.html, "/x/detail/1/a.html")
			if tt.expected == nil {
				assert.Nil(t, painting.Price)
			} else {
				require.NotNil(t, painting.Price)
				assert.InDelta(t, *tt.expected, *painting.Price, 0.001)
			}
		})
	}
}

func TestExtractImages(t *testing.T) {
	parser := NewSanderveenParser()

	t.Run("Deduplicated in document order", func(t *testing.T) {
		html := `<html><body>
			<img src="/data/upload/Shop/images/a.jpg">
			<a href="/data/upload/Shop/images/b.jpg">full size</a>
			<img src="/data/upload/Shop/images/a.jpg">
			<img src="/data/upload/Shop/images/c.jpg">
		</body></html>`

		painting := parser.ExtractPainting(html, "/x/detail/1/a.html")
		assert.Equal(t, []string{
			"/data/upload/Shop/images/a.jpg",
			"/data/upload/Shop/images/b.jpg",
			"/data/upload/Shop/images/c.jpg",
		}, painting.Images)
	})

	t.Run("New og:image is inserted first", func(t *testing.T) {
		html := `<html><head>
			<meta property="og:image" content="https://cdn.example.com/data/hero.jpg">
		</head><body>
			<img src="/data/upload/Shop/images/a.jpg">
			<img src="/data/upload/Shop/images/b.jpg">
		</body></html>`

		painting := parser.ExtractPainting(html, "/x/detail/1/a.html")
		assert.Equal(t, []string{
			"https://cdn.example.com/data/hero.jpg",
			"/data/upload/Shop/images/a.jpg",
			"/data/upload/Shop/images/b.jpg",
		}, painting.Images)
	})

	t.Run("Known og:image keeps its position", func(t *testing.T) {
		html := `<html><head>
			<meta property="og:image" content="/data/upload/Shop/images/b.jpg">
		</head><body>
			<img src="/data/upload/Shop/images/a.jpg">
			<img src="/data/upload/Shop/images/b.jpg">
		</body></html>`

		painting := parser.ExtractPainting(html, "/x/detail/1/a.html")
		assert.Equal(t, []string{
			"/data/upload/Shop/images/a.jpg",
			"/data/upload/Shop/images/b.jpg",
		}, painting.Images)
	})

	t.Run("No images", func(t *testing.T) {
		painting := parser.ExtractPainting("<html><body><img src='/other/x.jpg'></body></html>", "/x/detail/1/a.html")
		assert.Empty(t, painting.Images)
	})
}

func TestExtractDimensions(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{name: "Whole numbers", html: `<p>130 x 80 cm</p>`, expected: "130 x 80 cm"},
		{name: "Decimal comma", html: `<p>75,5 x 62 cm</p>`, expected: "75,5 x 62 cm"},
		{name: "Decimal point", html: `<p>60.5 x 53 cm</p>`, expected: "60.5 x 53 cm"},
		{name: "No unit no match", html: `<p>130 x 80</p>`, expected: ""},
		{name: "Absent", html: `<p>Olieverf op paneel</p>`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting(tt.html, "/x/detail/1/a.html")
			assert.Equal(t, tt.expected, painting.Dimensions)
		})
	}
}

func TestExtractMedium(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "Oil on panel in Dutch",
			html:     `<p>Olieverf op paneel</p>`,
			expected: "Olieverf op paneel",
		},
		{
			name:     "Oil shorthand",
			html:     `<p>Olie en bladgoud op doek</p>`,
			expected: "Olie en bladgoud op doek",
		},
		{
			name:     "English oil",
			html:     `<p>Oil paint on canvas</p>`,
			expected: "Oil paint on canvas",
		},
		{
			name:     "Acrylic",
			html:     `<p>Acrylverf en pigment op paneel</p>`,
			expected: "Acrylverf en pigment op paneel",
		},
		{
			name:     "Mixed media",
			html:     `<p>Mixed media met epoxy</p>`,
			expected: "Mixed media met epoxy",
		},
		{
			name:     "Capture stops at sentence boundary",
			html:     `<p>Olieverf op paneel. Het werk is ingelijst.</p>`,
			expected: "Olieverf op paneel",
		},
		{
			name:     "Absent",
			html:     `<p>Een abstract werk.</p>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting(tt.html, "/x/detail/1/a.html")
			assert.Equal(t, tt.expected, painting.Medium)
		})
	}
}

func TestExtractDescription(t *testing.T) {
	parser := NewSanderveenParser()

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "Tags stripped and whitespace collapsed",
			html: `<div class="product-description">
				<p>Een  schilderij over   <strong>de kloof</strong>
				in de samenleving.</p>
			</div>`,
			expected: "Een schilderij over de kloof in de samenleving.",
		},
		{
			name:     "Detail class hint",
			html:     `<div class="shop-detail-text">Abstract werk.</div>`,
			expected: "Abstract werk.",
		},
		{
			name:     "No description container",
			html:     `<div class="header">Welkom</div>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			painting := parser.ExtractPainting(tt.html, "/x/detail/1/a.html")
			assert.Equal(t, tt.expected, painting.Description)
		})
	}
}

func TestGracefulPartialExtraction(t *testing.T) {
	parser := NewSanderveenParser()

	// Dimensions pattern is absent; everything else still extracts.
	html := `<html><head>
		<meta property="og:image" content="/data/upload/Shop/images/hero.jpg">
	</head><body>
		<div class="product-description">Olieverf op paneel, een winterlandschap.</div>
		<span>€ 675</span>
	</body></html>`

	painting := parser.ExtractPainting(html, "/x/detail/1035890/winter.html")

	assert.Equal(t, 1035890, painting.ID)
	assert.Equal(t, "Winter", painting.TitleNL)
	assert.Equal(t, "", painting.Dimensions)
	assert.Equal(t, "Olieverf op paneel", painting.Medium)
	require.NotNil(t, painting.Price)
	assert.InDelta(t, 675, *painting.Price, 0.001)
	assert.Equal(t, []string{"/data/upload/Shop/images/hero.jpg"}, painting.Images)
	assert.NotEmpty(t, painting.Description)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Title case to hyphens", input: "De Kloof", expected: "de-kloof"},
		{name: "Punctuation stripped", input: "Missie: volbracht!", expected: "missie-volbracht"},
		{name: "Underscores and runs collapse", input: "het__getal  14", expected: "het-getal-14"},
		{name: "Leading and trailing junk", input: "  -Toro- ", expected: "toro"},
		{name: "Diacritics dropped", input: "Carré", expected: "carr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			assert.Equal(t, tt.expected, got)
			// Deterministic and idempotent.
			assert.Equal(t, got, Slugify(tt.input))
			assert.Equal(t, got, Slugify(got))
		})
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
