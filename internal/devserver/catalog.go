package devserver

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/five82/shopper/internal/backend"
)

// SampleProducts is the detection result returned for every upload.
func SampleProducts() []backend.DetectedProduct {
	return []backend.DetectedProduct{
		{
			Type:              "jacket",
			Color:             "olive",
			Pattern:           "solid",
			Material:          "cotton twill",
			BrandText:         "Carhartt",
			Description:       "Cropped utility jacket with patch pockets",
			AverageConfidence: ptr(0.93),
			FramesSeen:        []string{"00:01", "00:03", "00:04", "00:09"},
		},
		{
			Type:              "dress",
			Color:             "cream",
			Pattern:           "floral",
			Material:          "linen",
			Description:       "Midi wrap dress with flutter sleeves",
			AverageConfidence: ptr(0.78),
			FramesSeen:        []string{"00:05", "00:06"},
		},
		{
			Type:              "bag",
			Color:             "tan",
			Material:          "leather",
			Description:       "Structured crossbody bag",
			AverageConfidence: ptr(0.54),
			FramesSeen:        []string{"00:11"},
		},
	}
}

// CatalogMatches builds store catalog hits for product. Prices are numbers,
// as a storefront API reports them.
func CatalogMatches(p backend.DetectedProduct) []backend.SimilarItem {
	name := productName(p)
	return []backend.SimilarItem{
		{
			Title:       name,
			Price:       backend.Price{Amount: 59, Set: true},
			Vendor:      "Shopper Demo Store",
			Description: "Closest match in the demo catalog.",
			ImageURL:    "https://cdn.example.com/catalog/" + slug(name) + ".jpg",
			URL:         "https://store.example.com/products/" + slug(name),
		},
		{
			Title:       "Essential " + name,
			Price:       backend.Price{Amount: 34.5, Set: true},
			Vendor:      "Shopper Demo Store",
			Description: "A simpler take at a lower price.",
			URL:         "https://store.example.com/products/essential-" + slug(name),
		},
	}
}

// WebMatches builds web search hits for product. Prices are preformatted
// strings and the first result carries no link.
func WebMatches(p backend.DetectedProduct) []backend.SimilarItem {
	name := productName(p)
	rating := 4.6
	return []backend.SimilarItem{
		{
			Name:        name + " (similar style)",
			Price:       backend.Price{Text: "$72.00", Set: true},
			Rating:      &rating,
			Vendor:      "Example Boutique",
			Description: "Found by searching the web for " + strings.ToLower(name) + ".",
		},
		{
			Name:   "Vintage " + name,
			Price:  backend.Price{Text: "from $25", Set: true},
			Vendor: "Resale Market",
			URL:    "https://resale.example.com/search?q=" + slug(name),
		},
		{
			Name: name + " dupe",
			URL:  "https://marketplace.example.com/item/" + slug(name),
		},
	}
}

func productName(p backend.DetectedProduct) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.Color, p.Type} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, capitalize(s))
		}
	}
	if len(parts) == 0 {
		return "Fashion Item"
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}

func ptr(v float64) *float64 { return &v }
