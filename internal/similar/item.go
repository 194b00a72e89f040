package similar

import (
	"strconv"
	"strings"

	"github.com/five82/shopper/internal/backend"
)

// ItemView holds the display fields of one result. Empty strings mean the
// field is absent and must not be rendered.
type ItemView struct {
	Title       string
	Price       string
	Rating      string
	Vendor      string
	Description string
	ImageURL    string
	URL         string
	// CanView is false when the item has no outbound link; the view action
	// is then disabled.
	CanView bool
}

// Describe maps an item to its display fields.
func Describe(item backend.SimilarItem) ItemView {
	v := ItemView{
		Title:       item.DisplayTitle(),
		Description: strings.TrimSpace(item.Description),
		ImageURL:    strings.TrimSpace(item.ImageURL),
		URL:         strings.TrimSpace(item.URL),
		CanView:     item.HasLink(),
	}
	if !item.Price.IsZero() {
		v.Price = item.Price.String()
	}
	if item.Rating != nil && *item.Rating != 0 {
		v.Rating = strconv.FormatFloat(*item.Rating, 'f', -1, 64)
	}
	if vendor := strings.TrimSpace(item.Vendor); vendor != "" {
		v.Vendor = "by " + vendor
	}
	return v
}

// CountLabel is the heading above a result list.
func CountLabel(n int) string {
	if n == 1 {
		return "Found 1 similar item"
	}
	return "Found " + strconv.Itoa(n) + " similar items"
}
