package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DetectedProduct is one fashion item reported by /analyze-video.
type DetectedProduct struct {
	Type              string   `json:"type,omitempty"`
	Color             string   `json:"color,omitempty"`
	Pattern           string   `json:"pattern,omitempty"`
	Material          string   `json:"material,omitempty"`
	BrandText         string   `json:"brand_text,omitempty"`
	Description       string   `json:"description,omitempty"`
	AverageConfidence *float64 `json:"average_confidence,omitempty"`
	FramesSeen        []string `json:"frames_seen,omitempty"`
}

// Confidence returns the average confidence, treating a missing value as zero.
func (p DetectedProduct) Confidence() float64 {
	if p.AverageConfidence == nil {
		return 0
	}
	return *p.AverageConfidence
}

// AnalyzeResponse mirrors the /analyze-video envelope.
type AnalyzeResponse struct {
	Analysis Analysis `json:"analysis"`
}

// Analysis holds the consolidated detection output.
type Analysis struct {
	ConsolidatedProducts []DetectedProduct `json:"consolidated_products"`
}

// Products returns the consolidated products, never nil.
func (r *AnalyzeResponse) Products() []DetectedProduct {
	if r == nil || r.Analysis.ConsolidatedProducts == nil {
		return []DetectedProduct{}
	}
	return r.Analysis.ConsolidatedProducts
}

// SimilarResponse mirrors /find-similar and /find-similar-gemini. Backends
// populate either similar_items or products.
type SimilarResponse struct {
	SimilarItems []SimilarItem `json:"similar_items,omitempty"`
	Products     []SimilarItem `json:"products,omitempty"`
}

// Items returns similar_items when present, then products, then an empty slice.
func (r *SimilarResponse) Items() []SimilarItem {
	if r == nil {
		return []SimilarItem{}
	}
	if len(r.SimilarItems) > 0 {
		return r.SimilarItems
	}
	if len(r.Products) > 0 {
		return r.Products
	}
	return []SimilarItem{}
}

// SimilarItem is a catalog or web-search match.
type SimilarItem struct {
	Title       string   `json:"title,omitempty"`
	Name        string   `json:"name,omitempty"`
	Price       Price    `json:"price,omitzero"`
	Rating      *float64 `json:"rating,omitempty"`
	Vendor      string   `json:"vendor,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// DisplayTitle picks title, then name, then a generic label.
func (s SimilarItem) DisplayTitle() string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return "Similar Product"
}

// HasLink reports whether the item can be opened.
func (s SimilarItem) HasLink() bool {
	return strings.TrimSpace(s.URL) != ""
}

// Price accepts either a JSON number or a preformatted string.
type Price struct {
	Amount float64
	Text   string
	Set    bool
}

// IsZero lets encoding/json omit unset prices.
func (p Price) IsZero() bool {
	return !p.Set
}

// String renders the price the way cards show it: strings verbatim, numbers
// with two decimals, both prefixed with a dollar sign.
func (p Price) String() string {
	if !p.Set {
		return ""
	}
	if p.Text != "" {
		return "$" + p.Text
	}
	return "$" + strconv.FormatFloat(p.Amount, 'f', 2, 64)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = Price{}
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("decode price string: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			*p = Price{}
			return nil
		}
		*p = Price{Text: text, Set: true}
		return nil
	}
	var amount float64
	if err := json.Unmarshal(trimmed, &amount); err != nil {
		return fmt.Errorf("decode price number: %w", err)
	}
	// A zero price is treated as absent, matching how cards hide it.
	if amount == 0 {
		*p = Price{}
		return nil
	}
	*p = Price{Amount: amount, Set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Set {
		return []byte("null"), nil
	}
	if p.Text != "" {
		return json.Marshal(p.Text)
	}
	return json.Marshal(p.Amount)
}

// HealthStatus is the arbitrary liveness payload returned by /health.
type HealthStatus map[string]any

// Status returns the conventional "status" field when present.
func (h HealthStatus) Status() string {
	if h == nil {
		return ""
	}
	if v, ok := h["status"].(string); ok {
		return v
	}
	return ""
}
