package videolink

import (
	"context"
	"strings"
	"time"

	"github.com/five82/shopper/internal/backend"
)

// DefaultSimulatedDelay matches how long the demo pretends to work.
const DefaultSimulatedDelay = 3 * time.Second

// Analyzer turns a link into detected products.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) ([]backend.DetectedProduct, error)
}

// SimulatedAnalyzer stands in for URL analysis, which the backend does not
// offer: it waits Delay and returns DemoProducts. Results are never derived
// from the link.
type SimulatedAnalyzer struct {
	Delay time.Duration
}

// Ensure SimulatedAnalyzer implements Analyzer at compile time.
var _ Analyzer = SimulatedAnalyzer{}

// AnalyzeURL implements Analyzer.
func (s SimulatedAnalyzer) AnalyzeURL(ctx context.Context, url string) ([]backend.DetectedProduct, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return DemoProducts(), nil
}

// DemoProducts is the fixed example result set for link analysis.
func DemoProducts() []backend.DetectedProduct {
	return []backend.DetectedProduct{
		{
			Type:              "shirt",
			Color:             "navy blue",
			Pattern:           "striped",
			Material:          "cotton",
			BrandText:         "Nike",
			Description:       "Classic navy striped cotton shirt with modern athletic fit and moisture-wicking technology",
			AverageConfidence: confidence(0.92),
			FramesSeen:        []string{"0:05", "0:12", "0:18"},
		},
		{
			Type:              "jeans",
			Color:             "dark indigo",
			Material:          "denim",
			Description:       "Premium dark wash skinny jeans with stretch comfort",
			AverageConfidence: confidence(0.87),
			FramesSeen:        []string{"0:08", "0:15", "0:22", "0:28"},
		},
		{
			Type:              "sneakers",
			Color:             "white",
			BrandText:         "Adidas",
			Material:          "leather",
			Description:       "Clean white leather sneakers with classic three-stripe design",
			AverageConfidence: confidence(0.94),
			FramesSeen:        []string{"0:10", "0:20", "0:25"},
		},
		{
			Type:              "watch",
			Color:             "silver",
			Material:          "stainless steel",
			BrandText:         "Apple",
			Description:       "Modern smartwatch with silver stainless steel band",
			AverageConfidence: confidence(0.78),
			FramesSeen:        []string{"0:07", "0:14"},
		},
	}
}

func confidence(v float64) *float64 { return &v }
