// Package results turns detected products into what the results pane shows:
// aggregate stats, a quality badge, per-card fields and the empty and
// loading placeholders. Everything here is a pure function of its inputs.
package results

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/five82/shopper/internal/backend"
)

// SkeletonCount is how many placeholder cards show while loading.
const SkeletonCount = 3

// Confidence thresholds shared by the meter and the badge.
const (
	HighThreshold   = 0.8
	MediumThreshold = 0.6
	TopPickMinimum  = 0.9
)

// Level buckets a confidence score.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

// LevelOf buckets c at the high and medium thresholds.
func LevelOf(c float64) Level {
	switch {
	case c >= HighThreshold:
		return LevelHigh
	case c >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelMedium:
		return "medium"
	default:
		return "low"
	}
}

// Caption is the line under a confidence meter.
func (l Level) Caption() string {
	switch l {
	case LevelHigh:
		return "High accuracy detection"
	case LevelMedium:
		return "Moderate confidence level"
	default:
		return "Low confidence - verify manually"
	}
}

// Badge is the quality label for a whole result set.
func (l Level) Badge() string {
	switch l {
	case LevelHigh:
		return "High Accuracy"
	case LevelMedium:
		return "Good Results"
	default:
		return "Review Needed"
	}
}

// Stats aggregates a result set.
type Stats struct {
	Count             int
	AverageConfidence float64
	DistinctTypes     int
}

// Level returns the badge level for the set.
func (s Stats) Level() Level { return LevelOf(s.AverageConfidence) }

// Summarize computes the aggregate stats. Missing confidence counts as zero
// and an empty list yields zero values.
func Summarize(products []backend.DetectedProduct) Stats {
	if len(products) == 0 {
		return Stats{}
	}
	types := make(map[string]struct{}, len(products))
	for _, p := range products {
		types[p.Type] = struct{}{}
	}
	return Stats{
		Count:             len(products),
		AverageConfidence: AverageConfidence(products),
		DistinctTypes:     len(types),
	}
}

// AverageConfidence returns the mean confidence, or 0 for no products.
func AverageConfidence(products []backend.DetectedProduct) float64 {
	if len(products) == 0 {
		return 0
	}
	var total float64
	for _, p := range products {
		total += p.Confidence()
	}
	return total / float64(len(products))
}

// Percent rounds a [0,1] score to a whole percentage.
func Percent(c float64) int {
	return int(math.Round(c * 100))
}

// CountLabel reads "1 product found" or "N products found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 product found"
	}
	return strconv.Itoa(n) + " products found"
}

// CompletionMessage is the body of the banner shown once products exist.
func CompletionMessage(n int) string {
	return "We've successfully identified " + strconv.Itoa(n) + " fashion items in your video."
}

func plural(n int, word string) string {
	s := strconv.Itoa(n) + " " + word
	if n != 1 {
		s += "s"
	}
	return s
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
