package results

import (
	"math"
	"testing"

	"github.com/five82/shopper/internal/backend"
)

func conf(v float64) *float64 { return &v }

func TestAverageConfidence(t *testing.T) {
	products := []backend.DetectedProduct{
		{AverageConfidence: conf(0.9)},
		{AverageConfidence: conf(0.7)},
	}
	if got := AverageConfidence(products); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("AverageConfidence = %v, want 0.8", got)
	}
	if got := AverageConfidence(nil); got != 0 {
		t.Fatalf("AverageConfidence(nil) = %v, want 0", got)
	}
}

func TestMissingConfidenceCountsAsZero(t *testing.T) {
	products := []backend.DetectedProduct{{AverageConfidence: conf(1)}, {}}
	if got := AverageConfidence(products); got != 0.5 {
		t.Fatalf("AverageConfidence = %v, want 0.5", got)
	}
}

func TestSummarize(t *testing.T) {
	products := []backend.DetectedProduct{
		{Type: "shirt", AverageConfidence: conf(0.9)},
		{Type: "shirt", AverageConfidence: conf(0.5)},
		{Type: "watch", AverageConfidence: conf(0.7)},
	}
	s := Summarize(products)
	if s.Count != 3 || s.DistinctTypes != 2 {
		t.Fatalf("Summarize = %#v", s)
	}
	if s.Level() != LevelMedium || s.Level().Badge() != "Good Results" {
		t.Fatalf("Level = %v badge %q", s.Level(), s.Level().Badge())
	}
	if empty := Summarize(nil); empty != (Stats{}) {
		t.Fatalf("Summarize(nil) = %#v", empty)
	}
}

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		c     float64
		level Level
		badge string
	}{
		{0.95, LevelHigh, "High Accuracy"},
		{0.8, LevelHigh, "High Accuracy"},
		{0.79, LevelMedium, "Good Results"},
		{0.6, LevelMedium, "Good Results"},
		{0.59, LevelLow, "Review Needed"},
		{0, LevelLow, "Review Needed"},
	}
	for _, tc := range cases {
		l := LevelOf(tc.c)
		if l != tc.level || l.Badge() != tc.badge {
			t.Fatalf("LevelOf(%v) = %v/%q, want %v/%q", tc.c, l, l.Badge(), tc.level, tc.badge)
		}
	}
	if LevelLow.Caption() != "Low confidence - verify manually" {
		t.Fatalf("unexpected low caption %q", LevelLow.Caption())
	}
}

func TestBuildModes(t *testing.T) {
	products := []backend.DetectedProduct{{Type: "shirt"}, {Type: "jeans"}, {Type: "watch"}}

	if v := Build(products, true, true); v.Mode != ModeLoading || len(v.Cards) != 0 {
		t.Fatalf("loading view = %#v", v)
	}
	if v := Build(nil, false, false); v.Mode != ModeWelcome {
		t.Fatalf("initial view mode = %v", v.Mode)
	}
	v := Build(nil, false, true)
	if v.Mode != ModeEmpty || v.Stats.AverageConfidence != 0 {
		t.Fatalf("empty view = %#v", v)
	}
	if s, ok := EmptyStateFor(ModeEmpty); !ok || s.Title != "No Fashion Items Found" {
		t.Fatalf("EmptyStateFor(ModeEmpty) = %#v", s)
	}
	v = Build(products, false, true)
	if v.Mode != ModeProducts || len(v.Cards) != 3 || v.Stats.Count != 3 {
		t.Fatalf("products view = %#v", v)
	}
	if _, ok := EmptyStateFor(ModeProducts); ok {
		t.Fatalf("ModeProducts should not have an empty state")
	}
}

func TestWelcomeHasSteps(t *testing.T) {
	s, _ := EmptyStateFor(ModeWelcome)
	if len(s.Steps) != 3 {
		t.Fatalf("welcome steps = %v", s.Steps)
	}
}

func TestNewCard(t *testing.T) {
	c := NewCard(backend.DetectedProduct{
		Type:              "sneakers",
		BrandText:         "Adidas",
		Color:             "white",
		Description:       "Clean white sneakers",
		AverageConfidence: conf(0.94),
		FramesSeen:        []string{"0:10", "0:20", "0:25"},
	}, 2)
	if c.Title != "Sneakers" || c.Brand != "Adidas" || c.Color != "White" {
		t.Fatalf("card = %#v", c)
	}
	if c.Description != `"Clean white sneakers"` || c.Frames != "3 frames" || !c.TopPick || c.Level != LevelHigh {
		t.Fatalf("card = %#v", c)
	}

	bare := NewCard(backend.DetectedProduct{FramesSeen: []string{"0:01"}}, 0)
	if bare.Title != "Product 1" || bare.Description != "" || bare.Frames != "1 frame" || bare.TopPick {
		t.Fatalf("bare card = %#v", bare)
	}
}

func TestLabels(t *testing.T) {
	if CountLabel(1) != "1 product found" || CountLabel(4) != "4 products found" {
		t.Fatalf("CountLabel mismatch: %q %q", CountLabel(1), CountLabel(4))
	}
	if Percent(0.875) != 88 {
		t.Fatalf("Percent(0.875) = %d", Percent(0.875))
	}
}
