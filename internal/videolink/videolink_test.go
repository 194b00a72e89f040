package videolink

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExtractTikTokID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "https://www.tiktok.com/@user/video/123456", want: "123456"},
		{in: "https://www.tiktok.com/@user/video/7301234567?lang=en", want: "7301234567"},
		{in: "https://www.tiktok.com/@user", want: ""},
		{in: "https://www.tiktok.com/@user/video/abc", want: ""},
	}
	for _, tc := range cases {
		if got := ExtractTikTokID(tc.in); got != tc.want {
			t.Fatalf("ExtractTikTokID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolvePreview(t *testing.T) {
	cases := []struct {
		name     string
		url      string
		kind     PreviewKind
		platform Platform
		id       string
		embed    string
	}{
		{"empty", "  ", PreviewEmpty, PlatformNone, "", ""},
		{"tiktok", "https://www.tiktok.com/@user/video/123456", PreviewEmbed, PlatformTikTok, "123456", "https://www.tiktok.com/embed/v2/123456"},
		{"tiktok without id", "https://www.tiktok.com/@user", PreviewFallback, PlatformUnknown, "", ""},
		{"instagram", "https://www.instagram.com/reel/Cx1/", PreviewLinkOut, PlatformInstagram, "", ""},
		{"other", "https://videos.example.com/watch?v=1", PreviewFallback, PlatformUnknown, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ResolvePreview(tc.url)
			if p.Kind != tc.kind || p.Platform != tc.platform || p.VideoID != tc.id || p.EmbedURL != tc.embed {
				t.Fatalf("ResolvePreview(%q) = %#v", tc.url, p)
			}
		})
	}
}

func TestFallbackEchoesRawURL(t *testing.T) {
	p := ResolvePreview(" https://example.com/v/1 ")
	if p.URL != "https://example.com/v/1" {
		t.Fatalf("URL = %q, want trimmed raw url", p.URL)
	}
}

func TestSimulatedAnalyzerReturnsDemoSet(t *testing.T) {
	products, err := SimulatedAnalyzer{}.AnalyzeURL(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatalf("AnalyzeURL returned error: %v", err)
	}
	if len(products) != 4 || products[0].Type != "shirt" || products[3].Type != "watch" {
		t.Fatalf("products = %#v, want the four demo items", products)
	}
}

func TestSimulatedAnalyzerWaitsAndHonorsContext(t *testing.T) {
	start := time.Now()
	if _, err := (SimulatedAnalyzer{Delay: 30 * time.Millisecond}).AnalyzeURL(context.Background(), "u"); err != nil {
		t.Fatalf("AnalyzeURL returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("AnalyzeURL returned after %v, want >= 30ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := SimulatedAnalyzer{Delay: time.Hour}.AnalyzeURL(ctx, "u")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AnalyzeURL error = %v, want context.Canceled", err)
	}
}

func TestDemoProductsAreFresh(t *testing.T) {
	a := DemoProducts()
	*a[0].AverageConfidence = 0
	b := DemoProducts()
	if b[0].Confidence() != 0.92 {
		t.Fatalf("DemoProducts shares state: %v", b[0].Confidence())
	}
}

func TestControllerLifecycle(t *testing.T) {
	var c Controller
	if _, ok := c.BeginAnalyze(); ok {
		t.Fatalf("BeginAnalyze with blank url returned true")
	}

	c.SetURL("https://www.tiktok.com/@u/video/42")
	if c.Preview().VideoID != "42" {
		t.Fatalf("Preview().VideoID = %q, want 42", c.Preview().VideoID)
	}
	seq, ok := c.BeginAnalyze()
	if !ok || !c.Analyzing() {
		t.Fatalf("BeginAnalyze = %d, %v", seq, ok)
	}
	if _, ok := c.BeginAnalyze(); ok {
		t.Fatalf("second BeginAnalyze returned true while analyzing")
	}
	if !c.FinishAnalyze(seq) || c.Analyzing() {
		t.Fatalf("FinishAnalyze did not complete current job")
	}
}

func TestControllerResetDropsInflight(t *testing.T) {
	var c Controller
	c.SetURL("https://example.com/v")
	seq, _ := c.BeginAnalyze()
	c.Reset()
	if c.URL() != "" || c.Analyzing() {
		t.Fatalf("Reset left url=%q analyzing=%v", c.URL(), c.Analyzing())
	}
	if c.FinishAnalyze(seq) {
		t.Fatalf("FinishAnalyze accepted abandoned job")
	}
}
