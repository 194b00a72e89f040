// Package videolink resolves pasted video links into previews and runs the
// stand-in analysis for them.
package videolink

import (
	"regexp"
	"strings"
)

// Platform identifies where a link points.
type Platform int

const (
	PlatformNone Platform = iota
	PlatformTikTok
	PlatformInstagram
	PlatformUnknown
)

func (p Platform) String() string {
	switch p {
	case PlatformTikTok:
		return "TikTok"
	case PlatformInstagram:
		return "Instagram"
	case PlatformUnknown:
		return "Unknown"
	default:
		return "None"
	}
}

// PreviewKind selects how a preview is rendered.
type PreviewKind int

const (
	// PreviewEmpty is shown before any link is entered.
	PreviewEmpty PreviewKind = iota
	// PreviewEmbed carries a player URL.
	PreviewEmbed
	// PreviewLinkOut points the user at the original page.
	PreviewLinkOut
	// PreviewFallback just echoes the raw URL.
	PreviewFallback
)

// Preview is the rendering decision for a link. It is a pure function of the
// URL; no request is made.
type Preview struct {
	Kind     PreviewKind
	Platform Platform
	URL      string
	VideoID  string
	EmbedURL string
	Title    string
	Note     string
}

const tiktokEmbedBase = "https://www.tiktok.com/embed/v2/"

var tiktokVideoID = regexp.MustCompile(`/video/(\d+)`)

// ExtractTikTokID returns the numeric id following /video/, or "".
func ExtractTikTokID(url string) string {
	m := tiktokVideoID.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// ResolvePreview decides how to preview url.
func ResolvePreview(url string) Preview {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return Preview{
			Kind:     PreviewEmpty,
			Platform: PlatformNone,
			Title:    "No Video Selected",
			Note:     "Enter a TikTok or Instagram video URL above to preview it here.",
		}
	}

	if strings.Contains(trimmed, "tiktok.com") {
		if id := ExtractTikTokID(trimmed); id != "" {
			return Preview{
				Kind:     PreviewEmbed,
				Platform: PlatformTikTok,
				URL:      trimmed,
				VideoID:  id,
				EmbedURL: tiktokEmbedBase + id,
				Title:    "TikTok Video",
			}
		}
	}

	if strings.Contains(trimmed, "instagram.com") {
		return Preview{
			Kind:     PreviewLinkOut,
			Platform: PlatformInstagram,
			URL:      trimmed,
			Title:    "Instagram Video",
			Note:     "Instagram embeds require oEmbed API",
		}
	}

	return Preview{
		Kind:     PreviewFallback,
		Platform: PlatformUnknown,
		URL:      trimmed,
		Title:    "Video Preview",
		Note:     "Platform not recognized - showing fallback preview",
	}
}
