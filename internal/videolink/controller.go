package videolink

import "strings"

// Controller holds the pasted link and whether a stand-in analysis is
// running for it. Not safe for concurrent use.
type Controller struct {
	url       string
	analyzing bool
	seq       int
}

// URL returns the current link.
func (c *Controller) URL() string { return c.url }

// SetURL replaces the link. No format validation is done.
func (c *Controller) SetURL(url string) { c.url = url }

// Preview resolves the current link.
func (c *Controller) Preview() Preview { return ResolvePreview(c.url) }

// Analyzing reports whether an analysis is in flight.
func (c *Controller) Analyzing() bool { return c.analyzing }

// BeginAnalyze marks an analysis as started and returns its sequence number.
// It refuses when the link is blank or an analysis is already running.
func (c *Controller) BeginAnalyze() (int, bool) {
	if c.analyzing || strings.TrimSpace(c.url) == "" {
		return 0, false
	}
	c.seq++
	c.analyzing = true
	return c.seq, true
}

// FinishAnalyze records completion of seq and reports whether it was still
// current.
func (c *Controller) FinishAnalyze(seq int) bool {
	if seq != c.seq || !c.analyzing {
		return false
	}
	c.analyzing = false
	return true
}

// Reset clears the link and abandons any running analysis.
func (c *Controller) Reset() {
	c.url = ""
	c.analyzing = false
	c.seq++
}
