package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the two columns stack.
	LayoutCompactWidth = 100

	// LayoutMinLeftWidth keeps the input column usable in wide layouts.
	LayoutMinLeftWidth = 44
)

// Toast stack geometry.
const (
	// ToastWidth is the outer width of one toast box.
	ToastWidth = 42

	// ToastMaxVisible caps how many toasts are drawn at once.
	ToastMaxVisible = 4
)

// Timing constants.
const (
	// DefaultUIInterval is how often the header re-reads backend health.
	DefaultUIInterval = time.Second

	// ToastFrameInterval drives the countdown bars while toasts are visible.
	ToastFrameInterval = 100 * time.Millisecond
)
