package upload

import "strings"

// DragState is the drop zone's visual state while something hovers over it.
type DragState int

const (
	DragIdle DragState = iota
	DragActive
	DragAccept
	DragReject
)

func (d DragState) String() string {
	switch d {
	case DragActive:
		return "active"
	case DragAccept:
		return "accept"
	case DragReject:
		return "reject"
	default:
		return "idle"
	}
}

// HintFor is the advisory check made while a path is hovering over the drop
// zone. It looks only at the advertised extension and never decides
// acceptance; Select runs IsVideoFile on the sniffed type for that.
func HintFor(path string) DragState {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DragIdle
	}
	declared := TypeByExtension(trimmed)
	switch {
	case declared == "":
		return DragActive
	case strings.HasPrefix(declared, "video/"):
		return DragAccept
	default:
		return DragReject
	}
}
