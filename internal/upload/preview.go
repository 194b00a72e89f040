package upload

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const previewScheme = "preview://"

// PreviewRegistry hands out playable preview handles for selected files. Each
// handle pins an open file descriptor until it is revoked, so every Create
// must be paired with a Revoke.
type PreviewRegistry struct {
	mu   sync.Mutex
	live map[string]*os.File
}

// NewPreviewRegistry returns an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{live: make(map[string]*os.File)}
}

// Create opens the file and returns its preview URL.
func (r *PreviewRegistry) Create(f File) (string, error) {
	handle, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("open preview: %w", err)
	}
	url := previewScheme + uuid.NewString()

	r.mu.Lock()
	r.live[url] = handle
	r.mu.Unlock()
	return url, nil
}

// Revoke releases the handle behind url. Unknown urls are ignored.
func (r *PreviewRegistry) Revoke(url string) {
	r.mu.Lock()
	handle, ok := r.live[url]
	delete(r.live, url)
	r.mu.Unlock()

	if ok {
		_ = handle.Close()
	}
}

// Stat reports file info through a live handle.
func (r *PreviewRegistry) Stat(url string) (fs.FileInfo, error) {
	r.mu.Lock()
	handle, ok := r.live[url]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("preview %s revoked", strings.TrimPrefix(url, previewScheme))
	}
	return handle.Stat()
}

// Len returns the number of live handles.
func (r *PreviewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Close revokes every handle.
func (r *PreviewRegistry) Close() {
	r.mu.Lock()
	live := r.live
	r.live = make(map[string]*os.File)
	r.mu.Unlock()

	for _, handle := range live {
		_ = handle.Close()
	}
}
