package upload

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/five82/shopper/internal/backend"
)

// ErrBusy is returned when the selection is changed mid-upload.
var ErrBusy = errors.New("upload in progress")

// State is the upload flow's position.
type State int

const (
	StateEmpty State = iota
	StateFileSelected
	StateUploading
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateFileSelected:
		return "file-selected"
	case StateUploading:
		return "uploading"
	case StateCompleted:
		return "completed"
	default:
		return "empty"
	}
}

// Notifier receives user-facing notifications. *toast.Manager satisfies it.
type Notifier interface {
	Success(message, title string) string
	Error(message, title string) string
	Info(message, title string) string
}

// Analyzer is the subset of the backend used for uploads.
type Analyzer interface {
	AnalyzeVideo(ctx context.Context, upload backend.Upload) (*backend.AnalyzeResponse, error)
}

// Selection is the held file plus its preview handle.
type Selection struct {
	File       File
	PreviewURL string
}

// Job is one submitted upload.
type Job struct {
	Seq  int
	File File
}

// Run opens the file fresh and posts it to the analyzer.
func (j Job) Run(ctx context.Context, api Analyzer) (*backend.AnalyzeResponse, error) {
	f, err := os.Open(j.File.Path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	return api.AnalyzeVideo(ctx, backend.Upload{
		Filename:    j.File.Name,
		ContentType: j.File.DeclaredType,
		Body:        f,
	})
}

// Controller owns the upload flow state. It is not safe for concurrent use;
// the UI drives it from its update loop only.
type Controller struct {
	state     State
	selection *Selection
	drag      DragState
	seq       int
	lastErr   error

	previews *PreviewRegistry
	notify   Notifier
}

// NewController returns an empty controller.
func NewController(notify Notifier, previews *PreviewRegistry) *Controller {
	if previews == nil {
		previews = NewPreviewRegistry()
	}
	return &Controller{notify: notify, previews: previews}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Drag returns the current drop-zone hint.
func (c *Controller) Drag() DragState { return c.drag }

// Selection returns the held selection, or nil.
func (c *Controller) Selection() *Selection { return c.selection }

// LastError returns the error from the most recent failed upload. It is
// cleared by a new selection or upload.
func (c *Controller) LastError() error { return c.lastErr }

// Previews exposes the registry backing preview handles.
func (c *Controller) Previews() *PreviewRegistry { return c.previews }

// DragOver updates the advisory hint for a path hovering over the drop zone.
func (c *Controller) DragOver(path string) {
	c.drag = HintFor(path)
}

// DragLeave resets the hint.
func (c *Controller) DragLeave() {
	c.drag = DragIdle
}

// Drop resolves a dropped path and selects it.
func (c *Controller) Drop(path string) error {
	c.drag = DragIdle
	f, err := Stat(path)
	if err != nil {
		c.notifyError(err.Error(), "Could Not Read File")
		return err
	}
	return c.Select(f)
}

// Select runs the acceptance gate and, when it passes, replaces the held
// selection. A rejected file leaves the state untouched.
func (c *Controller) Select(f File) error {
	if c.state == StateUploading {
		return ErrBusy
	}
	if !IsVideoFile(f) {
		c.notifyError("Please select a valid video file", "Invalid File Type")
		return ErrNotVideo
	}
	url, err := c.previews.Create(f)
	if err != nil {
		c.notifyError(err.Error(), "Preview Unavailable")
		return err
	}
	c.release()
	c.selection = &Selection{File: f, PreviewURL: url}
	c.state = StateFileSelected
	c.lastErr = nil
	if c.notify != nil {
		c.notify.Success("Video file selected successfully!", "Ready to Analyze")
	}
	return nil
}

// BeginUpload moves to uploading and returns the job to run.
func (c *Controller) BeginUpload() (Job, bool) {
	if c.selection == nil || c.state == StateUploading {
		return Job{}, false
	}
	c.seq++
	c.state = StateUploading
	c.lastErr = nil
	if c.notify != nil {
		c.notify.Info("Starting video analysis...", "Please Wait")
	}
	return Job{Seq: c.seq, File: c.selection.File}, true
}

// FinishUpload records the outcome of job seq. It returns the products and
// true on success; results for a superseded or abandoned job are dropped. A
// failure returns to file-selected with the error kept in LastError.
func (c *Controller) FinishUpload(seq int, resp *backend.AnalyzeResponse, err error) ([]backend.DetectedProduct, bool) {
	if seq != c.seq || c.state != StateUploading {
		return nil, false
	}
	if err != nil {
		c.state = StateFileSelected
		c.lastErr = err
		c.notifyError(err.Error(), "Upload Failed")
		return nil, false
	}
	products := resp.Products()
	c.state = StateCompleted
	if c.notify != nil {
		c.notify.Success(
			fmt.Sprintf("Successfully analyzed video! Found %d products.", len(products)),
			"Analysis Complete",
		)
	}
	return products, true
}

// Clear drops the selection and its preview handle.
func (c *Controller) Clear() bool {
	if c.state == StateUploading {
		return false
	}
	c.release()
	c.state = StateEmpty
	c.lastErr = nil
	c.drag = DragIdle
	if c.notify != nil {
		c.notify.Info("File selection cleared", "Reset")
	}
	return true
}

// Close releases held resources without notifying. Any in-flight job result
// is ignored afterwards.
func (c *Controller) Close() {
	c.release()
	c.seq++
	c.state = StateEmpty
}

func (c *Controller) release() {
	if c.selection == nil {
		return
	}
	c.previews.Revoke(c.selection.PreviewURL)
	c.selection = nil
}

func (c *Controller) notifyError(message, title string) {
	if c.notify != nil {
		c.notify.Error(message, title)
	}
}
