package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/shopper/internal/backend"
)

type note struct {
	kind, message, title string
}

type recordingNotifier struct {
	notes []note
}

func (r *recordingNotifier) Success(message, title string) string {
	r.notes = append(r.notes, note{"success", message, title})
	return "s"
}

func (r *recordingNotifier) Error(message, title string) string {
	r.notes = append(r.notes, note{"error", message, title})
	return "e"
}

func (r *recordingNotifier) Info(message, title string) string {
	r.notes = append(r.notes, note{"info", message, title})
	return "i"
}

func (r *recordingNotifier) last() note {
	if len(r.notes) == 0 {
		return note{}
	}
	return r.notes[len(r.notes)-1]
}

type fakeAnalyzer struct {
	resp     *backend.AnalyzeResponse
	err      error
	gotName  string
	gotType  string
	gotBytes int64
}

func (f *fakeAnalyzer) AnalyzeVideo(_ context.Context, upload backend.Upload) (*backend.AnalyzeResponse, error) {
	f.gotName = upload.Filename
	f.gotType = upload.ContentType
	n, _ := io.Copy(io.Discard, upload.Body)
	f.gotBytes = n
	return f.resp, f.err
}

// mp4Header is the smallest prefix content sniffing recognizes as video/mp4.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func sparseVideo(t *testing.T, name string, size int64) File {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Truncate(size); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	_ = f.Close()
	return File{Path: path, Name: name, Size: size, DeclaredType: "video/mp4"}
}

func threeProducts() *backend.AnalyzeResponse {
	return &backend.AnalyzeResponse{Analysis: backend.Analysis{ConsolidatedProducts: []backend.DetectedProduct{
		{Type: "shirt"}, {Type: "jeans"}, {Type: "sneakers"},
	}}}
}

func TestIsVideoFile(t *testing.T) {
	cases := []struct {
		declared string
		want     bool
	}{
		{"video/mp4", true},
		{"video/quicktime", true},
		{"video/", true},
		{"audio/mp4", false},
		{"image/png", false},
		{"text/plain; charset=utf-8", false},
		{"", false},
		{"Video/mp4", false},
	}
	for _, tc := range cases {
		if got := IsVideoFile(File{DeclaredType: tc.declared}); got != tc.want {
			t.Fatalf("IsVideoFile(%q) = %v, want %v", tc.declared, got, tc.want)
		}
	}
}

func TestStatSniffsContent(t *testing.T) {
	video := writeFile(t, "clip.bin", append(mp4Header, make([]byte, 64)...))
	f, err := Stat(video)
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if f.DeclaredType != "video/mp4" || f.Name != "clip.bin" || f.Size != int64(len(mp4Header)+64) {
		t.Fatalf("Stat = %#v, want video/mp4 clip.bin", f)
	}

	// The extension claims video but the bytes are text.
	text := writeFile(t, "notes.mp4", []byte("just some notes\n"))
	f, err = Stat(text)
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if IsVideoFile(f) {
		t.Fatalf("IsVideoFile(%q) = true, want false", f.DeclaredType)
	}
}

func TestStatErrors(t *testing.T) {
	if _, err := Stat("  "); err == nil {
		t.Fatalf("Stat(blank) returned nil error")
	}
	if _, err := Stat(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatalf("Stat(missing) returned nil error")
	}
	if _, err := Stat(t.TempDir()); err == nil {
		t.Fatalf("Stat(dir) returned nil error")
	}
}

func TestStatHandlesDroppedPathForms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my clip.mp4")
	if err := os.WriteFile(path, mp4Header, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	for _, in := range []string{
		"'" + path + "'",
		"file://" + path,
		strings.ReplaceAll(path, " ", `\ `),
	} {
		f, err := Stat(in)
		if err != nil {
			t.Fatalf("Stat(%q) returned error: %v", in, err)
		}
		if f.Name != "my clip.mp4" {
			t.Fatalf("Stat(%q).Name = %q", in, f.Name)
		}
	}
}

func TestHintFor(t *testing.T) {
	cases := []struct {
		path string
		want DragState
	}{
		{"", DragIdle},
		{"   ", DragIdle},
		{"/videos/clip.MP4", DragAccept},
		{"/videos/clip.mkv", DragAccept},
		{"/videos/clip.mov", DragAccept},
		{"/docs/report.pdf", DragReject},
		{"/images/photo.png", DragReject},
		{"/videos/clip", DragActive},
	}
	for _, tc := range cases {
		if got := HintFor(tc.path); got != tc.want {
			t.Fatalf("HintFor(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestHintDoesNotDecideAcceptance(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)

	path := writeFile(t, "fake.mp4", []byte("plain text pretending to be video\n"))
	c.DragOver(path)
	if c.Drag() != DragAccept {
		t.Fatalf("Drag() = %v, want accept hint from extension", c.Drag())
	}
	if err := c.Drop(path); !errors.Is(err, ErrNotVideo) {
		t.Fatalf("Drop error = %v, want ErrNotVideo", err)
	}
	if c.State() != StateEmpty || c.Drag() != DragIdle {
		t.Fatalf("state = %v drag = %v, want empty/idle", c.State(), c.Drag())
	}
	if got := n.last(); got.kind != "error" || got.title != "Invalid File Type" {
		t.Fatalf("last notification = %#v, want Invalid File Type error", got)
	}
}

func TestDragLeaveResets(t *testing.T) {
	c := NewController(nil, nil)
	c.DragOver("/tmp/x.pdf")
	if c.Drag() != DragReject {
		t.Fatalf("Drag() = %v, want reject", c.Drag())
	}
	c.DragLeave()
	if c.Drag() != DragIdle {
		t.Fatalf("Drag() = %v, want idle", c.Drag())
	}
}

func TestSelectRejectLeavesStateUnchanged(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)
	first := sparseVideo(t, "a.mp4", 10)
	if err := c.Select(first); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	if err := c.Select(File{Path: first.Path, Name: "a.txt", DeclaredType: "text/plain"}); !errors.Is(err, ErrNotVideo) {
		t.Fatalf("Select error = %v, want ErrNotVideo", err)
	}
	if c.State() != StateFileSelected || c.Selection().File.Name != "a.mp4" {
		t.Fatalf("selection changed on reject: %v %#v", c.State(), c.Selection())
	}
	if c.Previews().Len() != 1 {
		t.Fatalf("live previews = %d, want 1", c.Previews().Len())
	}
}

func TestSelectReplacesAndReleasesPreview(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)

	first := sparseVideo(t, "a.mp4", 10)
	second := sparseVideo(t, "b.mp4", 20)
	if err := c.Select(first); err != nil {
		t.Fatalf("Select(first) returned error: %v", err)
	}
	oldURL := c.Selection().PreviewURL
	if err := c.Select(second); err != nil {
		t.Fatalf("Select(second) returned error: %v", err)
	}
	if c.Previews().Len() != 1 {
		t.Fatalf("live previews = %d, want 1", c.Previews().Len())
	}
	if _, err := c.Previews().Stat(oldURL); err == nil {
		t.Fatalf("old preview still resolvable after replace")
	}
	info, err := c.Previews().Stat(c.Selection().PreviewURL)
	if err != nil || info.Size() != 20 {
		t.Fatalf("current preview Stat = %v, %v; want size 20", info, err)
	}
	if got := n.last(); got.kind != "success" || got.title != "Ready to Analyze" {
		t.Fatalf("last notification = %#v, want Ready to Analyze", got)
	}
}

func TestClearReleasesPreview(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)
	if err := c.Select(sparseVideo(t, "a.mp4", 10)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if !c.Clear() {
		t.Fatalf("Clear returned false")
	}
	if c.State() != StateEmpty || c.Selection() != nil || c.Previews().Len() != 0 {
		t.Fatalf("after Clear: state=%v selection=%v previews=%d", c.State(), c.Selection(), c.Previews().Len())
	}
	if got := n.last(); got.kind != "info" || got.message != "File selection cleared" {
		t.Fatalf("last notification = %#v, want reset info", got)
	}
}

func TestCloseReleasesPreview(t *testing.T) {
	c := NewController(nil, nil)
	if err := c.Select(sparseVideo(t, "a.mp4", 10)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	c.Close()
	if c.Previews().Len() != 0 {
		t.Fatalf("live previews after Close = %d, want 0", c.Previews().Len())
	}
}

func TestUploadEndToEnd(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)

	f := sparseVideo(t, "runway.mp4", 50<<20)
	if err := c.Select(f); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	job, ok := c.BeginUpload()
	if !ok {
		t.Fatalf("BeginUpload returned false")
	}
	if c.State() != StateUploading {
		t.Fatalf("state = %v, want uploading", c.State())
	}
	if c.Clear() {
		t.Fatalf("Clear during upload returned true")
	}
	if err := c.Select(f); !errors.Is(err, ErrBusy) {
		t.Fatalf("Select during upload = %v, want ErrBusy", err)
	}

	api := &fakeAnalyzer{resp: threeProducts()}
	resp, err := job.Run(context.Background(), api)
	if api.gotName != "runway.mp4" || api.gotType != "video/mp4" || api.gotBytes != 50<<20 {
		t.Fatalf("analyzer got (%q, %q, %d)", api.gotName, api.gotType, api.gotBytes)
	}

	products, ok := c.FinishUpload(job.Seq, resp, err)
	if !ok || len(products) != 3 {
		t.Fatalf("FinishUpload = %d products, ok=%v; want 3, true", len(products), ok)
	}
	if c.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", c.State())
	}
	last := n.last()
	if last.kind != "success" || !strings.Contains(last.message, "3") {
		t.Fatalf("last notification = %#v, want success mentioning 3", last)
	}
}

func TestUploadFailureReturnsToSelectable(t *testing.T) {
	n := &recordingNotifier{}
	c := NewController(n, nil)
	if err := c.Select(sparseVideo(t, "a.mp4", 10)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	job, _ := c.BeginUpload()
	_, ok := c.FinishUpload(job.Seq, nil, errors.New("backend exploded"))
	if ok {
		t.Fatalf("FinishUpload returned ok for error")
	}
	if c.State() != StateFileSelected || c.Selection() == nil {
		t.Fatalf("state = %v selection = %v, want file-selected with selection kept", c.State(), c.Selection())
	}
	if c.LastError() == nil {
		t.Fatalf("LastError not recorded")
	}
	if got := n.last(); got.kind != "error" || got.message != "backend exploded" || got.title != "Upload Failed" {
		t.Fatalf("last notification = %#v, want Upload Failed error", got)
	}

	retry, ok := c.BeginUpload()
	if !ok || retry.Seq == job.Seq {
		t.Fatalf("retry BeginUpload = %#v, %v", retry, ok)
	}
	if c.LastError() != nil {
		t.Fatalf("LastError survived retry")
	}
}

func TestFinishUploadIgnoresStaleJobs(t *testing.T) {
	c := NewController(nil, nil)
	if err := c.Select(sparseVideo(t, "a.mp4", 10)); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	job, _ := c.BeginUpload()
	c.Close()

	if _, ok := c.FinishUpload(job.Seq, threeProducts(), nil); ok {
		t.Fatalf("FinishUpload accepted result after Close")
	}
	if c.State() != StateEmpty {
		t.Fatalf("state = %v, want empty", c.State())
	}
}

func TestBeginUploadRequiresSelection(t *testing.T) {
	c := NewController(nil, nil)
	if _, ok := c.BeginUpload(); ok {
		t.Fatalf("BeginUpload with no selection returned true")
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{500, "500 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{50 << 20, "50 MB"},
		{3 << 30, "3 GB"},
		{5 << 40, "5120 GB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.in); got != tc.want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainerLabel(t *testing.T) {
	if got := ContainerLabel("video/mp4"); got != "MP4" {
		t.Fatalf("ContainerLabel = %q, want MP4", got)
	}
	if got := ContainerLabel("video/quicktime"); got != "QUICKTIME" {
		t.Fatalf("ContainerLabel = %q, want QUICKTIME", got)
	}
	if got := ContainerLabel("bogus"); got != "" {
		t.Fatalf("ContainerLabel = %q, want empty", got)
	}
}

func TestDragStateString(t *testing.T) {
	for state, want := range map[DragState]string{
		DragIdle: "idle", DragActive: "active", DragAccept: "accept", DragReject: "reject",
	} {
		if state.String() != want {
			t.Fatalf("%d.String() = %q, want %q", state, state.String(), want)
		}
	}
}
