package upload

import (
	"errors"
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotVideo is returned when a selected file is not a video.
var ErrNotVideo = errors.New("not a video file")

// File is a local file offered for upload.
type File struct {
	Path string
	Name string
	Size int64
	// DeclaredType is the MIME type sniffed from the file contents.
	DeclaredType string
}

// IsVideoFile is the enforced acceptance gate: only files whose declared
// type is video/* may be selected.
func IsVideoFile(f File) bool {
	return strings.HasPrefix(f.DeclaredType, "video/")
}

// Stat resolves path to a File, sniffing its MIME type from content.
func Stat(path string) (File, error) {
	cleaned := strings.TrimSpace(path)
	if cleaned == "" {
		return File{}, fmt.Errorf("path is empty")
	}
	expanded, err := expandPath(cleaned)
	if err != nil {
		return File{}, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return File{}, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%s is not a regular file", info.Name())
	}
	mt, err := mimetype.DetectFile(expanded)
	if err != nil {
		return File{}, fmt.Errorf("detect file type: %w", err)
	}
	return File{
		Path:         expanded,
		Name:         info.Name(),
		Size:         info.Size(),
		DeclaredType: mt.String(),
	}, nil
}

// videoExtensions covers containers the system MIME table commonly lacks.
var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".ogv":  "video/ogg",
}

// TypeByExtension returns the MIME type a path advertises by its extension.
// It never touches the file.
func TypeByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(path)))
	if ext == "" {
		return ""
	}
	if t, ok := videoExtensions[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// FormatFileSize renders a byte count with binary units and at most two
// decimals, trimming trailing zeros ("1.5 MB", "2 GB").
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	const k = 1024.0
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := float64(bytes) / math.Pow(k, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[i]
}

// ContainerLabel returns the upper-cased MIME subtype ("video/mp4" -> "MP4").
func ContainerLabel(declaredType string) string {
	_, sub, ok := strings.Cut(declaredType, "/")
	if !ok || sub == "" {
		return ""
	}
	return strings.ToUpper(sub)
}

func expandPath(path string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), `"'`)
	if strings.HasPrefix(trimmed, "file://") {
		trimmed = strings.TrimPrefix(trimmed, "file://")
	}
	// Terminals escape spaces when a file is dropped onto them.
	trimmed = strings.ReplaceAll(trimmed, `\ `, " ")
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
