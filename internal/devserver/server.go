// Package devserver is a stand-in for the analysis backend. It serves the
// four endpoints shopper calls with canned data so the UI can be exercised
// without the real detection and search services.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/shopper/internal/backend"
)

const (
	// DefaultMaxUploadSize is the 100 MiB cap the real backend enforces.
	DefaultMaxUploadSize = 100 << 20

	uploadField = "file"
)

// Options configure the dev server.
type Options struct {
	Logger        *slog.Logger
	MaxUploadSize int64
	// Delay simulates processing time on /analyze-video.
	Delay time.Duration
}

// Server holds the handlers' dependencies.
type Server struct {
	logger        *slog.Logger
	maxUploadSize int64
	delay         time.Duration
}

// New returns a server with defaults filled in.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxSize := opts.MaxUploadSize
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &Server{logger: logger, maxUploadSize: maxSize, delay: opts.Delay}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/analyze-video", s.handleAnalyze)
	r.Post("/find-similar", s.handleFindSimilar)
	r.Post("/find-similar-gemini", s.handleFindSimilarAI)

	return r
}

// logRequests writes one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}
	if !strings.HasPrefix(mt.String(), "video/") {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("expected a video file, got %s", mt.String()))
		return
	}

	s.logger.Info("analyzing upload", "name", header.Filename, "size", header.Size, "type", mt.String())
	if err := sleep(r.Context(), s.delay); err != nil {
		return
	}

	writeJSON(w, http.StatusOK, backend.AnalyzeResponse{
		Analysis: backend.Analysis{ConsolidatedProducts: SampleProducts()},
	})
}

func (s *Server) handleFindSimilar(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, backend.SimilarResponse{SimilarItems: CatalogMatches(product)})
}

func (s *Server) handleFindSimilarAI(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, backend.SimilarResponse{Products: WebMatches(product)})
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (backend.DetectedProduct, bool) {
	var product backend.DetectedProduct
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product body")
		return backend.DetectedProduct{}, false
	}
	return product, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
