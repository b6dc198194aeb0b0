package api

import (
	"errors"
	"net/http"

	"github.com/patrickwarner/adlibrary/internal/form"
	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/patrickwarner/adlibrary/internal/middleware"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temporary file. It is not a size limit.
const multipartMemory = 32 << 20

// Upload handles POST /api/uploads. The multipart "file" field becomes an
// embedded data URI for the creation form.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "multipart form required", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := media.ReadDataURI(file, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, media.ErrNotImage) {
			s.Metrics.IncrementImageAcquisitions(string(form.UploadFile), "rejected")
			http.Error(w, "file is not an image", http.StatusUnsupportedMediaType)
			return
		}
		s.Metrics.IncrementImageAcquisitions(string(form.UploadFile), "error")
		logger.Error("read upload", zap.String("filename", header.Filename), zap.Error(err))
		http.Error(w, "could not read file", http.StatusBadRequest)
		return
	}

	s.Metrics.IncrementImageAcquisitions(string(form.UploadFile), "ok")
	logger.Info("image uploaded",
		zap.String("filename", header.Filename),
		zap.String("mime", img.MIME),
		zap.Int("bytes", img.Bytes))
	writeJSON(w, img)
}

type previewResponse struct {
	ImageURL string `json:"image_url"`
	OK       bool   `json:"ok"`
	MIME     string `json:"mime,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PreviewURL handles POST /api/uploads/preview. A URL that does not load as
// an image is cleared, as the creation preview does.
func (s *Server) PreviewURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "PreviewURL")
	defer span.End()
	logger := middleware.LoggerFromRequest(r, s.Logger)

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil || req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("image.url", req.URL))

	if s.Checker == nil {
		writeJSON(w, previewResponse{ImageURL: req.URL, OK: true})
		return
	}
	mimeType, err := s.Checker.Check(ctx, req.URL)
	if err != nil {
		s.Metrics.IncrementImageAcquisitions(string(form.UploadURL), "cleared")
		logger.Info("image preview failed", zap.String("url", req.URL), zap.Error(err))
		writeJSON(w, previewResponse{OK: false, Error: err.Error()})
		return
	}
	s.Metrics.IncrementImageAcquisitions(string(form.UploadURL), "ok")
	writeJSON(w, previewResponse{ImageURL: req.URL, OK: true, MIME: mimeType})
}
