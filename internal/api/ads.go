package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/patrickwarner/adlibrary/internal/form"
	"github.com/patrickwarner/adlibrary/internal/logic/render"
	"github.com/patrickwarner/adlibrary/internal/media"
	"github.com/patrickwarner/adlibrary/internal/middleware"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/share"
	"github.com/patrickwarner/adlibrary/internal/token"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ListAds handles GET /api/ads.
func (s *Server) ListAds(w http.ResponseWriter, r *http.Request) {
	view := ViewMode(r.URL.Query().Get("view"))
	switch view {
	case "":
		view = ViewGrid
	case ViewGrid, ViewList:
	default:
		http.Error(w, "view must be grid or list", http.StatusBadRequest)
		return
	}
	writeJSON(w, newListResponse(view, s.Session.Snapshot()))
}

// createAdRequest is the creation form body. UploadMethod names the tab the
// image came from and defaults to file upload.
type createAdRequest struct {
	form.Fields
	UploadMethod form.UploadMethod `json:"upload_method"`
}

// CreateAd handles POST /api/ads. The body is the creation form.
func (s *Server) CreateAd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "CreateAd",
		trace.WithAttributes(attribute.String("http.route", "/api/ads")))
	defer span.End()
	logger := middleware.LoggerFromRequest(r, s.Logger)

	var req createAdRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	f := form.New()
	f.Show()
	f.Fields = req.Fields
	if req.UploadMethod != "" {
		if err := f.SetUploadMethod(req.UploadMethod); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	method := f.UploadMethod

	ad, err := f.Submit(s.Session, s.now())
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			logger.Info("rejected ad form", zap.Strings("missing", verr.Missing), zap.String("platform", verr.InvalidPlatform))
			http.Error(w, verr.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.Error("create ad", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.String("ad_id", ad.ID),
		attribute.String("platform", string(ad.Platform)),
		attribute.String("upload_method", string(method)),
	)
	logger.Info("ad created", zap.String("ad_id", ad.ID), zap.String("platform", string(ad.Platform)),
		zap.String("upload_method", string(method)), zap.String("user_id", ad.UserID))
	s.notifyUpdate(ctx, "ad", "create", ad.ID)
	writeJSONStatus(w, http.StatusCreated, newAdView(ad))
}

// GetAd handles GET /api/ads/{id}.
func (s *Server) GetAd(w http.ResponseWriter, r *http.Request) {
	ad, err := s.Session.Ad(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ad not found", http.StatusNotFound)
		return
	}
	writeJSON(w, newDetailView(ad))
}

// ToggleBookmark handles POST /api/ads/{id}/bookmark.
func (s *Server) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ad, ok := s.Session.ToggleBookmark(id)
	if !ok {
		http.Error(w, "ad not found", http.StatusNotFound)
		return
	}
	s.notifyUpdate(r.Context(), "ad", "bookmark", ad.ID)
	writeJSON(w, map[string]any{"id": ad.ID, "is_bookmarked": ad.IsBookmarked})
}

// ShareAd handles GET /api/ads/{id}/share. It tells the client whether to
// use the share sheet or the clipboard, and what to share.
func (s *Server) ShareAd(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	ad, err := s.Session.Ad(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ad not found", http.StatusNotFound)
		return
	}

	method := share.Plan(r.UserAgent())
	payload := share.Payload{Method: method, Title: ad.Title, Text: ad.Description}
	if method != share.MethodNone {
		userID := ""
		if u := s.Session.AuthState().User; u != nil {
			userID = u.ID
		}
		tok, err := token.GenerateWithMethod(ad.ID, userID, string(method), s.ShareSecret)
		if err != nil {
			logger.Error("generate share token", zap.String("ad_id", ad.ID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		payload.URL = s.PublicURL + "/share/" + tok
	}
	writeJSON(w, payload)
}

// ResolveShare handles GET /share/{token}. Browsers and link unfurlers
// asking for HTML get a rendered card, everything else the detail JSON.
func (s *Server) ResolveShare(w http.ResponseWriter, r *http.Request) {
	tok := mux.Vars(r)["token"]
	ad, ok := s.sharedAd(w, tok)
	if !ok {
		return
	}
	if !strings.Contains(r.Header.Get("Accept"), "text/html") {
		writeJSON(w, newDetailView(ad))
		return
	}
	page := render.ComposeCardHTML(render.Card{
		Ad:        ad,
		URL:       s.PublicURL + "/share/" + tok,
		ImagePath: s.PublicURL + "/share/" + tok + "/image",
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, page)
}

// ResolveShareImage handles GET /share/{token}/image.
func (s *Server) ResolveShareImage(w http.ResponseWriter, r *http.Request) {
	ad, ok := s.sharedAd(w, mux.Vars(r)["token"])
	if !ok {
		return
	}
	s.serveImage(w, r, ad)
}

// sharedAd verifies a share token and looks up its ad, writing the error
// response when either fails.
func (s *Server) sharedAd(w http.ResponseWriter, tok string) (models.Ad, bool) {
	link, err := token.Verify(tok, s.ShareSecret, s.ShareTTL)
	switch {
	case errors.Is(err, token.ErrExpired):
		http.Error(w, "share link expired", http.StatusGone)
		return models.Ad{}, false
	case err != nil:
		http.Error(w, "invalid share link", http.StatusNotFound)
		return models.Ad{}, false
	}

	ad, err := s.Session.Ad(link.AdID)
	if err != nil {
		http.Error(w, "ad not found", http.StatusNotFound)
		return models.Ad{}, false
	}
	return ad, true
}

// AdImage handles GET /api/ads/{id}/image: embedded images are served as a
// download, remote ones are redirected to.
func (s *Server) AdImage(w http.ResponseWriter, r *http.Request) {
	ad, err := s.Session.Ad(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ad not found", http.StatusNotFound)
		return
	}
	s.serveImage(w, r, ad)
}

func (s *Server) serveImage(w http.ResponseWriter, r *http.Request, ad models.Ad) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	if ad.ImageURL == "" {
		http.Error(w, "ad has no image", http.StatusNotFound)
		return
	}
	if !media.IsDataURI(ad.ImageURL) {
		http.Redirect(w, r, ad.ImageURL, http.StatusFound)
		return
	}

	mimeType, data, err := media.ParseDataURI(ad.ImageURL)
	if err != nil {
		logger.Warn("stored image is not a valid data URI", zap.String("ad_id", ad.ID), zap.Error(err))
		http.Error(w, "image unavailable", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": media.DownloadFilename(ad.Title),
	}))
	_, _ = w.Write(data)
}

// ListPlatforms handles GET /api/platforms.
func (s *Server) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, platformTabs(s.Session.PlatformCounts(), s.Session.Filters()))
}

// adIDs is used in logs.
func adIDs(ads []models.Ad) []string {
	out := make([]string, len(ads))
	for i, a := range ads {
		out[i] = a.ID
	}
	return out
}
