package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/patrickwarner/adlibrary/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP routes. Catalog routes sit behind the auth gate,
// and their writes behind the per-client rate limiter.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.WithTraceLogger(s.Logger))
	r.Use(middleware.WithMetrics(s.Metrics, s.Logger))

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	r.HandleFunc("/api/session", s.GetSession).Methods("GET")
	r.HandleFunc("/api/session", s.CreateSession).Methods("POST")
	r.HandleFunc("/api/session", s.DeleteSession).Methods("DELETE")

	shared := r.PathPrefix("/share").Subrouter()
	shared.HandleFunc("/{token}", s.ResolveShare).Methods("GET")
	shared.HandleFunc("/{token}/image", s.ResolveShareImage).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireAuth)
	api.Use(middleware.WithWriteRateLimit(s.Limiter, s.Logger))

	api.HandleFunc("/ads", s.ListAds).Methods("GET")
	api.HandleFunc("/ads", s.CreateAd).Methods("POST")
	api.HandleFunc("/ads/{id}", s.GetAd).Methods("GET")
	api.HandleFunc("/ads/{id}/bookmark", s.ToggleBookmark).Methods("POST")
	api.HandleFunc("/ads/{id}/share", s.ShareAd).Methods("GET")
	api.HandleFunc("/ads/{id}/image", s.AdImage).Methods("GET")

	api.HandleFunc("/uploads", s.Upload).Methods("POST")
	api.HandleFunc("/uploads/preview", s.PreviewURL).Methods("POST")

	api.HandleFunc("/filters", s.GetFilters).Methods("GET")
	api.HandleFunc("/filters", s.ReplaceFilters).Methods("PUT")
	api.HandleFunc("/filters", s.ClearFilters).Methods("DELETE")
	api.HandleFunc("/filters/search", s.SetSearch).Methods("PUT")
	api.HandleFunc("/filters/platform", s.SetPlatformTab).Methods("PUT")
	api.HandleFunc("/filters/sort", s.SetSort).Methods("PUT")
	api.HandleFunc("/filters/dimensions/{dimension}", s.ToggleDimension).Methods("POST")
	api.HandleFunc("/filters/catalog", s.GetCatalog).Methods("GET")
	api.HandleFunc("/filters/trace", s.GetFilterTrace).Methods("GET")

	api.HandleFunc("/platforms", s.ListPlatforms).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	return r
}
