package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/patrickwarner/adlibrary/internal/middleware"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/session"
	"go.uber.org/zap"
)

func (s *Server) writeFilters(w http.ResponseWriter, r *http.Request, f models.FilterOptions) {
	visible := s.Session.Visible()
	middleware.LoggerFromRequest(r, s.Logger).Debug("filters changed",
		zap.String("search", f.SearchQuery),
		zap.String("sort_by", string(f.SortBy)),
		zap.String("sort_order", string(f.SortOrder)),
		zap.Strings("visible", adIDs(visible)),
	)
	writeJSON(w, filtersResponse{
		Filters:       f,
		VisibleCount:  len(visible),
		ActiveFilters: f.ActiveCount(),
	})
}

// GetFilters handles GET /api/filters.
func (s *Server) GetFilters(w http.ResponseWriter, r *http.Request) {
	f := s.Session.Filters()
	writeJSON(w, filtersResponse{
		Filters:       f,
		VisibleCount:  len(s.Session.Visible()),
		ActiveFilters: f.ActiveCount(),
	})
}

// ReplaceFilters handles PUT /api/filters.
func (s *Server) ReplaceFilters(w http.ResponseWriter, r *http.Request) {
	var f models.FilterOptions
	if err := decodeJSON(r, &f); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, r, s.Session.SetFilters(f))
}

// ClearFilters handles DELETE /api/filters.
func (s *Server) ClearFilters(w http.ResponseWriter, r *http.Request) {
	s.writeFilters(w, r, s.Session.ClearFilters())
}

// SetSearch handles PUT /api/filters/search.
func (s *Server) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, r, s.Session.SetSearchQuery(req.Query))
}

// SetPlatformTab handles PUT /api/filters/platform.
func (s *Server) SetPlatformTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Tab != session.AllPlatformsTab && !models.Platform(req.Tab).Valid() {
		http.Error(w, "unknown platform tab", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, r, s.Session.SelectPlatformTab(req.Tab))
}

// SetSort handles PUT /api/filters/sort.
func (s *Server) SetSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SortBy    models.SortKey   `json:"sort_by"`
		SortOrder models.SortOrder `json:"sort_order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	current := s.Session.Filters()
	if req.SortBy == "" {
		req.SortBy = current.SortBy
	}
	if req.SortOrder == "" {
		req.SortOrder = current.SortOrder
	}
	if !req.SortBy.Valid() || !req.SortOrder.Valid() {
		http.Error(w, "sort_by must be date, engagement or relevance and sort_order asc or desc", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, r, s.Session.SetSort(req.SortBy, req.SortOrder))
}

// ToggleDimension handles POST /api/filters/dimensions/{dimension}.
func (s *Server) ToggleDimension(w http.ResponseWriter, r *http.Request) {
	d, err := models.ParseDimension(mux.Vars(r)["dimension"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	var req struct {
		Value   string `json:"value"`
		Checked bool   `json:"checked"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Value == "" {
		http.Error(w, "value required", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, r, s.Session.ToggleDimension(d, req.Value, req.Checked))
}

// GetCatalog handles GET /api/filters/catalog, the filter sidebar.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, newCatalog(s.Session.Filters()))
}

// GetFilterTrace handles GET /api/filters/trace: the ads surviving each
// stage of the current query.
func (s *Server) GetFilterTrace(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Trace())
}
