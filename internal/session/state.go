// Package session holds the application state of one catalog session: the
// ad collection, the active query, the derived visible list and the current
// identity. Every mutation recomputes the visible list before it returns.
package session

import (
	"sync"
	"time"

	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/logic"
	"github.com/patrickwarner/adlibrary/internal/logic/filters"
	"github.com/patrickwarner/adlibrary/internal/models"
	"github.com/patrickwarner/adlibrary/internal/observability"
	"go.uber.org/zap"
)

// AllPlatformsTab is the tab that clears the platform selection.
const AllPlatformsTab = "all"

// State is the single owner of the collection and the query.
type State struct {
	mu      sync.RWMutex
	store   models.AdStore
	filters models.FilterOptions
	visible []models.Ad
	auth    auth.State

	logger  *zap.Logger
	metrics observability.MetricsRegistry
}

// Snapshot is a consistent read of the whole state.
type Snapshot struct {
	Filters models.FilterOptions `json:"filters"`
	Visible []models.Ad          `json:"visible"`
	Total   int                  `json:"total"`
	Auth    auth.State           `json:"auth"`
}

// New creates a State over store with the default query. Auth starts loading
// until a gate is attached.
func New(store models.AdStore, logger *zap.Logger, metrics observability.MetricsRegistry) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	s := &State{
		store:   store,
		filters: models.DefaultFilterOptions(),
		auth:    auth.State{IsLoading: true},
		logger:  logger,
		metrics: metrics,
	}
	s.derive()
	return s
}

// derive recomputes the visible list. Callers hold mu for writing.
func (s *State) derive() {
	start := time.Now()
	all := s.store.All()
	s.visible = filters.Apply(all, s.filters)
	elapsed := time.Since(start)

	s.metrics.RecordDerive(elapsed, len(s.visible), len(all))
	s.logger.Debug("derived visible ads",
		zap.Int("visible", len(s.visible)),
		zap.Int("total", len(all)),
		zap.Duration("duration", elapsed),
	)
}

// AddAd creates an ad owned by the current user, or by the anonymous owner
// when nobody is signed in.
func (s *State) AddAd(draft models.Draft) models.Ad {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := models.AnonymousUser
	if s.auth.User != nil && s.auth.User.ID != "" {
		owner = s.auth.User.ID
	}
	ad := s.store.AddAd(draft, owner)
	s.metrics.IncrementAdsCreated(string(ad.Platform))
	s.derive()
	return ad
}

// ToggleBookmark flips the bookmark of the ad with id. It reports false and
// changes nothing when the id is unknown.
func (s *State) ToggleBookmark(id string) (models.Ad, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ad, ok := s.store.ToggleBookmark(id)
	if !ok {
		return models.Ad{}, false
	}
	s.metrics.IncrementBookmarkToggles(ad.IsBookmarked)
	s.derive()
	return ad, true
}

// SetFilters replaces the whole query.
func (s *State) SetFilters(opts models.FilterOptions) models.FilterOptions {
	return s.update(func(models.FilterOptions) models.FilterOptions { return opts })
}

// SetSearchQuery replaces the free-text query.
func (s *State) SetSearchQuery(q string) models.FilterOptions {
	return s.update(func(f models.FilterOptions) models.FilterOptions {
		f.SearchQuery = q
		return f
	})
}

// SetPlatforms replaces the platform selection.
func (s *State) SetPlatforms(ps []models.Platform) models.FilterOptions {
	return s.update(func(f models.FilterOptions) models.FilterOptions {
		f.Platforms = append([]models.Platform{}, ps...)
		return f
	})
}

// SelectPlatformTab selects a single platform, or every platform for the
// "all" tab.
func (s *State) SelectPlatformTab(tab string) models.FilterOptions {
	if tab == AllPlatformsTab || tab == "" {
		return s.SetPlatforms(nil)
	}
	return s.SetPlatforms([]models.Platform{models.Platform(tab)})
}

// ToggleDimension adds or removes value from the selection of d.
func (s *State) ToggleDimension(d models.Dimension, value string, checked bool) models.FilterOptions {
	return s.update(func(f models.FilterOptions) models.FilterOptions {
		return f.ToggleValue(d, value, checked)
	})
}

// SetSort changes the sort key and order.
func (s *State) SetSort(key models.SortKey, order models.SortOrder) models.FilterOptions {
	return s.update(func(f models.FilterOptions) models.FilterOptions {
		f.SortBy = key
		f.SortOrder = order
		return f
	})
}

// ClearFilters restores the default query, search and sort included.
func (s *State) ClearFilters() models.FilterOptions {
	return s.SetFilters(models.DefaultFilterOptions())
}

func (s *State) update(fn func(models.FilterOptions) models.FilterOptions) models.FilterOptions {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = fn(s.filters.Clone()).Clone()
	s.derive()
	return s.filters.Clone()
}

// Visible returns the current filtered, ordered ads.
func (s *State) Visible() []models.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Ad{}, s.visible...)
}

// Filters returns the current query.
func (s *State) Filters() models.FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Clone()
}

// Ad looks up an ad in the full collection, whether visible or not.
func (s *State) Ad(id string) (models.Ad, error) {
	ad, ok := s.store.Get(id)
	if !ok {
		return models.Ad{}, models.ErrNotFound
	}
	return ad, nil
}

// All returns the full collection, newest first.
func (s *State) All() []models.Ad {
	return s.store.All()
}

// PlatformCounts counts ads per platform over the full collection. Every
// platform is present, and AllPlatformsTab holds the total.
func (s *State) PlatformCounts() map[string]int {
	all := s.store.All()
	counts := make(map[string]int, len(models.Platforms())+1)
	counts[AllPlatformsTab] = len(all)
	for _, p := range models.Platforms() {
		counts[string(p)] = 0
	}
	for _, a := range all {
		counts[string(a.Platform)]++
	}
	return counts
}

// ActiveFiltersCount is the number of selected category values.
func (s *State) ActiveFiltersCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.ActiveCount()
}

// AuthState returns the last identity state delivered by the gate.
func (s *State) AuthState() auth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// Trace reruns the current query stage by stage. It does not change the
// visible list.
func (s *State) Trace() logic.FilterTrace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var trace logic.FilterTrace
	filters.ApplyWithTrace(s.store.All(), s.filters, &trace)
	return trace
}

// AttachAuth subscribes to gate. The returned function unsubscribes.
func (s *State) AttachAuth(gate auth.Gate) func() {
	return gate.OnAuthStateChanged(func(st auth.State) {
		s.mu.Lock()
		s.auth = st
		s.mu.Unlock()
		s.logger.Info("auth state changed", zap.String("status", string(auth.StatusOf(st))))
	})
}

// Snapshot returns the query, the visible list and the auth state read
// under one lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Filters: s.filters.Clone(),
		Visible: append([]models.Ad{}, s.visible...),
		Total:   s.store.Len(),
		Auth:    s.auth,
	}
}
