package models

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an ad is not present in the store.
var ErrNotFound = errors.New("ad not found")

// AnonymousUser owns ads created without an authenticated user.
const AnonymousUser = "anonymous"

// AdStore holds the authoritative ad collection for a session.
// Ads are kept newest-first at the storage level; callers sort separately.
type AdStore interface {
	// Read operations
	All() []Ad
	Get(id string) (Ad, bool)
	Len() int

	// AddAd assigns an identifier and owner to draft and prepends it.
	AddAd(draft Draft, owner string) Ad
	// ToggleBookmark flips the bookmark flag of the ad with id. It reports
	// false and changes nothing when no ad matches.
	ToggleBookmark(id string) (Ad, bool)

	// Reset replaces the whole collection.
	Reset(ads []Ad)
}

// IDGenerator produces identifiers for new ads.
type IDGenerator func() string

// NewTimeOrderedID returns a UUIDv7, which embeds the creation time and is
// unique per process.
func NewTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// adSnapshot is an immutable view of the collection.
type adSnapshot struct {
	ads   []Ad
	index map[string]int // ad ID -> position in ads
}

func newSnapshot(ads []Ad) *adSnapshot {
	snap := &adSnapshot{
		ads:   ads,
		index: make(map[string]int, len(ads)),
	}
	for i, a := range ads {
		if _, dup := snap.index[a.ID]; !dup {
			snap.index[a.ID] = i
		}
	}
	return snap
}

func (s *adSnapshot) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// InMemoryAdStore implements AdStore with copy-on-write snapshots.
// Reads never block; writers are serialised by mu.
type InMemoryAdStore struct {
	data  atomic.Pointer[adSnapshot]
	mu    sync.Mutex
	newID IDGenerator
}

// NewInMemoryAdStore creates a store holding a copy of ads.
func NewInMemoryAdStore(ads []Ad) *InMemoryAdStore {
	return NewInMemoryAdStoreWithIDs(ads, NewTimeOrderedID)
}

// NewInMemoryAdStoreWithIDs creates a store that draws identifiers from gen.
func NewInMemoryAdStoreWithIDs(ads []Ad, gen IDGenerator) *InMemoryAdStore {
	if gen == nil {
		gen = NewTimeOrderedID
	}
	s := &InMemoryAdStore{newID: gen}
	s.data.Store(newSnapshot(cloneAds(ads)))
	return s
}

// All returns a copy of every ad, newest-first.
func (s *InMemoryAdStore) All() []Ad {
	return cloneAds(s.data.Load().ads)
}

// Get returns the ad with id.
func (s *InMemoryAdStore) Get(id string) (Ad, bool) {
	snap := s.data.Load()
	i, ok := snap.index[id]
	if !ok {
		return Ad{}, false
	}
	return snap.ads[i].clone(), true
}

// Len returns the number of ads.
func (s *InMemoryAdStore) Len() int {
	return len(s.data.Load().ads)
}

// AddAd builds an Ad from draft, owned by owner, and prepends it.
func (s *InMemoryAdStore) AddAd(draft Draft, owner string) Ad {
	if owner == "" {
		owner = AnonymousUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data.Load()
	id := s.newID()
	// Guard against a generator that repeats itself.
	for id == "" || current.has(id) {
		id = NewTimeOrderedID()
	}

	ad := Ad{
		ID:              id,
		Title:           draft.Title,
		Description:     draft.Description,
		ImageURL:        draft.ImageURL,
		Platform:        draft.Platform,
		Industry:        draft.Industry,
		Angle:           draft.Angle,
		CampaignGoal:    draft.CampaignGoal,
		AdFormat:        draft.AdFormat,
		FunnelStage:     draft.FunnelStage,
		TargetGroup:     draft.TargetGroup,
		Tags:            draft.Tags,
		CreatedAt:       draft.CreatedAt,
		UserID:          owner,
		IsBookmarked:    false,
		EngagementScore: draft.EngagementScore,
		BrandName:       draft.BrandName,
		CTAText:         draft.CTAText,
		TargetAudience:  draft.TargetAudience,
	}.clone()
	if ad.Tags == nil {
		ad.Tags = []string{}
	}

	next := make([]Ad, 0, len(current.ads)+1)
	next = append(next, ad)
	next = append(next, current.ads...)
	s.data.Store(newSnapshot(next))

	return ad.clone()
}

// ToggleBookmark flips IsBookmarked on the ad with id.
func (s *InMemoryAdStore) ToggleBookmark(id string) (Ad, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.data.Load()
	i, ok := current.index[id]
	if !ok {
		return Ad{}, false
	}

	next := make([]Ad, len(current.ads))
	copy(next, current.ads)
	next[i].IsBookmarked = !next[i].IsBookmarked
	s.data.Store(newSnapshot(next))

	return next[i].clone(), true
}

// Reset replaces the collection with a copy of ads.
func (s *InMemoryAdStore) Reset(ads []Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Store(newSnapshot(cloneAds(ads)))
}

func cloneAds(ads []Ad) []Ad {
	out := make([]Ad, len(ads))
	for i, a := range ads {
		out[i] = a.clone()
	}
	return out
}
