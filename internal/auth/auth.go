// Package auth gates the catalog behind an authenticated identity.
//
// A Provider holds the current State and notifies subscribers whenever it
// changes. Consumers only see the Gate interface, so the identity source can
// be swapped without touching the catalog.
package auth

import "sync"

// Identity is an authenticated principal.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// State is what subscribers observe. User is nil when nobody is signed in.
type State struct {
	User      *Identity `json:"user"`
	IsLoading bool      `json:"is_loading"`
}

// Gate is the subscription surface of an identity provider.
type Gate interface {
	// OnAuthStateChanged calls fn with the current state right away and again
	// after every change. The returned function stops delivery and may be
	// called more than once.
	OnAuthStateChanged(fn func(State)) (unsubscribe func())
}

// Provider is an in-process Gate. It starts in the loading state.
// Subscribers see changes in the order they were made. Callbacks may read
// Current but must not sign in or out.
type Provider struct {
	// deliver serialises state changes with their callbacks.
	deliver sync.Mutex
	mu      sync.Mutex
	state   State
	nextID  int
	subs    map[int]func(State)
}

// NewProvider returns a Provider in the loading state.
func NewProvider() *Provider {
	return &Provider{
		state: State{IsLoading: true},
		subs:  make(map[int]func(State)),
	}
}

// OnAuthStateChanged implements Gate.
func (p *Provider) OnAuthStateChanged(fn func(State)) func() {
	p.deliver.Lock()
	defer p.deliver.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	current := p.state.clone()
	p.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// SignIn makes id the current user and ends loading.
func (p *Provider) SignIn(id Identity) {
	p.set(State{User: &id})
}

// SignOut clears the current user and ends loading.
func (p *Provider) SignOut() {
	p.set(State{})
}

// Current returns the current state.
func (p *Provider) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

func (p *Provider) set(s State) {
	p.deliver.Lock()
	defer p.deliver.Unlock()

	p.mu.Lock()
	p.state = s
	subs := make([]func(State), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	// Callbacks run outside mu so they may read Current.
	for _, fn := range subs {
		fn(s.clone())
	}
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Status names the three states the catalog distinguishes.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusUnauthenticated Status = "unauthenticated"
	StatusReady           Status = "ready"
)

// StatusOf classifies s. Loading wins over a present user.
func StatusOf(s State) Status {
	switch {
	case s.IsLoading:
		return StatusLoading
	case s.User == nil:
		return StatusUnauthenticated
	default:
		return StatusReady
	}
}

// User-facing copy for the non-ready states.
const (
	LoadingMessage = "Lade deine Anzeigen-Bibliothek..."
	WelcomeTitle   = "Willkommen zur Anzeigen-Bibliothek"
	WelcomePrompt  = "Bitte melde dich an, um auf deine kreative Inspirations-Zentrale zuzugreifen und Anzeigen von verschiedenen digitalen Plattformen zu sammeln."
)
