package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderStartsLoading(t *testing.T) {
	p := NewProvider()
	assert.Equal(t, StatusLoading, StatusOf(p.Current()))
	assert.Nil(t, p.Current().User)
}

func TestSubscriberReceivesCurrentStateImmediately(t *testing.T) {
	p := NewProvider()
	var got []State
	unsubscribe := p.OnAuthStateChanged(func(s State) { got = append(got, s) })
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.True(t, got[0].IsLoading)
}

func TestSubscriberSeesEveryChange(t *testing.T) {
	p := NewProvider()
	var got []Status
	unsubscribe := p.OnAuthStateChanged(func(s State) { got = append(got, StatusOf(s)) })
	defer unsubscribe()

	p.SignIn(Identity{ID: "u1", Email: "a@example.com"})
	p.SignOut()

	assert.Equal(t, []Status{StatusLoading, StatusReady, StatusUnauthenticated}, got)
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	p := NewProvider()
	calls := 0
	unsubscribe := p.OnAuthStateChanged(func(State) { calls++ })

	unsubscribe()
	unsubscribe()
	p.SignIn(Identity{ID: "u1"})

	assert.Equal(t, 1, calls)
}

func TestCallbackMayReadCurrent(t *testing.T) {
	p := NewProvider()
	var seen *Identity
	unsubscribe := p.OnAuthStateChanged(func(State) { seen = p.Current().User })
	defer unsubscribe()

	p.SignIn(Identity{ID: "u1"})
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.ID)
}

func TestStateIsCopied(t *testing.T) {
	p := NewProvider()
	p.SignIn(Identity{ID: "u1"})

	s := p.Current()
	s.User.ID = "changed"
	assert.Equal(t, "u1", p.Current().User.ID)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Status
	}{
		{"loading", State{IsLoading: true}, StatusLoading},
		{"loading with user", State{IsLoading: true, User: &Identity{ID: "u"}}, StatusLoading},
		{"signed out", State{}, StatusUnauthenticated},
		{"signed in", State{User: &Identity{ID: "u"}}, StatusReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.state))
		})
	}
}

func TestConcurrentChangesDeliveredInOrder(t *testing.T) {
	for run := 0; run < 200; run++ {
		p := NewProvider()
		var (
			mu   sync.Mutex
			last State
		)
		unsubscribe := p.OnAuthStateChanged(func(s State) {
			mu.Lock()
			last = s
			mu.Unlock()
		})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.SignIn(Identity{ID: "u1"})
		}()
		go func() {
			defer wg.Done()
			p.SignOut()
		}()
		wg.Wait()
		unsubscribe()

		mu.Lock()
		assert.Equal(t, StatusOf(p.Current()), StatusOf(last), "run %d", run)
		mu.Unlock()
	}
}
