package models

import "fmt"

// NewTestAdStore creates an in-memory store seeded with the sample ads and
// deterministic identifiers ("new-1", "new-2", ...).
func NewTestAdStore() *InMemoryAdStore {
	n := 0
	return NewInMemoryAdStoreWithIDs(SampleAds(), func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	})
}
