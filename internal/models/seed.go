package models

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeAds reads a JSON array of ads. Every ad needs a unique, non-empty id.
func DecodeAds(r io.Reader) ([]Ad, error) {
	var ads []Ad
	if err := json.NewDecoder(r).Decode(&ads); err != nil {
		return nil, fmt.Errorf("decode ads: %w", err)
	}
	seen := make(map[string]int, len(ads))
	for i := range ads {
		id := ads[i].ID
		if id == "" {
			return nil, fmt.Errorf("decode ads: ad %d has no id", i)
		}
		if j, ok := seen[id]; ok {
			return nil, fmt.Errorf("decode ads: duplicate id %q at %d and %d", id, j, i)
		}
		seen[id] = i
		if ads[i].Tags == nil {
			ads[i].Tags = []string{}
		}
	}
	return ads, nil
}

// MergeAds appends extra to base, skipping ads whose id is already taken.
// It returns the merged collection and the skipped ids in order.
func MergeAds(base, extra []Ad) ([]Ad, []string) {
	merged := make([]Ad, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, a := range base {
		seen[a.ID] = struct{}{}
		merged = append(merged, a)
	}
	var skipped []string
	for _, a := range extra {
		if _, ok := seen[a.ID]; ok {
			skipped = append(skipped, a.ID)
			continue
		}
		seen[a.ID] = struct{}{}
		merged = append(merged, a)
	}
	return merged, skipped
}

// LoadSeedFile reads the initial collection from a JSON file.
func LoadSeedFile(path string) ([]Ad, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return DecodeAds(f)
}
