package world

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// levenshteinLimit is the largest edit distance accepted for a name of the
// given length.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// FindCountry resolves a user-typed name: exact, then case-insensitive,
// then the closest name within the edit-distance limit. Ties go to the
// alphabetically first name.
func (w *World) FindCountry(query string) (CountryID, bool) {
	if _, ok := w.Store.Country(CountryID(query)); ok {
		return CountryID(query), true
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, id := range w.Store.IDs() {
		if strings.ToLower(string(id)) == q {
			return id, true
		}
	}
	if s := w.Suggest(query, 1); len(s) > 0 {
		return s[0], true
	}
	return "", false
}

// Suggest returns up to limit country names close to query, best first.
func (w *World) Suggest(query string, limit int) []CountryID {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	type scored struct {
		id   CountryID
		dist int
	}
	var results []scored
	for _, id := range w.Store.IDs() {
		name := strings.ToLower(string(id))
		dist := levenshtein.ComputeDistance(q, name)
		if dist > levenshteinLimit(len(name)) {
			continue
		}
		results = append(results, scored{id: id, dist: dist})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].id < results[j].id
		}
		return results[i].dist < results[j].dist
	})
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]CountryID, len(results))
	for i, r := range results {
		out[i] = r.id
	}
	return out
}
