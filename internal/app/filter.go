package app

import (
	"strings"

	"ushuaia_experiences/internal/domain"
)

// MatchAll is the wildcard option the views use for category and season.
const MatchAll = "Todas"

func wildcard(s string) bool { return s == "" || s == MatchAll }

// Filter narrows the served set: case-insensitive substring match on title
// or description, exact-or-wildcard category, exact-or-wildcard season.
// The three predicates are ANDed. The input slice is never mutated.
func Filter(items []domain.Experience, query, category, season string) []domain.Experience {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Experience, 0, len(items))
	for _, e := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		if !wildcard(category) && e.Category != category {
			continue
		}
		if !wildcard(season) && e.Season != season {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindByID returns the first record with the given id, or nil. Ids are
// unique within a result set, so first is only.
func FindByID(items []domain.Experience, id string) *domain.Experience {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
