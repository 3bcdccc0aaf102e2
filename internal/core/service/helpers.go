package service

import (
	"strings"

	"github.com/reelhouse/movie-catalog/internal/core/domain"
)

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// unique returns ids without duplicates, preserving first-seen order.
func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func personIDs(ps []domain.Person) map[string]struct{} {
	out := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		out[p.ID] = struct{}{}
	}
	return out
}

func genreIDSet(gs []domain.Genre) map[string]struct{} {
	out := make(map[string]struct{}, len(gs))
	for _, g := range gs {
		out[g.ID] = struct{}{}
	}
	return out
}

func missingIDs(kind string, want []string, have map[string]struct{}) []string {
	var out []string
	for _, id := range unique(want) {
		if _, ok := have[id]; !ok {
			out = append(out, kind+" "+id)
		}
	}
	return out
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
