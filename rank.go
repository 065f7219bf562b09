package docdex

import (
	"sort"
	"strings"
)

// callableTypes are entry types that usually answer "how do I call
// this" queries; they get a small ranking bonus in exact mode.
var callableTypes = map[string]bool{
	"function": true,
	"method":   true,
	"class":    true,
}

// popularDocsets get a small exact-mode bonus so ubiquitous stacks
// surface first on ties.
var popularDocsets = map[string]bool{
	"python":     true,
	"javascript": true,
	"typescript": true,
	"react":      true,
	"nodejs":     true,
	"go":         true,
	"html":       true,
	"css":        true,
}

// RankExact scores entries with deterministic string heuristics instead
// of edit distance: exact name matches score 100, prefix matches 80 and
// substring matches 60, with small bonuses for callable entry types and
// widely used docsets (capped at 100). The contract matches
// Ranker.Rank: scores below threshold are discarded, the survivors are
// fully sorted, and only then does limit truncate the list.
func RankExact(term string, entries []IndexEntry, threshold, limit int) []SearchResult {
	t := strings.ToLower(strings.TrimSpace(term))

	results := make([]SearchResult, 0, len(entries))
	for _, e := range entries {
		score := exactScore(t, e)
		if score < threshold {
			continue
		}
		results = append(results, SearchResult{Entry: e, Score: score})
	}

	SortResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func exactScore(term string, e IndexEntry) int {
	name := strings.ToLower(e.Name)

	var score int
	switch {
	case name == term:
		score = 100
	case strings.HasPrefix(name, term):
		score = 80
	case strings.Contains(name, term):
		score = 60
	default:
		return 0
	}

	if callableTypes[strings.ToLower(e.Type)] {
		score += 10
	}
	if popularDocsets[strings.ToLower(e.Docset)] {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// SortResults orders results descending by score. Ties prefer shorter
// names, then case-insensitive lexical order, then docset name, so
// equal-score results are stable across runs.
func SortResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Entry.Name) != len(b.Entry.Name) {
			return len(a.Entry.Name) < len(b.Entry.Name)
		}
		an := strings.ToLower(a.Entry.Name)
		bn := strings.ToLower(b.Entry.Name)
		if an != bn {
			return an < bn
		}
		return a.Entry.Docset < b.Entry.Docset
	})
}
