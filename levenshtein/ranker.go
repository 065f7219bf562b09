// Package levenshtein scores index entries against query terms using
// normalized edit distance.
package levenshtein

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Ranker = (*Ranker)(nil)

// Ranker scores entries by similarity between the query term and the
// entry name, case-insensitively.
type Ranker struct{}

func NewRanker() *Ranker { return &Ranker{} }

// Rank scores every entry, keeps those at or above threshold, sorts,
// and only then truncates to limit.
func (r *Ranker) Rank(term string, entries []docdex.IndexEntry, threshold, limit int) []docdex.SearchResult {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	results := make([]docdex.SearchResult, 0, len(entries))
	for _, entry := range entries {
		score := Score(term, entry.Name)
		if score < threshold {
			continue
		}
		results = append(results, docdex.SearchResult{Entry: entry, Score: score})
	}

	docdex.SortResults(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Score reports the similarity of term and name on the shared 0-100
// scale. The full-string ratio dominates for names of comparable
// length; for longer names a windowed ratio rewards the best matching
// substring at a slight discount, so a short term still surfaces the
// long symbol that contains it without outranking an exact match.
func Score(term, name string) int {
	a := strings.ToLower(term)
	b := strings.ToLower(name)
	if a == b {
		return 100
	}

	score := ratio(a, b)
	if partial := partialRatio(a, b) * 9 / 10; partial > score {
		score = partial
	}
	return score
}

// ratio is the normalized edit distance of the two strings, rounded:
// 100 means identical, 0 means nothing in common.
func ratio(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (100*(longest-dist) + longest/2) / longest
}

// partialRatio slides a window the size of the shorter string across
// the longer one and reports the best window ratio.
func partialRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) >= len(rb) {
		return ratio(a, b)
	}

	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		s := ratio(a, string(rb[i:i+len(ra)]))
		if s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}
