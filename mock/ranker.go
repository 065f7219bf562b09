package mock

import "github.com/docdex/docdex"

var _ docdex.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of docdex.Ranker.
type Ranker struct {
	RankFn func(term string, entries []docdex.IndexEntry, threshold, limit int) []docdex.SearchResult
}

func (r *Ranker) Rank(term string, entries []docdex.IndexEntry, threshold, limit int) []docdex.SearchResult {
	return r.RankFn(term, entries, threshold, limit)
}
