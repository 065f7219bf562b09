package search

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/docdex/docdex"
)

// requestKey derives the cache key for a search request. Every knob
// that shapes the result participates, so two requests share an entry
// only when their responses would be identical.
func requestKey(req docdex.SearchRequest) string {
	fields := fmt.Sprintf("%s|%s|%d|%d|%t",
		strings.ToLower(strings.TrimSpace(req.Term)),
		strings.ToLower(strings.TrimSpace(req.Docset)),
		req.Limit,
		req.Threshold,
		req.Exact,
	)
	return fmt.Sprintf("results-%x", xxhash.Sum64String(fields))
}
