package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docdex/docdex"
)

// RelevanceBoost is added to scores from docsets matching the detected
// project stack, capped at 100.
const RelevanceBoost = 20

// migrationLimit caps the merged result count for migration guidance.
const migrationLimit = 20

// RelevantDocs searches the docsets matching the detected project stack
// and boosts their scores. When the stack-matched docsets yield nothing
// the search falls back to the full inventory.
func (s *Searcher) RelevantDocs(ctx context.Context, pc *docdex.ProjectContext, term string, limit int) (*docdex.SearchResponse, error) {
	begin := time.Now()

	if pc == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "project context required")
	}
	req := docdex.SearchRequest{Term: term, Limit: limit}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	docsets, err := s.inventory(ctx)
	if err != nil {
		return nil, err
	}

	var results []docdex.SearchResult
	var skipped []docdex.SkippedDocset

	relevant := stackDocsets(pc, docsets)
	if len(relevant) > 0 {
		results, skipped, err = s.searchDocsets(ctx, relevant, req)
		if err != nil {
			return nil, err
		}
		for i := range results {
			results[i].Score = boost(results[i].Score, RelevanceBoost)
		}
	}

	if len(results) == 0 {
		results, skipped, err = s.searchDocsets(ctx, docsets, req)
		if err != nil {
			return nil, err
		}
	}

	results = dedupeResults(results)
	docdex.SortResults(results)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	s.attachContent(ctx, docsets, results)

	return &docdex.SearchResponse{
		Results: results,
		Skipped: skipped,
		Elapsed: time.Since(begin),
	}, nil
}

// MigrationDocs collects upgrade guidance for a technology by merging
// searches over a sequence of migration-flavored terms. Results carry
// extracted page content.
func (s *Searcher) MigrationDocs(ctx context.Context, tech, fromVersion, toVersion string) (*docdex.SearchResponse, error) {
	begin := time.Now()

	tech = strings.TrimSpace(tech)
	if tech == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "technology required")
	}

	docsets, err := s.inventory(ctx)
	if err != nil {
		return nil, err
	}
	scope := filterDocsets(docsets, tech)
	if len(scope) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no docset matches %q", tech)
	}

	var merged []docdex.SearchResult
	var skipped []docdex.SkippedDocset
	seen := make(map[string]bool)
	skippedSeen := make(map[string]bool)

	for _, term := range migrationTerms(strings.TrimSpace(fromVersion), strings.TrimSpace(toVersion)) {
		req := docdex.SearchRequest{Term: term, Limit: docdex.DefaultLimit}
		req.Normalize()

		results, skips, err := s.searchDocsets(ctx, scope, req)
		if err != nil {
			return nil, err
		}
		for _, sk := range skips {
			if skippedSeen[sk.Docset] {
				continue
			}
			skippedSeen[sk.Docset] = true
			skipped = append(skipped, sk)
		}
		for _, r := range results {
			k := resultKey(r)
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, r)
		}
	}

	docdex.SortResults(merged)
	if len(merged) > migrationLimit {
		merged = merged[:migrationLimit]
	}

	s.attachContent(ctx, scope, merged)

	return &docdex.SearchResponse{
		Results: merged,
		Skipped: skipped,
		Elapsed: time.Since(begin),
	}, nil
}

// APIReference returns current reference entries for an API inside a
// technology's docsets. Entries typed like API symbols are preferred;
// when the docset types nothing that way every match is returned.
func (s *Searcher) APIReference(ctx context.Context, api, tech string) (*docdex.SearchResponse, error) {
	begin := time.Now()

	api = strings.TrimSpace(api)
	if api == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "api name required")
	}
	tech = strings.TrimSpace(tech)
	if tech == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "technology required")
	}

	docsets, err := s.inventory(ctx)
	if err != nil {
		return nil, err
	}
	scope := filterDocsets(docsets, tech)
	if len(scope) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no docset matches %q", tech)
	}

	req := docdex.SearchRequest{Term: api, Limit: docdex.DefaultLimit}
	req.Normalize()

	results, skipped, err := s.searchDocsets(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	typed := make([]docdex.SearchResult, 0, len(results))
	for _, r := range results {
		if referenceTypes[strings.ToLower(r.Entry.Type)] {
			typed = append(typed, r)
		}
	}
	if len(typed) > 0 {
		results = typed
	}

	docdex.SortResults(results)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	s.attachContent(ctx, scope, results)

	return &docdex.SearchResponse{
		Results: results,
		Skipped: skipped,
		Elapsed: time.Since(begin),
	}, nil
}

// migrationTerms builds the query sequence for migration guidance.
func migrationTerms(from, to string) []string {
	terms := make([]string, 0, 10)
	if from != "" && to != "" {
		terms = append(terms, fmt.Sprintf("migrating from %s to %s", from, to))
	}
	if to != "" {
		terms = append(terms, "migrating to "+to, "what's new in "+to)
	}
	return append(terms,
		"migration guide",
		"migration",
		"upgrade guide",
		"upgrading",
		"breaking changes",
		"changelog",
		"release notes",
	)
}

// referenceTypes are entry types that answer API reference lookups.
var referenceTypes = map[string]bool{
	"class":       true,
	"constant":    true,
	"constructor": true,
	"enum":        true,
	"function":    true,
	"interface":   true,
	"macro":       true,
	"method":      true,
	"module":      true,
	"property":    true,
	"protocol":    true,
	"struct":      true,
	"type":        true,
}

// stackLanguageDocsets maps detected languages to docsets usually
// installed for them.
var stackLanguageDocsets = map[string][]string{
	"javascript": {"javascript", "nodejs", "mdn"},
	"typescript": {"typescript", "javascript", "nodejs"},
	"python":     {"python", "python 3"},
	"go":         {"go"},
	"rust":       {"rust"},
}

// stackFrameworkDocsets maps detected frameworks to their docsets.
var stackFrameworkDocsets = map[string][]string{
	"react":   {"react", "react native"},
	"nextjs":  {"nextjs", "react"},
	"vue":     {"vuejs", "vue"},
	"angular": {"angular"},
	"svelte":  {"svelte"},
	"express": {"express", "nodejs"},
	"django":  {"django"},
	"flask":   {"flask"},
	"fastapi": {"fastapi"},
	"gin":     {"go"},
	"echo":    {"go"},
	"chi":     {"go"},
	"actix":   {"rust"},
	"axum":    {"rust"},
}

// stackDependencyDocsets maps well-known dependencies to their docsets.
var stackDependencyDocsets = map[string][]string{
	"lodash":     {"lodash"},
	"axios":      {"axios"},
	"express":    {"express", "nodejs"},
	"mongoose":   {"mongoose"},
	"pandas":     {"pandas"},
	"numpy":      {"numpy"},
	"requests":   {"requests"},
	"tensorflow": {"tensorflow"},
	"pytorch":    {"pytorch"},
}

// stackDocsets selects the installed docsets matching the detected
// project stack, in deterministic order.
func stackDocsets(pc *docdex.ProjectContext, docsets []*docdex.Docset) []*docdex.Docset {
	var names []string
	names = append(names, stackLanguageDocsets[strings.ToLower(pc.Language)]...)
	names = append(names, stackFrameworkDocsets[strings.ToLower(pc.Framework)]...)
	for _, dep := range pc.Dependencies {
		names = append(names, stackDependencyDocsets[strings.ToLower(dep)]...)
	}
	// A dependency may itself name a docset, as pandas or lodash do.
	names = append(names, pc.Dependencies...)

	var matched []*docdex.Docset
	seen := make(map[string]bool)
	for _, name := range names {
		for _, ds := range docsets {
			if !matchesName(ds.Name, name) {
				continue
			}
			if seen[ds.RealPath] {
				continue
			}
			seen[ds.RealPath] = true
			matched = append(matched, ds)
		}
	}
	return matched
}

// matchesName reports whether a docset name and a stack-derived
// candidate refer to the same documentation. Containment only counts
// for names of three or more characters, so "go" never matches inside
// "google".
func matchesName(docset, candidate string) bool {
	d := foldName(docset)
	c := foldName(candidate)
	if d == "" || c == "" {
		return false
	}
	if d == c {
		return true
	}
	if len(d) >= 3 && strings.Contains(c, d) {
		return true
	}
	if len(c) >= 3 && strings.Contains(d, c) {
		return true
	}
	return false
}

// foldName normalizes a docset or dependency name for comparison:
// lowercase, dots removed, underscores and hyphens folded to spaces.
func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// resultKey identifies a result for deduplication across merged
// queries.
func resultKey(r docdex.SearchResult) string {
	return r.Entry.Docset + "\x00" + r.Entry.Path + "\x00" + r.Entry.Anchor + "\x00" + r.Entry.Name
}

// dedupeResults drops duplicate entries, keeping the first occurrence.
func dedupeResults(results []docdex.SearchResult) []docdex.SearchResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		k := resultKey(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func boost(score, by int) int {
	score += by
	if score > 100 {
		score = 100
	}
	return score
}
