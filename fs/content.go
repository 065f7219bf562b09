package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.ContentService = (*ContentService)(nil)

// rawExtensions are document types served as-is, without HTML
// extraction.
var rawExtensions = map[string]bool{
	".markdown": true,
	".md":       true,
	".text":     true,
	".txt":      true,
}

// ContentService loads documents from docset bundles and turns them
// into bounded readable text through the extraction pipeline.
type ContentService struct {
	Extractor docdex.Extractor
	Renderer  docdex.Renderer

	// Budget is the maximum returned text length in runes. Non-positive
	// means docdex.DefaultContentBudget.
	Budget int
}

// Content returns readable text for the document at relPath inside the
// docset. Index paths may carry an anchor fragment and may omit the
// .html suffix; both are resolved here.
func (s *ContentService) Content(ctx context.Context, docset *docdex.Docset, relPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if docset == nil {
		return "", docdex.Errorf(docdex.EINVALID, "docset required")
	}
	if !docset.HasContent() {
		return "", docdex.Errorf(docdex.ENOTFOUND, "docset %s ships no documents", docset.Name)
	}

	rel, _, _ := strings.Cut(relPath, "#")
	if err := docdex.ValidateRelPath(rel); err != nil {
		return "", err
	}

	path, err := s.resolve(docset, rel)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", docdex.Errorf(docdex.EEXTRACT, "reading document %q: %v", rel, err)
	}
	if bytes.IndexByte(data, 0) != -1 {
		return "", docdex.Errorf(docdex.EEXTRACT, "document %q is not text", rel)
	}

	budget := s.Budget
	if budget <= 0 {
		budget = docdex.DefaultContentBudget
	}

	if rawExtensions[strings.ToLower(filepath.Ext(path))] {
		return docdex.Truncate(strings.TrimSpace(string(data)), budget), nil
	}

	extracted, err := s.Extractor.Extract(string(data))
	if err != nil {
		return "", err
	}
	text, err := s.Renderer.Render(extracted.ContentHTML)
	if err != nil {
		return "", err
	}
	return docdex.Truncate(text, budget), nil
}

// resolve locates the document file for rel, retrying with an .html
// then .htm suffix. Symbol names holding dots make the apparent
// extension unreliable, so the retry happens unconditionally.
func (s *ContentService) resolve(docset *docdex.Docset, rel string) (string, error) {
	base := filepath.Join(docset.DocumentsPath, filepath.FromSlash(rel))
	for _, path := range []string{base, base + ".html", base + ".htm"} {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", docdex.Errorf(docdex.ENOTFOUND, "document %q not found in docset %s", rel, docset.Name)
}
