package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var (
	_ docdex.Index          = (*Index)(nil)
	_ docdex.SchemaDetector = (*Index)(nil)
	_ docdex.IndexStats     = (*Index)(nil)
)

// Index queries docset index databases. Each database is opened
// read-only on first access and the handle is cached for the lifetime
// of the Index, so repeated searches never reopen files.
type Index struct {
	mu      sync.Mutex
	handles map[string]*handle
}

// handle pairs an open database with facts probed once per file.
type handle struct {
	db *DB

	// hasAnchor records whether a searchIndex table carries the
	// optional anchor column.
	hasAnchor bool
}

// NewIndex creates a new Index.
func NewIndex() *Index {
	return &Index{handles: make(map[string]*handle)}
}

// Close closes every cached database handle.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var errs []error
	for path, h := range ix.handles {
		if err := h.db.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(ix.handles, path)
	}
	return errors.Join(errs...)
}

// Entries returns index rows whose names contain term. The LIKE filter
// only bounds the candidate set handed to the ranker, so it fetches
// twice the requested limit to give scoring some slack.
func (ix *Index) Entries(ctx context.Context, docset *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error) {
	if limit <= 0 {
		limit = docdex.DefaultLimit
	}

	switch docset.Schema {
	case docdex.SchemaSearchIndex:
		return ix.searchIndexEntries(ctx, docset, term, limit*2)
	case docdex.SchemaTokenTable:
		return ix.tokenEntries(ctx, docset, term, limit*2)
	default:
		return nil, docdex.Errorf(docdex.ESCHEMA, "docset %q has an unsupported index layout", docset.Name)
	}
}

// Count returns the number of symbol rows in a docset's index.
func (ix *Index) Count(ctx context.Context, docset *docdex.Docset) (int, error) {
	var query string
	switch docset.Schema {
	case docdex.SchemaSearchIndex:
		query = `SELECT COUNT(*) FROM searchIndex`
	case docdex.SchemaTokenTable:
		query = `SELECT COUNT(*) FROM ZTOKEN`
	default:
		return 0, docdex.Errorf(docdex.ESCHEMA, "docset %q has an unsupported index layout", docset.Name)
	}

	h, err := ix.handleFor(ctx, docset)
	if err != nil {
		return 0, err
	}

	var count int
	if err := h.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, docdex.Errorf(docdex.EQUERY, "counting docset %q: %v", docset.Name, err)
	}
	return count, nil
}

// DetectSchema classifies the index database at path by its tables.
// It runs once per docset at discovery time; the result rides on the
// Docset record afterwards.
func (ix *Index) DetectSchema(ctx context.Context, path string) (docdex.SchemaKind, error) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return docdex.SchemaUnsupported, fmt.Errorf("opening index database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return docdex.SchemaUnsupported, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return docdex.SchemaUnsupported, fmt.Errorf("reading tables: %w", err)
		}
		tables[name] = true
	}
	if err := rows.Err(); err != nil {
		return docdex.SchemaUnsupported, fmt.Errorf("reading tables: %w", err)
	}

	switch {
	case tables["searchIndex"]:
		return docdex.SchemaSearchIndex, nil
	case tables["ZTOKEN"]:
		return docdex.SchemaTokenTable, nil
	default:
		return docdex.SchemaUnsupported, nil
	}
}

func (ix *Index) searchIndexEntries(ctx context.Context, docset *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error) {
	h, err := ix.handleFor(ctx, docset)
	if err != nil {
		return nil, err
	}

	query := `SELECT name, type, path FROM searchIndex WHERE name LIKE ? ORDER BY name LIMIT ?`
	if h.hasAnchor {
		query = `SELECT name, type, path, anchor FROM searchIndex WHERE name LIKE ? ORDER BY name LIMIT ?`
	}

	rows, err := h.db.QueryContext(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, docdex.Errorf(docdex.EQUERY, "querying docset %q: %v", docset.Name, err)
	}
	defer rows.Close()

	var entries []docdex.IndexEntry
	for rows.Next() {
		var name string
		var typ, path, anchor sql.NullString
		dest := []any{&name, &typ, &path}
		if h.hasAnchor {
			dest = append(dest, &anchor)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, docdex.Errorf(docdex.EQUERY, "reading docset %q: %v", docset.Name, err)
		}
		if entry, ok := newEntry(docset.Name, name, typ.String, path.String, anchor.String); ok {
			entries = append(entries, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, docdex.Errorf(docdex.EQUERY, "reading docset %q: %v", docset.Name, err)
	}
	return entries, nil
}

func (ix *Index) tokenEntries(ctx context.Context, docset *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error) {
	h, err := ix.handleFor(ctx, docset)
	if err != nil {
		return nil, err
	}

	pattern := "%" + term + "%"
	rows, err := h.db.QueryContext(ctx, `
		SELECT t.ZTOKENNAME, tt.ZTYPENAME, t.ZPATH
		FROM ZTOKEN t
		LEFT JOIN ZTOKENTYPE tt ON t.ZTOKENTYPE = tt.Z_PK
		WHERE t.ZTOKENNAME LIKE ?
		ORDER BY t.ZTOKENNAME
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		// Some generators omit the type table; retry against ZTOKEN alone.
		rows, err = h.db.QueryContext(ctx, `
			SELECT ZTOKENNAME, '', ZPATH
			FROM ZTOKEN
			WHERE ZTOKENNAME LIKE ?
			ORDER BY ZTOKENNAME
			LIMIT ?
		`, pattern, limit)
	}
	if err != nil {
		return nil, docdex.Errorf(docdex.EQUERY, "querying docset %q: %v", docset.Name, err)
	}
	defer rows.Close()

	var entries []docdex.IndexEntry
	for rows.Next() {
		var name string
		var typ, path sql.NullString
		if err := rows.Scan(&name, &typ, &path); err != nil {
			return nil, docdex.Errorf(docdex.EQUERY, "reading docset %q: %v", docset.Name, err)
		}
		if entry, ok := newEntry(docset.Name, name, typ.String, path.String, ""); ok {
			entries = append(entries, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, docdex.Errorf(docdex.EQUERY, "reading docset %q: %v", docset.Name, err)
	}
	return entries, nil
}

// handleFor returns the cached handle for the docset's index database,
// opening and probing it on first access.
func (ix *Index) handleFor(ctx context.Context, docset *docdex.Docset) (*handle, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if h, ok := ix.handles[docset.IndexPath]; ok {
		return h, nil
	}

	db := NewDB(docset.IndexPath)
	if err := db.Open(); err != nil {
		return nil, docdex.Errorf(docdex.EQUERY, "cannot open index for docset %q: %v", docset.Name, err)
	}

	h := &handle{db: db}
	if docset.Schema == docdex.SchemaSearchIndex {
		hasAnchor, err := probeAnchorColumn(ctx, db)
		if err != nil {
			db.Close()
			return nil, docdex.Errorf(docdex.EQUERY, "cannot inspect index for docset %q: %v", docset.Name, err)
		}
		h.hasAnchor = hasAnchor
	}

	ix.handles[docset.IndexPath] = h
	return h, nil
}

// probeAnchorColumn reports whether the searchIndex table has the
// optional anchor column. Probed once per handle.
func probeAnchorColumn(ctx context.Context, db *DB) (bool, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA table_info(searchIndex)`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, "anchor") {
			return true, nil
		}
	}
	return false, rows.Err()
}

// newEntry normalizes one index row. Paths sometimes carry an embedded
// #fragment, which moves to the anchor field. Rows with empty or
// traversal paths are dropped rather than failing the whole docset.
func newEntry(docset, name, typ, path, anchor string) (docdex.IndexEntry, bool) {
	if name == "" || path == "" {
		return docdex.IndexEntry{}, false
	}
	if i := strings.Index(path, "#"); i >= 0 {
		if anchor == "" {
			anchor = path[i+1:]
		}
		path = path[:i]
	}
	if path == "" || docdex.ValidateRelPath(path) != nil {
		return docdex.IndexEntry{}, false
	}
	return docdex.IndexEntry{
		Docset: docset,
		Name:   name,
		Type:   typ,
		Path:   path,
		Anchor: anchor,
	}, true
}
