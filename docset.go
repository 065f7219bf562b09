package docdex

import (
	"context"
	"sort"
	"strings"
	"time"
)

// SchemaKind identifies the table layout of a docset's index database.
// It is detected once, at discovery time, and stored on the Docset
// record so queries never re-detect it.
type SchemaKind string

// Supported index database layouts.
const (
	// SchemaSearchIndex is the flat searchIndex(name, type, path) table
	// written by most docset generators.
	SchemaSearchIndex SchemaKind = "search_index"

	// SchemaTokenTable is the normalized ZTOKEN/ZTOKENTYPE table family
	// produced by Core Data based generators.
	SchemaTokenTable SchemaKind = "token_table"

	// SchemaUnsupported marks an unrecognized layout. Queries against
	// such a docset fail with ESCHEMA and the docset is skipped.
	SchemaUnsupported SchemaKind = "unsupported"
)

// Docset represents a discovered documentation bundle.
// The JSON form round-trips through the disk cache, so field names and
// SchemaKind values must stay stable.
type Docset struct {
	// Name is the display name: CFBundleName from Info.plist when
	// present, otherwise the directory basename without the .docset
	// suffix.
	Name string `json:"name"`

	// Path is the bundle path as configured or found during traversal.
	Path string `json:"path"`

	// RealPath is the symlink-resolved canonical path. All cache keys
	// and traversal bookkeeping derive from real paths, never from Path.
	RealPath string `json:"realPath"`

	// Schema is the index database layout, detected at discovery time.
	Schema SchemaKind `json:"schema"`

	// IndexPath locates the embedded index database
	// (Contents/Resources/docSet.dsidx).
	IndexPath string `json:"indexPath"`

	// DocumentsPath locates the rendered pages, empty when the bundle
	// ships no content.
	DocumentsPath string `json:"documentsPath,omitempty"`

	// Category is the basename of the directory containing the bundle.
	Category string `json:"category,omitempty"`

	DiscoveredAt time.Time `json:"discoveredAt"`
}

// Validate returns an error if the docset contains invalid fields.
func (d *Docset) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "docset name required")
	}
	if d.RealPath == "" {
		return Errorf(EINVALID, "docset real path required")
	}
	if d.IndexPath == "" {
		return Errorf(EINVALID, "docset index path required")
	}
	return nil
}

// HasContent reports whether the bundle ships rendered documents.
func (d *Docset) HasContent() bool {
	return d.DocumentsPath != ""
}

// Registry discovers documentation bundles on disk and caches the
// inventory.
type Registry interface {
	// Discover returns the docset inventory in deterministic order
	// (case-insensitive by name). Returns EDISCOVERY when no bundles
	// exist under any configured root; callers treat that as an empty
	// inventory with a warning, never as fatal.
	Discover(ctx context.Context) ([]*Docset, error)
}

// SchemaDetector classifies a docset index database by its table layout.
type SchemaDetector interface {
	// DetectSchema inspects the database at path. Unrecognized layouts
	// yield SchemaUnsupported with a nil error; a non-nil error means
	// the database could not be opened or read at all.
	DetectSchema(ctx context.Context, path string) (SchemaKind, error)
}

// SortDocsets orders docsets case-insensitively by name, with real path
// as the tiebreaker, so inventory order is stable across runs.
func SortDocsets(docsets []*Docset) {
	sort.SliceStable(docsets, func(i, j int) bool {
		a := strings.ToLower(docsets[i].Name)
		b := strings.ToLower(docsets[j].Name)
		if a != b {
			return a < b
		}
		return docsets[i].RealPath < docsets[j].RealPath
	})
}

// FindDocset returns the docset matching name case-insensitively, or nil.
func FindDocset(docsets []*Docset, name string) *Docset {
	for _, d := range docsets {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}
