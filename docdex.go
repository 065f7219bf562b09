// Package docdex provides a local documentation search engine over
// Dash-style docset bundles. It discovers docsets on disk, queries their
// embedded index databases, ranks matches with fuzzy scoring, extracts
// readable content from documentation pages, and caches results in
// memory and on disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, lru/).
package docdex
