package docdex

import (
	"errors"
	"fmt"
)

// Application error codes. These map failure modes to the layer that can
// act on them: EINVALID rejects a request outright, the per-docset codes
// (ESCHEMA, EQUERY, EEXTRACT) degrade a single docset, and ECACHE
// degrades to a cache miss.
const (
	ECACHE       = "cache"       // disk cache unreadable or corrupt
	EDISCOVERY   = "discovery"   // no docsets found under the configured roots
	EEXTRACT     = "extract"     // content file unreadable or not text
	EINTERNAL    = "internal"    // unexpected failure
	EINVALID     = "invalid"     // malformed request parameters
	ENOTFOUND    = "not_found"   // docset or document does not exist
	EQUERY       = "query"       // index database malformed or corrupt
	ESCHEMA      = "schema"      // unrecognized index database layout
	EUNAVAILABLE = "unavailable" // request rejected by admission control
)

// Error represents an application error with a machine-readable code and
// a human-readable message.
type Error struct {
	// Code categorizes the error for programmatic handling.
	Code string

	// Message is a human-readable description safe to show to users.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docdex error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the
// empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
