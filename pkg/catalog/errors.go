package catalog

import (
	"errors"
	"strings"
)

// ErrMalformedEntry is matched by every MalformedEntryError through errors.Is.
var ErrMalformedEntry = errors.New("malformed catalog entry")

// MalformedEntryError reports a catalog document that cannot be accepted.
// A catalog is all-or-nothing, so any MalformedEntryError means no catalog was built.
type MalformedEntryError struct {
	// Path locates the offending record, e.g. "items[3].submenu[0]".
	// Empty when the problem concerns the document as a whole.
	Path string

	// Field is the wire name of the offending field, if any.
	Field string

	// Reason is a short human-readable description.
	Reason string

	// Err is the underlying decoder error, if any.
	Err error
}

func (e *MalformedEntryError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrMalformedEntry.Error())

	if loc := e.location(); loc != "" {
		sb.WriteString(" at ")
		sb.WriteString(loc)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

func (e *MalformedEntryError) location() string {
	switch {
	case e.Path == "":
		return e.Field
	case e.Field == "":
		return e.Path
	default:
		return e.Path + "." + e.Field
	}
}

// Is makes errors.Is(err, ErrMalformedEntry) hold for any MalformedEntryError.
func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}
