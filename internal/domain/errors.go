package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Per-selection failures. Returned as values from the statistics pipeline;
// the presentation layer decides whether to keep stale output or show a
// placeholder.
var (
	// ErrInsufficientData means the selection has no events, or too few
	// usable grid points above Mc for the regression.
	ErrInsufficientData = errors.New("insufficient data in selection")

	// ErrInsufficientTimeSpan means the selection spans zero whole calendar
	// years, so an annual rate is undefined.
	ErrInsufficientTimeSpan = errors.New("selection spans less than one year")

	// ErrSelectionOutOfRange means a selection referenced a catalogue index
	// that does not exist.
	ErrSelectionOutOfRange = errors.New("selection index out of range")
)

// MalformedCatalogueError reports a catalogue file whose header lacks
// required columns. Load-time only, and fatal: the service has nothing to
// serve without a catalogue.
type MalformedCatalogueError struct {
	Path    string
	Missing []string
}

func (e *MalformedCatalogueError) Error() string {
	return fmt.Sprintf("malformed catalogue %s: missing columns %s",
		e.Path, strings.Join(e.Missing, ", "))
}
