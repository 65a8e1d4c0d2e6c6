package analyze

import "github.com/rotisserie/eris"

// Sentinel errors surfaced by the analyzer. Callers match them with
// errors.Is; the analyzer never logs and never defaults silently.
var (
	// ErrEmptyInput is returned when a statistic is requested over zero values.
	ErrEmptyInput = eris.New("analyze: empty input")

	// ErrEmptyGroup is returned when a recognized urban type has no records.
	// It signals a data-loading defect upstream, not an analyzer fault.
	ErrEmptyGroup = eris.New("analyze: empty type group")
)
