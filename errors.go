package worksheetpdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Session].
	ErrClosed = errors.New("worksheetpdf: session is closed")

	// ErrNotFound is returned by [Resolve] when every strategy in a
	// [StrategyList] has been tried without producing a visible, enabled
	// candidate. Callers treat it as "use the site default", not as a
	// failure of the run.
	ErrNotFound = errors.New("worksheetpdf: no strategy matched")

	// ErrNoSubmit is reported when the submit control itself cannot be
	// located. Every other control has a site default; this one does not.
	ErrNoSubmit = errors.New("worksheetpdf: submit control not found")

	// ErrNoArtifact is reported when all four artifact detection methods
	// were exhausted without finding the generated PDF.
	ErrNoArtifact = errors.New("worksheetpdf: no artifact detected")
)
