package worksheetpdf

// OutcomeKind tags how, and whether, the artifact was delivered.
type OutcomeKind int

const (
	// OutcomeNotFound means all four detection methods were exhausted.
	OutcomeNotFound OutcomeKind = iota
	// OutcomeDirectFile means the browser downloaded the file into the
	// download directory.
	OutcomeDirectFile
	// OutcomeRedirectedFile means the page or a new window navigated to
	// the artifact URL, which was then fetched out-of-band.
	OutcomeRedirectedFile
	// OutcomeLinkedFile means an in-page link addressed the artifact,
	// which was then fetched out-of-band.
	OutcomeLinkedFile
)

// String returns the outcome tag for progress output.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDirectFile:
		return "direct-file"
	case OutcomeRedirectedFile:
		return "redirected-file"
	case OutcomeLinkedFile:
		return "linked-file"
	}
	return "not-found"
}

// DownloadOutcome is the final result of one submission attempt. It is
// produced once, eagerly, and never revised: the first detection method to
// succeed decides it.
type DownloadOutcome struct {
	// Kind tags the delivery mechanism, or OutcomeNotFound.
	Kind OutcomeKind

	// Path is the persisted artifact location for any successful outcome.
	Path string

	// URL is the artifact address for redirect and link deliveries.
	URL string
}

// Found reports whether any detection method produced the artifact.
func (o DownloadOutcome) Found() bool {
	return o.Kind != OutcomeNotFound
}

// Diagnostics names the debug dumps captured at the end of a run.
// An empty field means that capture failed or never ran (for example when
// the browser session could not be created at all).
type Diagnostics struct {
	// ScreenshotPath is the visual state of the page at run end.
	ScreenshotPath string

	// PageSourcePath is the page markup at run end, for selector analysis.
	PageSourcePath string
}

// RunResult is what one full run reports back to the caller.
type RunResult struct {
	// Success is true when an artifact was produced and persisted.
	Success bool

	// ArtifactPath is the persisted artifact, empty on failure.
	ArtifactPath string

	// Outcome records which detection method delivered the artifact.
	Outcome DownloadOutcome

	// Diagnostics names the debug dumps; captured on success and failure
	// alike, as long as a page existed to capture.
	Diagnostics Diagnostics
}
