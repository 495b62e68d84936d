package worksheetpdf

import "time"

// Timing controls the waits and polling bounds of a run.
//
// All waits are bounded; none of them blocks indefinitely. A zero-value
// field uses its default. The defaults are tuned for the real site, which
// boots a client-side app before the form becomes interactable; tests
// against local fixtures shrink them.
type Timing struct {
	// PageLoad bounds the wait for the document body after navigation.
	// Defaults to 20 seconds.
	PageLoad time.Duration

	// InitialSettle is the fixed pause after navigation that lets the
	// site's client-side app initialize. Defaults to 8 seconds.
	InitialSettle time.Duration

	// Settle is the fixed pause after every activation that may trigger
	// an asynchronous re-render. Defaults to 2 seconds.
	Settle time.Duration

	// Activation bounds a single native click attempt before the
	// script-level fallback is tried. Defaults to 10 seconds.
	Activation time.Duration

	// PollInterval is the download-directory polling period.
	// Defaults to 1 second.
	PollInterval time.Duration

	// PollTimeout bounds the first download-directory poll.
	// Defaults to 15 seconds.
	PollTimeout time.Duration

	// SecondaryPollTimeout bounds the re-poll after a secondary Download
	// control has been activated. Defaults to 10 seconds.
	SecondaryPollTimeout time.Duration

	// StabilityGrace is the fixed pause after a completed file appears
	// before it is treated as fully flushed. Defaults to 2 seconds.
	StabilityGrace time.Duration

	// NavigationGrace is the wait before inspecting the page address and
	// browser windows for a redirect delivery. Defaults to 5 seconds.
	NavigationGrace time.Duration
}

// DefaultTiming returns the Timing used when none is configured.
func DefaultTiming() Timing {
	return Timing{
		PageLoad:             20 * time.Second,
		InitialSettle:        8 * time.Second,
		Settle:               2 * time.Second,
		Activation:           10 * time.Second,
		PollInterval:         time.Second,
		PollTimeout:          15 * time.Second,
		SecondaryPollTimeout: 10 * time.Second,
		StabilityGrace:       2 * time.Second,
		NavigationGrace:      5 * time.Second,
	}
}

// resolved returns a Timing with all zero values replaced by defaults.
func (t Timing) resolved() Timing {
	d := DefaultTiming()
	if t.PageLoad <= 0 {
		t.PageLoad = d.PageLoad
	}
	if t.InitialSettle <= 0 {
		t.InitialSettle = d.InitialSettle
	}
	if t.Settle <= 0 {
		t.Settle = d.Settle
	}
	if t.Activation <= 0 {
		t.Activation = d.Activation
	}
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	if t.PollTimeout <= 0 {
		t.PollTimeout = d.PollTimeout
	}
	if t.SecondaryPollTimeout <= 0 {
		t.SecondaryPollTimeout = d.SecondaryPollTimeout
	}
	if t.StabilityGrace <= 0 {
		t.StabilityGrace = d.StabilityGrace
	}
	if t.NavigationGrace <= 0 {
		t.NavigationGrace = d.NavigationGrace
	}
	return t
}
