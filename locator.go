package worksheetpdf

import "context"

// StrategyKind selects how a [Strategy] looks elements up.
type StrategyKind string

const (
	// ByCSS matches elements with a CSS selector.
	ByCSS StrategyKind = "css"
	// ByText matches elements whose own text (or input value) contains
	// the query, optionally restricted to a set of tags.
	ByText StrategyKind = "text"
)

// Strategy is one concrete lookup method attempting to satisfy an intent
// against the live page. A strategy is pure: it inspects the page and
// produces candidates, it never actuates anything.
type Strategy struct {
	// Name identifies the strategy in progress output and test failures.
	Name string

	// Kind selects the lookup mechanism.
	Kind StrategyKind

	// Query is the CSS selector (ByCSS) or the text needle (ByText).
	Query string

	// Tags restricts ByText matching to these element tags.
	// Empty means any element.
	Tags []string

	// Parent promotes the matched element's parent to be the candidate.
	// The site wraps some clickable option images in a label; clicking
	// the wrapper is what toggles the option.
	Parent bool
}

// Candidate is a transient handle to a currently-present page element.
// It must be re-resolved on every interaction: the page re-renders freely
// and a stale handle may point at nothing.
type Candidate struct {
	// Selector is a CSS path that re-addresses the element for activation.
	Selector string

	// Tag is the lowercase element tag.
	Tag string

	// Text is the element's trimmed text or value, truncated.
	Text string

	// Visible reports whether the element currently has a rendered box.
	Visible bool

	// Enabled reports whether the element is not disabled.
	Enabled bool

	// Strategy names the strategy that produced this candidate.
	Strategy string
}

// A Prober runs one strategy against the live page and reports every match,
// visible or not. [Session] implements Prober over the DevTools protocol;
// tests implement it over synthetic fixtures.
type Prober interface {
	Probe(ctx context.Context, s Strategy) ([]Candidate, error)
}

// StrategyList is an ordered sequence of lookup strategies for one intent.
// Order encodes priority: structurally precise matches come before loose
// text-content matches.
type StrategyList []Strategy

// Resolve tries each strategy of list in order and returns the first
// visible, enabled candidate of the first strategy that yields one.
//
// A strategy that errors is treated as a non-match and resolution continues;
// probing a hostile, half-rendered page fails routinely and none of those
// failures is fatal. When every strategy is exhausted Resolve returns
// [ErrNotFound], which callers treat as "proceed with the site default".
func Resolve(ctx context.Context, p Prober, list StrategyList) (Candidate, error) {
	for _, s := range list {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}
		cands, err := p.Probe(ctx, s)
		if err != nil {
			continue
		}
		for _, c := range cands {
			if c.Visible && c.Enabled {
				c.Strategy = s.Name
				return c, nil
			}
		}
	}
	return Candidate{}, ErrNotFound
}
