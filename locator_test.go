package worksheetpdf_test

import (
	"context"
	"errors"
	"testing"

	worksheetpdf "github.com/porticus-lab/go-worksheet-pdf"
)

// fakeProber serves canned candidates per strategy name, standing in for a
// live page.
type fakeProber struct {
	results map[string][]worksheetpdf.Candidate
	errs    map[string]error
	probed  []string
}

func (f *fakeProber) Probe(_ context.Context, s worksheetpdf.Strategy) ([]worksheetpdf.Candidate, error) {
	f.probed = append(f.probed, s.Name)
	if err := f.errs[s.Name]; err != nil {
		return nil, err
	}
	return f.results[s.Name], nil
}

func visibleCandidate(sel string) worksheetpdf.Candidate {
	return worksheetpdf.Candidate{Selector: sel, Visible: true, Enabled: true}
}

func testList() worksheetpdf.StrategyList {
	return worksheetpdf.StrategyList{
		{Name: "precise", Kind: worksheetpdf.ByCSS, Query: "#exact"},
		{Name: "loose", Kind: worksheetpdf.ByText, Query: "Label"},
	}
}

func TestResolve_FirstStrategyWins(t *testing.T) {
	p := &fakeProber{results: map[string][]worksheetpdf.Candidate{
		"precise": {visibleCandidate("#a"), visibleCandidate("#b")},
		"loose":   {visibleCandidate("#c")},
	}}

	cand, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cand.Selector != "#a" {
		t.Errorf("selector = %q, want first candidate of first strategy %q", cand.Selector, "#a")
	}
	if cand.Strategy != "precise" {
		t.Errorf("strategy = %q, want %q", cand.Strategy, "precise")
	}
	if len(p.probed) != 1 {
		t.Errorf("probed %v, want resolution to stop after the first success", p.probed)
	}
}

func TestResolve_ErroringStrategyIsNonMatch(t *testing.T) {
	p := &fakeProber{
		results: map[string][]worksheetpdf.Candidate{
			"loose": {visibleCandidate("#fallback")},
		},
		errs: map[string]error{"precise": errors.New("stale element")},
	}

	cand, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cand.Strategy != "loose" {
		t.Errorf("strategy = %q, want fall-through to %q", cand.Strategy, "loose")
	}
}

func TestResolve_SkipsInvisibleAndDisabled(t *testing.T) {
	hidden := worksheetpdf.Candidate{Selector: "#hidden", Visible: false, Enabled: true}
	disabled := worksheetpdf.Candidate{Selector: "#disabled", Visible: true, Enabled: false}
	p := &fakeProber{results: map[string][]worksheetpdf.Candidate{
		"precise": {hidden, disabled},
		"loose":   {hidden, visibleCandidate("#ok")},
	}}

	cand, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cand.Selector != "#ok" {
		t.Errorf("selector = %q, want the visible enabled candidate %q", cand.Selector, "#ok")
	}
}

func TestResolve_Exhausted(t *testing.T) {
	p := &fakeProber{errs: map[string]error{"precise": errors.New("boom")}}

	_, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if !errors.Is(err, worksheetpdf.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(p.probed) != 2 {
		t.Errorf("probed %v, want every strategy tried before giving up", p.probed)
	}
}

func TestResolve_EmptyList(t *testing.T) {
	_, err := worksheetpdf.Resolve(context.Background(), &fakeProber{}, nil)
	if !errors.Is(err, worksheetpdf.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	p := &fakeProber{results: map[string][]worksheetpdf.Candidate{
		"loose": {visibleCandidate("#same")},
	}}

	first, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := worksheetpdf.Resolve(context.Background(), p, testList())
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first != second {
		t.Errorf("resolution on an unchanged page differed: %+v vs %+v", first, second)
	}
}

func TestResolve_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := worksheetpdf.Resolve(ctx, &fakeProber{}, testList())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
