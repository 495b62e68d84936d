package worksheetpdf

import (
	"context"
	"fmt"
)

// driver is the page surface the orchestration needs: pure lookup plus
// activation. Session implements it over the DevTools protocol; the phase
// logic is tested against fakes.
type driver interface {
	Prober
	Activate(ctx context.Context, c Candidate) error
}

// applyLineStyle locates and activates the guide-line control for one
// pattern code. Reports whether the style was applied; false means the run
// continues with the site default.
func applyLineStyle(ctx context.Context, d driver, pattern string, style LineStyle, logf logFunc) bool {
	cand, err := Resolve(ctx, d, guideLineStrategies(pattern, style))
	if err != nil {
		return false
	}
	logf("found guide-line control via %s", cand.Strategy)
	if err := d.Activate(ctx, cand); err != nil {
		logf("could not activate guide-line control: %v", err)
		return false
	}
	return true
}

// openLetterMenu is Phase A of letter-style resolution: activate a menu
// opener and confirm, by probing for newly revealed option controls, that
// the menu actually opened. A click that lands but reveals nothing is not
// success; the next candidate or strategy is tried.
func openLetterMenu(ctx context.Context, d driver, logf logFunc) bool {
	for _, strat := range strategiesFor(IntentOpenLetterMenu) {
		if ctx.Err() != nil {
			return false
		}
		cands, err := d.Probe(ctx, strat)
		if err != nil {
			continue
		}
		for _, c := range cands {
			if !c.Visible || !c.Enabled {
				continue
			}
			c.Strategy = strat.Name
			if err := d.Activate(ctx, c); err != nil {
				continue
			}
			if _, err := Resolve(ctx, d, letterOptionProbes()); err == nil {
				logf("letters menu opened via %s", strat.Name)
				return true
			}
		}
	}
	return false
}

// applyLetterStyle runs the three-phase letter-style flow. Phase B (option
// selection) only runs after Phase A has been confirmed; Phase C (the
// confirmation control) is optional and its absence means the site applies
// changes automatically. Reports whether an option was selected.
func applyLetterStyle(ctx context.Context, d driver, values []string, logf logFunc) bool {
	if !openLetterMenu(ctx, d, logf) {
		logf("could not open letters menu; using site default")
		return false
	}

	applied := false
	if cand, err := Resolve(ctx, d, letterOptionStrategies(values)); err == nil {
		if err := d.Activate(ctx, cand); err == nil {
			logf("selected letter style via %s", cand.Strategy)
			applied = true
		} else {
			logf("could not activate letter option: %v", err)
		}
	} else {
		logf("letter style option not found; using site default")
	}

	if cand, err := Resolve(ctx, d, strategiesFor(IntentConfirm)); err == nil {
		if err := d.Activate(ctx, cand); err == nil {
			logf("confirmed selection via %s", cand.Strategy)
		}
	} else {
		logf("no confirmation control; changes apply automatically")
	}
	return applied
}

// Generate drives one full run: populate the remote form per req, submit,
// and acquire the artifact.
//
// Missing form controls are never fatal — the site default stands in — with
// one exception: a run that cannot find the submit control returns
// [ErrNoSubmit]. Exhausting all four artifact detection methods is reported
// as Success == false with a nil error, since it is an expected outcome on
// a site this library does not control.
//
// Diagnostics are captured at the end of every run that had a live page,
// including error paths, so the returned RunResult is meaningful even when
// err != nil.
func (s *Session) Generate(ctx context.Context, req Request) (RunResult, error) {
	if err := s.checkClosed(); err != nil {
		return RunResult{}, err
	}
	req = req.resolved()

	if s.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.timeout)
		defer cancel()
	}

	logf := s.cfg.progress
	t := s.cfg.timing

	logf("navigating to %s", s.cfg.targetURL)
	if err := s.Navigate(ctx); err != nil {
		return RunResult{}, err
	}
	logf("waiting for the page app to initialize...")
	sleepCtx(ctx, t.InitialSettle)

	prevFiles, err := snapshotDir(s.downloadDir)
	if err != nil {
		return RunResult{Diagnostics: s.captureDiagnostics(context.Background())}, err
	}
	prevTargets := s.snapshotTargets()

	if cand, err := Resolve(ctx, s, strategiesFor(IntentSetText)); err == nil {
		logf("found text input via %s", cand.Strategy)
		logf("entering text: %s", req.Text)
		if err := s.Fill(ctx, cand, req.Text); err != nil {
			logf("could not enter text: %v", err)
		}
	} else {
		logf("text input not found; keeping site default")
	}

	if s.selectValue(ctx, "select[name='lineHeight']", "0.5") {
		logf("set line height to 0.5 inches")
	}

	pattern := s.cfg.guidePatterns[req.LineStyle]
	logf("setting guide lines to %s (pattern %s)", req.LineStyle, pattern)
	if !applyLineStyle(ctx, s, pattern, req.LineStyle, logf) {
		logf("could not set %s guide lines; using site default", req.LineStyle)
	}

	logf("setting letters to %s style", req.LetterStyle)
	applyLetterStyle(ctx, s, s.cfg.letterValues[req.LetterStyle], logf)

	if s.selectValue(ctx, "select[name='paperSize']", "letter") {
		logf("set paper size to letter")
	}

	cand, err := Resolve(ctx, s, strategiesFor(IntentSubmit))
	if err != nil {
		res := RunResult{Diagnostics: s.captureDiagnostics(context.Background())}
		return res, ErrNoSubmit
	}
	logf("submitting via %s", cand.Strategy)
	if err := s.Activate(ctx, cand); err != nil {
		res := RunResult{Diagnostics: s.captureDiagnostics(context.Background())}
		return res, fmt.Errorf("worksheetpdf: submitting form: %w", err)
	}
	logf("waiting for worksheet generation...")

	outcome := acquireArtifact(ctx, s, s.downloadDir, prevFiles, prevTargets, req.Output, t, logf)
	res := RunResult{
		Success:      outcome.Found(),
		ArtifactPath: outcome.Path,
		Outcome:      outcome,
	}
	if !res.Success {
		logf("no artifact detected by any method")
	}
	res.Diagnostics = s.captureDiagnostics(context.Background())
	return res, nil
}
