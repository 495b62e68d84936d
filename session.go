package worksheetpdf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// Diagnostic dump filenames, written into the download directory at the end
// of every run that had a live page.
const (
	screenshotName = "debug_screenshot_advanced.png"
	pageSourceName = "debug_page_source.html"
)

// Session owns one running browser instance and its configured download
// directory. Exactly one Session is live per run; it is created at startup
// and must be released with [Session.Close] on every exit path.
//
// A Session is driven by a single goroutine; it performs no internal
// concurrency beyond what the DevTools transport needs.
type Session struct {
	cfg         sessionConfig
	downloadDir string

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// tabCtx points at the newest attached window once the run has
	// switched away from the original page. Nil until then.
	tabCtx     context.Context
	tabCancels []context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewSession launches the browser and prepares the download directory.
//
// The browser starts eagerly so setup failures surface here rather than
// mid-run. The caller must call [Session.Close] when finished, regardless
// of outcome.
func NewSession(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	dir := cfg.downloadDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("worksheetpdf: resolving working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: resolving download directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("worksheetpdf: creating download directory: %w", err)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser(cfg.progress)
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("no-first-run", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.userAgent),
	)
	if cfg.headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time, and
	// route downloads into the configured directory.
	if err := chromedp.Run(browserCtx,
		cdpbrowser.SetDownloadBehavior(cdpbrowser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(dir).
			WithEventsEnabled(true),
	); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("worksheetpdf: starting browser: %w", err)
	}

	return &Session{
		cfg:           cfg,
		downloadDir:   dir,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Session, including the browser
// process. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for _, cancel := range s.tabCancels {
		cancel()
	}
	s.browserCancel()
	s.allocCancel()
	return nil
}

// DownloadDir returns the directory downloads, the artifact, and the
// diagnostic dumps are written into.
func (s *Session) DownloadDir() string {
	return s.downloadDir
}

func (s *Session) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// tab returns the context of the window currently being driven.
func (s *Session) tab() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tabCtx != nil {
		return s.tabCtx
	}
	return s.browserCtx
}

// run executes actions against the current window, carrying over any
// deadline from the caller's context.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	tab := s.tab()
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		tab, cancel = context.WithDeadline(tab, deadline)
		defer cancel()
	}
	return chromedp.Run(tab, actions...)
}

// Navigate drives the session to the configured target URL and waits,
// bounded, for the document body. [Session.Generate] navigates on its own;
// Navigate is for callers composing [Session.Probe] and [Session.Activate]
// directly.
func (s *Session) Navigate(ctx context.Context) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tab := s.tab()
	waitCtx, cancel := context.WithTimeout(tab, s.cfg.timing.PageLoad)
	defer cancel()
	if err := chromedp.Run(waitCtx,
		chromedp.Navigate(s.cfg.targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("worksheetpdf: loading %s: %w", s.cfg.targetURL, err)
	}
	return nil
}

// probeJS locates elements for one strategy and describes each match with a
// re-addressable CSS path plus visibility and enablement. ByText matches an
// element's own text nodes (or input value), mirroring how the lists were
// tuned against the site; text inside child elements belongs to the child.
const probeJS = `(() => {
	const spec = %s;
	const cssPath = (el) => {
		if (el.id) return '#' + CSS.escape(el.id);
		const parts = [];
		let cur = el;
		while (cur && cur.nodeType === 1 && cur !== document.body && cur !== document.documentElement) {
			let sel = cur.tagName.toLowerCase();
			const parent = cur.parentElement;
			if (parent) {
				const sibs = Array.from(parent.children).filter((c) => c.tagName === cur.tagName);
				if (sibs.length > 1) sel += ':nth-of-type(' + (sibs.indexOf(cur) + 1) + ')';
			}
			parts.unshift(sel);
			cur = parent;
		}
		return parts.length ? 'body > ' + parts.join(' > ') : 'body';
	};
	const isVisible = (el) => {
		const rect = el.getBoundingClientRect();
		if (rect.width <= 0 || rect.height <= 0) return false;
		const style = window.getComputedStyle(el);
		return style.display !== 'none' && style.visibility !== 'hidden';
	};
	let matches = [];
	try {
		if (spec.kind === 'css') {
			matches = Array.from(document.querySelectorAll(spec.query));
		} else {
			const scope = spec.tags && spec.tags.length ? spec.tags.join(',') : '*';
			for (const el of document.querySelectorAll(scope)) {
				let own = '';
				for (const n of el.childNodes) {
					if (n.nodeType === 3) own += n.textContent;
				}
				const val = typeof el.value === 'string' ? el.value : '';
				if (own.includes(spec.query) || val.includes(spec.query)) matches.push(el);
			}
		}
	} catch (e) {
		matches = [];
	}
	const out = [];
	for (let el of matches) {
		if (spec.parent && el.parentElement) el = el.parentElement;
		out.push({
			selector: cssPath(el),
			tag: el.tagName.toLowerCase(),
			text: ((el.textContent || '') + '').trim().slice(0, 200),
			visible: isVisible(el),
			enabled: el.disabled !== true,
		});
		if (out.length >= 25) break;
	}
	return out;
})()`

type probeSpec struct {
	Kind   StrategyKind `json:"kind"`
	Query  string       `json:"query"`
	Tags   []string     `json:"tags,omitempty"`
	Parent bool         `json:"parent,omitempty"`
}

// Probe implements [Prober] against the live page. It is a pure lookup:
// nothing is scrolled, focused, or clicked.
func (s *Session) Probe(ctx context.Context, strat Strategy) ([]Candidate, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}
	spec, err := json.Marshal(probeSpec{
		Kind:   strat.Kind,
		Query:  strat.Query,
		Tags:   strat.Tags,
		Parent: strat.Parent,
	})
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: encoding strategy %s: %w", strat.Name, err)
	}

	var results []struct {
		Selector string `json:"selector"`
		Tag      string `json:"tag"`
		Text     string `json:"text"`
		Visible  bool   `json:"visible"`
		Enabled  bool   `json:"enabled"`
	}
	if err := s.run(ctx, chromedp.Evaluate(fmt.Sprintf(probeJS, spec), &results)); err != nil {
		return nil, fmt.Errorf("worksheetpdf: probing %s: %w", strat.Name, err)
	}

	cands := make([]Candidate, 0, len(results))
	for _, r := range results {
		cands = append(cands, Candidate{
			Selector: r.Selector,
			Tag:      r.Tag,
			Text:     r.Text,
			Visible:  r.Visible,
			Enabled:  r.Enabled,
			Strategy: strat.Name,
		})
	}
	return cands, nil
}

// Activate clicks a candidate: scroll into view, then a native input click.
// If the native click is intercepted or the element is not interactable, it
// falls back to a script-level click on the same element. Every activation
// is followed by the settle delay, since any click may re-render the page.
func (s *Session) Activate(ctx context.Context, cand Candidate) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	tab := s.tab()
	if deadline, ok := ctx.Deadline(); ok {
		var tabCancel context.CancelFunc
		tab, tabCancel = context.WithDeadline(tab, deadline)
		defer tabCancel()
	}
	clickCtx, cancel := context.WithTimeout(tab, s.cfg.timing.Activation)
	err := chromedp.Run(clickCtx,
		chromedp.ScrollIntoView(cand.Selector, chromedp.ByQuery),
		chromedp.Click(cand.Selector, chromedp.ByQuery),
	)
	cancel()
	if err != nil {
		var clicked bool
		js := fmt.Sprintf(
			`(() => { const el = document.querySelector(%q); if (!el) return false; el.click(); return true; })()`,
			cand.Selector)
		if ferr := s.run(ctx, chromedp.Evaluate(js, &clicked)); ferr != nil || !clicked {
			return fmt.Errorf("worksheetpdf: activating %q (strategy %s): %w",
				cand.Selector, cand.Strategy, err)
		}
		s.cfg.progress("clicked %s via script fallback", cand.Strategy)
	}
	s.settle(ctx)
	return nil
}

// Fill clears a text control and types text into it.
func (s *Session) Fill(ctx context.Context, cand Candidate, text string) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	if err := s.run(ctx,
		chromedp.ScrollIntoView(cand.Selector, chromedp.ByQuery),
		chromedp.Clear(cand.Selector, chromedp.ByQuery),
		chromedp.SendKeys(cand.Selector, text, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("worksheetpdf: filling %q: %w", cand.Selector, err)
	}
	sleepCtx(ctx, time.Second)
	return nil
}

// selectValue sets a select element's value and fires its change event.
// Best effort: a false return means the element is not on this release of
// the page, which is never fatal.
func (s *Session) selectValue(ctx context.Context, selector, value string) bool {
	js := fmt.Sprintf(
		`(() => {
			const el = document.querySelector(%q);
			if (!el) return false;
			el.value = %q;
			el.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()`, selector, value)
	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return false
	}
	return ok
}

// location returns the current page address.
func (s *Session) location(ctx context.Context) (string, error) {
	var u string
	if err := s.run(ctx, chromedp.Location(&u)); err != nil {
		return "", fmt.Errorf("worksheetpdf: reading location: %w", err)
	}
	return u, nil
}

// pageSource returns the current page markup.
func (s *Session) pageSource(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("worksheetpdf: reading page source: %w", err)
	}
	return html, nil
}

// snapshotTargets records the identities of the browser windows open right
// now, so that a window opened by submission can be told apart later.
func (s *Session) snapshotTargets() map[target.ID]struct{} {
	seen := make(map[target.ID]struct{})
	infos, err := chromedp.Targets(s.browserCtx)
	if err != nil {
		return seen
	}
	for _, info := range infos {
		seen[info.TargetID] = struct{}{}
	}
	return seen
}

// newPageTarget reports a page window that was not present in prev.
func (s *Session) newPageTarget(prev map[target.ID]struct{}) (*target.Info, bool) {
	infos, err := chromedp.Targets(s.browserCtx)
	if err != nil {
		return nil, false
	}
	return pickNewTarget(infos, prev)
}

// pickNewTarget selects the page target to inspect out of infos. The browser
// lists targets in creation order, so the last unseen one is the newest
// window; when submission opened several, the newest carries the artifact.
func pickNewTarget(infos []*target.Info, prev map[target.ID]struct{}) (*target.Info, bool) {
	var newest *target.Info
	for _, info := range infos {
		if info.Type != "page" {
			continue
		}
		if _, ok := prev[info.TargetID]; !ok {
			newest = info
		}
	}
	return newest, newest != nil
}

// switchTo attaches the session to the given window; subsequent operations
// act on it.
func (s *Session) switchTo(id target.ID) error {
	tabCtx, cancel := chromedp.NewContext(s.browserCtx, chromedp.WithTargetID(id))
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return fmt.Errorf("worksheetpdf: attaching to window: %w", err)
	}
	s.mu.Lock()
	s.tabCtx = tabCtx
	s.tabCancels = append(s.tabCancels, cancel)
	s.mu.Unlock()
	return nil
}

// captureDiagnostics writes the debug screenshot and page-source dump into
// the download directory. Both are best effort; whatever succeeded is
// reported in the returned Diagnostics.
func (s *Session) captureDiagnostics(ctx context.Context) Diagnostics {
	var d Diagnostics
	if err := s.checkClosed(); err != nil {
		return d
	}

	capCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shot []byte
	if err := s.run(capCtx, chromedp.CaptureScreenshot(&shot)); err == nil {
		path := filepath.Join(s.downloadDir, screenshotName)
		if os.WriteFile(path, shot, 0o644) == nil {
			d.ScreenshotPath = path
		}
	}

	if src, err := s.pageSource(capCtx); err == nil {
		path := filepath.Join(s.downloadDir, pageSourceName)
		if os.WriteFile(path, []byte(src), 0o644) == nil {
			d.PageSourcePath = path
		}
	}
	return d
}

// settle pauses after an activation that may trigger an asynchronous
// re-render.
func (s *Session) settle(ctx context.Context) {
	sleepCtx(ctx, s.cfg.timing.Settle)
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
