package worksheetpdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/target"
	"github.com/fsnotify/fsnotify"
)

// Artifact acquisition. After submission the site has delivered its PDF in
// three different ways across releases: a direct browser download, a
// redirect (same window or a popup) to the file URL, and an in-page link.
// Four detection methods run in strict order, first success short-circuits,
// and whichever succeeds normalizes the artifact to one local path.

// snapshotDir records the entries present in dir. Taken before submission,
// so that anything appearing afterwards stands out.
func snapshotDir(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: reading download directory: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Name()] = struct{}{}
	}
	return seen, nil
}

// newEntries returns directory entries not present in prev.
func newEntries(dir string, prev map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var fresh []string
	for _, e := range entries {
		if _, ok := prev[e.Name()]; !ok {
			fresh = append(fresh, e.Name())
		}
	}
	return fresh, nil
}

// isCompletedDownload reports whether name carries a completed-artifact
// extension.
func isCompletedDownload(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// isPartialDownload reports whether name is an in-progress download.
func isPartialDownload(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".crdownload", ".part", ".download":
		return true
	}
	return false
}

// pollDownloads watches dir until an entry not in prev appears with a
// completed extension, or timeout expires. A filesystem watcher wakes the
// loop as entries change; the ticker remains the fallback and the deadline
// the bound, so a missing watcher only costs latency. In-progress entries
// are narrated but never satisfy completion.
//
// On success the name is returned after the stability grace, which defends
// against renames that land before the final flush.
func pollDownloads(ctx context.Context, dir string, prev map[string]struct{}, t Timing, timeout time.Duration, logf logFunc) (string, bool) {
	check := func() (string, bool) {
		fresh, err := newEntries(dir, prev)
		if err != nil {
			return "", false
		}
		for _, name := range fresh {
			if isCompletedDownload(name) {
				return name, true
			}
		}
		for _, name := range fresh {
			if isPartialDownload(name) {
				logf("download in progress: %s", name)
			}
		}
		return "", false
	}

	settle := func(name string) (string, bool) {
		sleepCtx(ctx, t.StabilityGrace)
		return name, true
	}

	if name, ok := check(); ok {
		return settle(name)
	}

	var events <-chan fsnotify.Event
	if w, err := fsnotify.NewWatcher(); err == nil {
		defer w.Close()
		if err := w.Add(dir); err == nil {
			events = w.Events
		}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(t.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-deadline.C:
			return "", false
		case <-ticker.C:
		case <-events:
		}
		if name, ok := check(); ok {
			return settle(name)
		}
	}
}

// persistDownload renames a browser-downloaded file to the caller's output
// name inside the download directory.
func persistDownload(dir, name, output string) (string, error) {
	final := filepath.Join(dir, output)
	if err := os.Rename(filepath.Join(dir, name), final); err != nil {
		return "", fmt.Errorf("worksheetpdf: renaming download: %w", err)
	}
	return final, nil
}

// isArtifactURL reports whether rawURL addresses a fetchable PDF.
func isArtifactURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

// findPDFLinks scans page markup for anchors addressing a PDF and resolves
// them against the page address. Order of appearance is preserved.
func findPDFLinks(html, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || !isArtifactURL(href) {
			return
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		links = append(links, href)
	})
	return links
}

// fetchAndPersist retrieves an artifact URL out-of-band, validates that it
// really is a PDF, and writes it under the output name.
func (s *Session) fetchAndPersist(ctx context.Context, rawURL, output string) (string, error) {
	art, err := fetchArtifact(ctx, rawURL, s.cfg.userAgent)
	if err != nil {
		return "", err
	}
	if !art.IsPDF() {
		return "", fmt.Errorf("worksheetpdf: %s did not serve a PDF", rawURL)
	}
	final := filepath.Join(s.downloadDir, output)
	if err := art.WriteToFile(final, 0o644); err != nil {
		return "", fmt.Errorf("worksheetpdf: writing artifact: %w", err)
	}
	return final, nil
}

// acquirer is the page surface the acquisition engine drives, beyond
// probing and activation. [Session] implements it over the DevTools
// protocol; the method-ordering tests implement it with scripted fakes.
type acquirer interface {
	driver
	location(ctx context.Context) (string, error)
	pageSource(ctx context.Context) (string, error)
	newPageTarget(prev map[target.ID]struct{}) (*target.Info, bool)
	switchTo(id target.ID) error
	fetchAndPersist(ctx context.Context, rawURL, output string) (string, error)
}

// acquireArtifact reconciles the three delivery mechanisms into one
// DownloadOutcome. The four detection methods run in strict order and the
// first success decides the outcome; later methods are never consulted.
// prevFiles and prevTargets are the pre-submission snapshots of the download
// directory dir and the open browser windows.
func acquireArtifact(ctx context.Context, a acquirer, dir string, prevFiles map[string]struct{}, prevTargets map[target.ID]struct{}, output string, t Timing, logf logFunc) DownloadOutcome {
	// Method 1: the browser downloaded the file itself.
	logf("waiting for direct download...")
	if name, ok := pollDownloads(ctx, dir, prevFiles, t, t.PollTimeout, logf); ok {
		if final, err := persistDownload(dir, name, output); err == nil {
			logf("artifact downloaded directly: %s", final)
			return DownloadOutcome{Kind: OutcomeDirectFile, Path: final}
		}
	}

	// Method 2: the page, or a freshly opened window, navigated to the
	// artifact URL.
	logf("checking for redirects or new windows...")
	sleepCtx(ctx, t.NavigationGrace)
	if loc, err := a.location(ctx); err == nil && isArtifactURL(loc) {
		if final, err := a.fetchAndPersist(ctx, loc, output); err == nil {
			logf("artifact fetched from redirect: %s", loc)
			return DownloadOutcome{Kind: OutcomeRedirectedFile, Path: final, URL: loc}
		}
	}
	if info, ok := a.newPageTarget(prevTargets); ok {
		logf("new window detected: %s", info.URL)
		if err := a.switchTo(info.TargetID); err == nil {
			if loc, err := a.location(ctx); err == nil && isArtifactURL(loc) {
				if final, err := a.fetchAndPersist(ctx, loc, output); err == nil {
					logf("artifact fetched from new window: %s", loc)
					return DownloadOutcome{Kind: OutcomeRedirectedFile, Path: final, URL: loc}
				}
			}
		}
	}

	// Method 3: an in-page link addresses the artifact.
	logf("scanning page for download links...")
	if src, err := a.pageSource(ctx); err == nil {
		loc, _ := a.location(ctx)
		for _, link := range findPDFLinks(src, loc) {
			final, err := a.fetchAndPersist(ctx, link, output)
			if err != nil {
				logf("link %s: %v", link, err)
				continue
			}
			logf("artifact fetched from page link: %s", link)
			return DownloadOutcome{Kind: OutcomeLinkedFile, Path: final, URL: link}
		}
	}

	// Method 4: a secondary Download/Save control must be pressed first.
	logf("looking for a download control...")
	if cand, err := Resolve(ctx, a, strategiesFor(IntentFindDownloadLink)); err == nil {
		logf("found download control via %s", cand.Strategy)
		if err := a.Activate(ctx, cand); err == nil {
			if name, ok := pollDownloads(ctx, dir, prevFiles, t, t.SecondaryPollTimeout, logf); ok {
				if final, err := persistDownload(dir, name, output); err == nil {
					logf("artifact downloaded after pressing control: %s", final)
					return DownloadOutcome{Kind: OutcomeDirectFile, Path: final}
				}
			}
		}
	}

	return DownloadOutcome{Kind: OutcomeNotFound}
}
