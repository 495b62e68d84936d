package worksheetpdf

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser downloads a compatible Chromium binary if one is not
// already cached and returns the path to the executable. The binary is
// stored in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
// A first run fetches on the order of a hundred megabytes, so the slow path
// is narrated through the progress sink.
func resolveBrowser(logf logFunc) (string, error) {
	logf("resolving a Chromium binary (downloading if not cached)...")
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("worksheetpdf: downloading browser: %w", err)
	}
	logf("using browser at %s", path)
	return path, nil
}
