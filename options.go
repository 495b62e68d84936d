package worksheetpdf

import "time"

// defaultTargetURL is the print-practice form this library drives.
const defaultTargetURL = "https://www.worksheetworks.com/english/writing/handwriting/print-practice.html"

// defaultUserAgent is sent by the browser session. The site serves a reduced
// page to obvious automation user agents.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// logFunc receives progress narration. The default discards it.
type logFunc func(format string, args ...any)

// sessionConfig holds internal configuration for a Session.
type sessionConfig struct {
	chromePath    string
	autoDownload  bool
	noSandbox     bool
	headless      bool
	targetURL     string
	downloadDir   string
	userAgent     string
	timeout       time.Duration
	timing        Timing
	guidePatterns map[LineStyle]string
	letterValues  map[LetterStyle][]string
	progress      logFunc
}

func defaultConfig() sessionConfig {
	return sessionConfig{
		headless:      true,
		targetURL:     defaultTargetURL,
		userAgent:     defaultUserAgent,
		timeout:       3 * time.Minute,
		timing:        DefaultTiming(),
		guidePatterns: defaultGuidePatterns(),
		letterValues:  defaultLetterValues(),
		progress:      func(string, ...any) {},
	}
}

// Option configures a [Session].
type Option func(*sessionConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *sessionConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload downloads a compatible Chromium binary when no local
// installation is found. The binary is cached between runs.
func WithAutoDownload() Option {
	return func(c *sessionConfig) {
		c.autoDownload = true
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *sessionConfig) {
		c.noSandbox = true
	}
}

// WithVisible runs the browser with a window instead of headless. Useful
// for watching a failing run interact with the live site.
func WithVisible() Option {
	return func(c *sessionConfig) {
		c.headless = false
	}
}

// WithTimeout bounds a whole [Session.Generate] run. Defaults to 3 minutes.
// A zero or negative value disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *sessionConfig) {
		c.timeout = d
	}
}

// WithTargetURL overrides the page the session drives. Intended for tests
// that stand up a local fixture of the form.
func WithTargetURL(rawURL string) Option {
	return func(c *sessionConfig) {
		c.targetURL = rawURL
	}
}

// WithDownloadDir sets the directory the browser downloads into and where
// the artifact and diagnostics are written. Defaults to the current working
// directory. The directory is created if it does not exist.
func WithDownloadDir(dir string) Option {
	return func(c *sessionConfig) {
		c.downloadDir = dir
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *sessionConfig) {
		c.userAgent = ua
	}
}

// WithTiming overrides the wait and polling bounds of the run. Zero fields
// keep their defaults.
func WithTiming(t Timing) Option {
	return func(c *sessionConfig) {
		c.timing = t.resolved()
	}
}

// WithGuidePattern overrides the site value code tried for one guide-line
// style. The built-in codes are inferred from observed markup and may drift
// when the site changes.
func WithGuidePattern(style LineStyle, pattern string) Option {
	return func(c *sessionConfig) {
		c.guidePatterns[style] = pattern
	}
}

// WithLetterValues overrides the option values and labels tried for one
// letter style, in preference order.
func WithLetterValues(style LetterStyle, values []string) Option {
	return func(c *sessionConfig) {
		c.letterValues[style] = values
	}
}

// WithProgress installs a printf-style sink for progress narration.
// The library narrates which controls it found and which detection method
// produced the artifact; the default discards all of it.
func WithProgress(f func(format string, args ...any)) Option {
	return func(c *sessionConfig) {
		if f != nil {
			c.progress = f
		}
	}
}
