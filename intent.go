package worksheetpdf

import "fmt"

// Intent is a semantic goal for one interaction with the remote form.
// Each intent is bound to a [StrategyList]; the intent carries everything a
// strategy needs to produce candidates (the desired style, for example).
type Intent int

const (
	// IntentSetText locates the practice-text input.
	IntentSetText Intent = iota
	// IntentSetLineStyle locates the guide-line style control.
	IntentSetLineStyle
	// IntentOpenLetterMenu locates the control that reveals the letter
	// style options (the options are hidden behind a menu).
	IntentOpenLetterMenu
	// IntentSetLetterStyle locates a specific letter style option.
	// Only meaningful once IntentOpenLetterMenu has succeeded.
	IntentSetLetterStyle
	// IntentConfirm locates an optional OK/Apply/Done control. Its absence
	// means changes apply automatically.
	IntentConfirm
	// IntentSubmit locates the "Create Worksheet" control.
	IntentSubmit
	// IntentFindDownloadLink locates a secondary Download/Save control
	// shown after submission.
	IntentFindDownloadLink
)

// String returns the intent name for progress output.
func (i Intent) String() string {
	switch i {
	case IntentSetText:
		return "set-text"
	case IntentSetLineStyle:
		return "set-line-style"
	case IntentOpenLetterMenu:
		return "open-letter-menu"
	case IntentSetLetterStyle:
		return "set-letter-style"
	case IntentConfirm:
		return "confirm"
	case IntentSubmit:
		return "submit"
	case IntentFindDownloadLink:
		return "find-download-link"
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// LineStyle selects the guide-line appearance of the worksheet.
type LineStyle string

// Supported guide-line styles.
const (
	LineSolid   LineStyle = "solid"
	LineDashed  LineStyle = "dashed"
	LineDotted  LineStyle = "dotted"
	LineMinimal LineStyle = "minimal"
	LineNone    LineStyle = "none"
)

// LetterStyle selects how the practice letters are drawn.
type LetterStyle string

// Supported letter styles.
const (
	LetterSolid   LetterStyle = "solid"
	LetterDashed  LetterStyle = "dashed"
	LetterOutline LetterStyle = "outline"
)

// ParseLineStyle converts a user-supplied string to a [LineStyle].
func ParseLineStyle(s string) (LineStyle, error) {
	switch LineStyle(s) {
	case LineSolid, LineDashed, LineDotted, LineMinimal, LineNone:
		return LineStyle(s), nil
	}
	return "", fmt.Errorf("worksheetpdf: unknown line style %q", s)
}

// ParseLetterStyle converts a user-supplied string to a [LetterStyle].
func ParseLetterStyle(s string) (LetterStyle, error) {
	switch LetterStyle(s) {
	case LetterSolid, LetterDashed, LetterOutline:
		return LetterStyle(s), nil
	}
	return "", fmt.Errorf("worksheetpdf: unknown letter style %q", s)
}

// defaultGuidePatterns maps a LineStyle to the bit-pattern value the site
// uses for its guide-line radio inputs. The codes are inferred from observed
// markup, not documented by the site; [WithGuidePattern] overrides them.
func defaultGuidePatterns() map[LineStyle]string {
	return map[LineStyle]string{
		LineSolid:   "1111",
		LineDashed:  "1010",
		LineDotted:  "0101",
		LineMinimal: "1000",
		LineNone:    "0000",
	}
}

// defaultLetterValues maps a LetterStyle to the option values and labels
// tried on the page, in preference order. The site has renamed these options
// across releases ("dashed" has shipped as "outline"), so each style carries
// its known synonyms. [WithLetterValues] overrides them.
func defaultLetterValues() map[LetterStyle][]string {
	return map[LetterStyle][]string{
		LetterDashed:  {"dashed", "outline", "Dashed", "Outline"},
		LetterSolid:   {"solid", "filled", "Solid", "Filled"},
		LetterOutline: {"outline", "dashed", "Outline", "Dashed"},
	}
}

// DefaultText is the practice text used when a [Request] leaves Text empty.
const DefaultText = "The quick brown fox jumps over the lazy dog"

// DefaultOutput is the artifact filename used when a [Request] leaves
// Output empty.
const DefaultOutput = "handwriting_worksheet.pdf"

// Request describes one worksheet to generate.
//
// A zero-value field falls back to a sensible default: the pangram text,
// the standard output name, and dashed lines and letters.
type Request struct {
	// Text is the practice text placed on the worksheet.
	Text string

	// Output is the filename, inside the session's download directory,
	// under which the artifact is persisted.
	Output string

	// LineStyle selects the guide-line appearance. Defaults to LineDashed.
	LineStyle LineStyle

	// LetterStyle selects the letter appearance. Defaults to LetterDashed.
	LetterStyle LetterStyle
}

// resolved returns a Request with all zero values replaced by defaults.
func (r Request) resolved() Request {
	if r.Text == "" {
		r.Text = DefaultText
	}
	if r.Output == "" {
		r.Output = DefaultOutput
	}
	if r.LineStyle == "" {
		r.LineStyle = LineDashed
	}
	if r.LetterStyle == "" {
		r.LetterStyle = LetterDashed
	}
	return r
}
