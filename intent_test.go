package worksheetpdf

import "testing"

func TestParseLineStyle(t *testing.T) {
	for _, s := range []string{"solid", "dashed", "dotted", "minimal", "none"} {
		got, err := ParseLineStyle(s)
		if err != nil {
			t.Errorf("ParseLineStyle(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseLineStyle(%q) = %q", s, got)
		}
	}
	if _, err := ParseLineStyle("wavy"); err == nil {
		t.Error("ParseLineStyle accepted an unknown style")
	}
	if _, err := ParseLineStyle(""); err == nil {
		t.Error("ParseLineStyle accepted the empty string")
	}
}

func TestParseLetterStyle(t *testing.T) {
	for _, s := range []string{"solid", "dashed", "outline"} {
		if _, err := ParseLetterStyle(s); err != nil {
			t.Errorf("ParseLetterStyle(%q): %v", s, err)
		}
	}
	if _, err := ParseLetterStyle("cursive"); err == nil {
		t.Error("ParseLetterStyle accepted an unknown style")
	}
}

func TestGuidePatterns_CoverEveryStyle(t *testing.T) {
	patterns := defaultGuidePatterns()
	for _, style := range []LineStyle{LineSolid, LineDashed, LineDotted, LineMinimal, LineNone} {
		p, ok := patterns[style]
		if !ok || len(p) != 4 {
			t.Errorf("pattern for %s = %q, want a four-bit code", style, p)
		}
	}
	if patterns[LineDashed] != "1010" {
		t.Errorf("dashed pattern = %q, want 1010", patterns[LineDashed])
	}
}

func TestLetterValues_SynonymsPresent(t *testing.T) {
	values := defaultLetterValues()
	hasValue := func(style LetterStyle, v string) bool {
		for _, got := range values[style] {
			if got == v {
				return true
			}
		}
		return false
	}
	// The site has shipped "dashed" letters under the name "outline";
	// requesting either must try both.
	if !hasValue(LetterDashed, "outline") {
		t.Error("dashed letters must also try the outline value")
	}
	if !hasValue(LetterOutline, "dashed") {
		t.Error("outline letters must also try the dashed value")
	}
	for style, vals := range values {
		if len(vals) == 0 {
			t.Errorf("style %s has no values", style)
		}
		if vals[0] != string(style) {
			t.Errorf("style %s tries %q first, want its own name preferred", style, vals[0])
		}
	}
}

func TestRequestResolved(t *testing.T) {
	var zero Request
	r := zero.resolved()
	if r.Text != DefaultText {
		t.Errorf("text = %q, want the default pangram", r.Text)
	}
	if r.Output != DefaultOutput {
		t.Errorf("output = %q, want %q", r.Output, DefaultOutput)
	}
	if r.LineStyle != LineDashed || r.LetterStyle != LetterDashed {
		t.Errorf("styles = %s/%s, want dashed/dashed", r.LineStyle, r.LetterStyle)
	}

	custom := Request{Text: "abc", Output: "o.pdf", LineStyle: LineNone, LetterStyle: LetterSolid}
	if got := custom.resolved(); got != custom {
		t.Errorf("resolved() altered explicit fields: %+v", got)
	}
}

func TestIntentString(t *testing.T) {
	intents := []Intent{
		IntentSetText, IntentSetLineStyle, IntentOpenLetterMenu,
		IntentSetLetterStyle, IntentConfirm, IntentSubmit, IntentFindDownloadLink,
	}
	seen := make(map[string]bool)
	for _, i := range intents {
		s := i.String()
		if s == "" || seen[s] {
			t.Errorf("intent %d has empty or duplicate name %q", int(i), s)
		}
		seen[s] = true
	}
}
