package worksheetpdf

import (
	"strings"
	"testing"
)

func TestTextInputStrategies_PreciseFirst(t *testing.T) {
	list := textInputStrategies()
	if len(list) == 0 {
		t.Fatal("empty strategy list")
	}
	if list[0].Name != "textarea-tag" || list[0].Kind != ByCSS {
		t.Errorf("first strategy = %+v, want the textarea tag lookup", list[0])
	}
	for _, s := range list {
		if s.Kind == ByText {
			t.Errorf("strategy %s: text input lookup should never rely on text content", s.Name)
		}
	}
}

func TestGuideLineStrategies_EmbedPattern(t *testing.T) {
	list := guideLineStrategies("1010", LineDashed)
	if list[0].Name != "pattern-radio" {
		t.Fatalf("first strategy = %s, want the exact value radio", list[0].Name)
	}
	if want := "input[type='radio'][value='1010']"; list[0].Query != want {
		t.Errorf("pattern-radio query = %q, want %q", list[0].Query, want)
	}
	if !strings.Contains(list[1].Query, "1010") || !list[1].Parent {
		t.Errorf("guide-image strategy = %+v, want pattern in src and parent promotion", list[1])
	}
	last := list[len(list)-1]
	if last.Kind != ByText || last.Query != "Dashed" {
		t.Errorf("last strategy = %+v, want the loose capitalized label match", last)
	}
}

func TestLetterOptionStrategies_RadiosBeforeLabels(t *testing.T) {
	values := []string{"dashed", "outline"}
	list := letterOptionStrategies(values)
	if len(list) != 2*len(values) {
		t.Fatalf("len = %d, want %d", len(list), 2*len(values))
	}
	for i, s := range list[:len(values)] {
		if s.Kind != ByCSS || !strings.Contains(s.Query, values[i]) {
			t.Errorf("strategy %d = %+v, want a radio lookup for %q", i, s, values[i])
		}
	}
	for i, s := range list[len(values):] {
		if s.Kind != ByText || s.Query != values[i] {
			t.Errorf("strategy %d = %+v, want a label lookup for %q", len(values)+i, s, values[i])
		}
	}
}

func TestConfirmStrategies_CoverKnownWords(t *testing.T) {
	list := confirmStrategies()
	for _, w := range []string{"OK", "Apply", "Done", "Save", "Accept", "Confirm", "Close"} {
		found := false
		for _, s := range list {
			if strings.Contains(s.Query, w) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no strategy covers confirmation word %q", w)
		}
	}
}

func TestSubmitStrategies_ExactLabelFirst(t *testing.T) {
	list := submitStrategies()
	if list[0].Query != "Create Worksheet" || list[0].Kind != ByText {
		t.Errorf("first strategy = %+v, want the exact button label", list[0])
	}
	last := list[len(list)-1]
	if last.Query != "Create" {
		t.Errorf("last strategy = %+v, want the loosest label match last", last)
	}
}

func TestStrategiesForIntent(t *testing.T) {
	for _, intent := range []Intent{
		IntentSetText, IntentOpenLetterMenu, IntentConfirm, IntentSubmit, IntentFindDownloadLink,
	} {
		if len(strategiesFor(intent)) == 0 {
			t.Errorf("intent %s has no strategy list", intent)
		}
	}
	// The style intents carry parameters and use their builders directly.
	if strategiesFor(IntentSetLineStyle) != nil {
		t.Error("IntentSetLineStyle should not resolve through the parameterless mapping")
	}
	if strategiesFor(IntentSetLetterStyle) != nil {
		t.Error("IntentSetLetterStyle should not resolve through the parameterless mapping")
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"dashed", "Dashed"},
		{"Solid", "Solid"},
		{"", ""},
		{"123", "123"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
