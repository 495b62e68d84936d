package worksheetpdf

import "fmt"

// Strategy lists per intent. Order matters: exact attribute and value
// matches come first, loose text matches last, so that a precise match is
// always preferred when several strategies would succeed.

// textInputStrategies locates the practice-text input. The form has shipped
// the field as a bare textarea, a named input, and a bootstrap-styled input.
func textInputStrategies() StrategyList {
	return StrategyList{
		{Name: "textarea-tag", Kind: ByCSS, Query: "textarea"},
		{Name: "named-text", Kind: ByCSS, Query: "[name='text']"},
		{Name: "id-text", Kind: ByCSS, Query: "#text"},
		{Name: "text-input", Kind: ByCSS, Query: "input[type='text']"},
		{Name: "form-control", Kind: ByCSS, Query: ".form-control"},
	}
}

// guideLineStrategies locates the guide-line control for one bit-pattern
// value code. The preview images carry the pattern in their src; clicking
// their wrapper toggles the option.
func guideLineStrategies(pattern string, style LineStyle) StrategyList {
	return StrategyList{
		{Name: "pattern-radio", Kind: ByCSS,
			Query: fmt.Sprintf("input[type='radio'][value='%s']", pattern)},
		{Name: "guide-image", Kind: ByCSS, Parent: true,
			Query: fmt.Sprintf("img[src*='guides'][src*='%s']", pattern)},
		{Name: "named-guides", Kind: ByCSS, Query: "[name='guides']"},
		{Name: "id-guides", Kind: ByCSS, Query: "#guides"},
		{Name: "pattern-input", Kind: ByCSS,
			Query: fmt.Sprintf("input[value='%s']", pattern)},
		{Name: "style-label", Kind: ByText, Query: capitalize(string(style)),
			Tags: []string{"label"}},
	}
}

// letterMenuStrategies locates the control that reveals the letter style
// options. The section has appeared as a labelled heading, a letter-classed
// container, a preview image, and an appearance section.
func letterMenuStrategies() StrategyList {
	return StrategyList{
		{Name: "letters-label", Kind: ByText, Query: "Letters:"},
		{Name: "letter-appearance-label", Kind: ByText, Query: "Letter Appearance"},
		{Name: "letter-style-label", Kind: ByText, Query: "Letter Style"},
		{Name: "letter-container", Kind: ByCSS,
			Query: "div[class*='letter'], div[id*='letter']"},
		{Name: "letter-image", Kind: ByCSS,
			Query: "img[src*='appearance'], img[src*='letter'], img[alt*='letter']"},
		{Name: "letter-button", Kind: ByText, Query: "Letter",
			Tags: []string{"button", "a"}},
		{Name: "font-button", Kind: ByText, Query: "Font",
			Tags: []string{"button", "a"}},
		{Name: "appearance-section", Kind: ByCSS,
			Query: "[class*='appearance'], [id*='appearance']"},
	}
}

// letterOptionProbes detects that the letter menu actually opened: new style
// option controls must have appeared. Opening is only ever confirmed through
// this list, never assumed from a click having landed.
func letterOptionProbes() StrategyList {
	return StrategyList{
		{Name: "option-radios", Kind: ByCSS,
			Query: "input[type='radio'][value*='dashed'], " +
				"input[type='radio'][value*='outline'], " +
				"input[type='radio'][value*='solid']"},
		{Name: "option-label-dashed", Kind: ByText, Query: "Dashed"},
		{Name: "option-label-outline", Kind: ByText, Query: "Outline"},
		{Name: "option-label-solid", Kind: ByText, Query: "Solid"},
	}
}

// letterOptionStrategies locates the specific letter style option. values
// come from the synonym table in preference order; radios for every synonym
// are tried before any loose label match.
func letterOptionStrategies(values []string) StrategyList {
	list := make(StrategyList, 0, 2*len(values))
	for _, v := range values {
		list = append(list, Strategy{
			Name: "option-radio-" + v, Kind: ByCSS,
			Query: fmt.Sprintf("input[type='radio'][value*='%s']", v),
		})
	}
	for _, v := range values {
		list = append(list, Strategy{
			Name: "option-text-" + v, Kind: ByText, Query: v,
			Tags: []string{"label", "span", "div", "button"},
		})
	}
	return list
}

// confirmStrategies locates the optional control that applies a menu
// selection. Absence is normal: most releases of the site apply changes
// immediately.
func confirmStrategies() StrategyList {
	list := StrategyList{}
	for _, w := range []string{"OK", "Apply", "Done", "Save", "Accept", "Confirm", "Close"} {
		list = append(list, Strategy{
			Name: "confirm-button-" + w, Kind: ByText, Query: w,
			Tags: []string{"button"},
		})
		list = append(list, Strategy{
			Name: "confirm-input-" + w, Kind: ByCSS,
			Query: fmt.Sprintf("input[type='button'][value*='%s'], input[type='submit'][value*='%s']", w, w),
		})
	}
	return list
}

// submitStrategies locates the "Create Worksheet" control.
func submitStrategies() StrategyList {
	return StrategyList{
		{Name: "create-worksheet-button", Kind: ByText, Query: "Create Worksheet",
			Tags: []string{"button"}},
		{Name: "create-worksheet-input", Kind: ByCSS,
			Query: "input[value='Create Worksheet']"},
		{Name: "submit-button", Kind: ByCSS, Query: "button[type='submit']"},
		{Name: "btn-primary", Kind: ByCSS, Query: ".btn-primary"},
		{Name: "create-button", Kind: ByText, Query: "Create",
			Tags: []string{"button"}},
	}
}

// downloadControlStrategies locates a secondary Download/Save control shown
// after submission when the artifact is not delivered automatically.
func downloadControlStrategies() StrategyList {
	return StrategyList{
		{Name: "download-button", Kind: ByText, Query: "Download",
			Tags: []string{"button", "a"}},
		{Name: "save-button", Kind: ByText, Query: "Save",
			Tags: []string{"button", "a"}},
	}
}

// strategiesFor binds an intent to its StrategyList. The two style intents
// carry parameters (the pattern code, the synonym values) and resolve
// through their builders directly; every other intent resolves through this
// mapping.
func strategiesFor(intent Intent) StrategyList {
	switch intent {
	case IntentSetText:
		return textInputStrategies()
	case IntentOpenLetterMenu:
		return letterMenuStrategies()
	case IntentConfirm:
		return confirmStrategies()
	case IntentSubmit:
		return submitStrategies()
	case IntentFindDownloadLink:
		return downloadControlStrategies()
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
