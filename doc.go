// Package worksheetpdf generates handwriting-practice worksheet PDFs by
// driving the WorksheetWorks.com print-practice form through headless Chrome
// (Chrome DevTools Protocol).
//
// The target page is not controlled by this library and its markup is
// unversioned, so every form element is located through an ordered list of
// independent lookup strategies rather than a single selector. After the form
// is submitted, four detection methods run in turn to find the generated
// PDF: a download-directory poll, navigation/window inspection, in-page link
// discovery, and a secondary "Download" control.
//
// # Usage
//
// Create a [Session], generate, and close:
//
//	s, err := worksheetpdf.NewSession(worksheetpdf.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, err := s.Generate(ctx, worksheetpdf.Request{
//	    Text:        "Hello World",
//	    Output:      "practice.pdf",
//	    LineStyle:   worksheetpdf.LineSolid,
//	    LetterStyle: worksheetpdf.LetterDashed,
//	})
//
// A [RunResult] reports whether an artifact was produced, where it was
// written, and where the diagnostic screenshot and page-source dumps landed.
// A failed run (res.Success == false) is not an error: the target site may
// simply have changed beyond what the strategy lists can absorb.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	s, err := worksheetpdf.NewSession(worksheetpdf.WithAutoDownload())
//
// The mapping from requested styles to the site's underlying option values is
// heuristic. [WithGuidePattern] and [WithLetterValues] override it when the
// site's value codes drift.
package worksheetpdf
