// worksheet generates handwriting-practice worksheet PDFs from
// WorksheetWorks.com.
//
// Usage:
//
//	worksheet [flags]
//	worksheet --text "Hello World" --line-style solid --letter-style dashed -o hello.pdf
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	worksheetpdf "github.com/porticus-lab/go-worksheet-pdf"
)

var version = "dev"

var (
	text            string
	output          string
	lineStyle       string
	letterStyle     string
	visible         bool
	chromePath      string
	downloadBrowser bool
	noSandbox       bool
	timeout         time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "worksheet",
		Short:   "Generate handwriting practice worksheet PDFs",
		Version: version,
		Long: `worksheet drives the WorksheetWorks.com print-practice form through a
headless browser and saves the generated PDF locally.

The target site is not versioned; when a run fails, two diagnostic files
(debug_screenshot_advanced.png, debug_page_source.html) show what the page
looked like at the end of the run.`,
		Example: `  # Defaults: pangram text, dashed lines and letters
  worksheet

  # Custom text and styles
  worksheet --text "Hello World" --line-style solid --letter-style dashed -o hello.pdf

  # Watch the browser work through the form
  worksheet --visible`,
		RunE:         run,
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	f.StringVarP(&text, "text", "t", worksheetpdf.DefaultText, "text for handwriting practice")
	f.StringVarP(&output, "output", "o", worksheetpdf.DefaultOutput, "output PDF filename")
	f.StringVar(&lineStyle, "line-style", "dashed", "guide line style (solid|dashed|dotted|minimal|none)")
	f.StringVar(&letterStyle, "letter-style", "dashed", "letter style (solid|dashed|outline)")
	f.BoolVar(&visible, "visible", false, "run the browser with a window instead of headless")
	f.StringVar(&chromePath, "chrome", "", "path to the Chrome/Chromium executable")
	f.BoolVar(&downloadBrowser, "download-browser", false, "download a Chromium binary if none is installed")
	f.BoolVar(&noSandbox, "no-sandbox", false, "disable the Chrome sandbox (needed when running as root)")
	f.DurationVar(&timeout, "timeout", 3*time.Minute, "overall run timeout")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ls, err := worksheetpdf.ParseLineStyle(lineStyle)
	if err != nil {
		return err
	}
	lets, err := worksheetpdf.ParseLetterStyle(letterStyle)
	if err != nil {
		return err
	}

	mode := "Headless"
	if visible {
		mode = "Visible"
	}
	fmt.Println("Handwriting Worksheet Generator")
	fmt.Println("===============================")
	fmt.Printf("Text:         %s\n", text)
	fmt.Printf("Output:       %s\n", output)
	fmt.Printf("Line style:   %s\n", lineStyle)
	fmt.Printf("Letter style: %s\n", letterStyle)
	fmt.Printf("Mode:         %s\n", mode)
	fmt.Println()

	opts := []worksheetpdf.Option{
		worksheetpdf.WithTimeout(timeout),
		worksheetpdf.WithProgress(func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}),
	}
	if visible {
		opts = append(opts, worksheetpdf.WithVisible())
	}
	if chromePath != "" {
		opts = append(opts, worksheetpdf.WithChromePath(chromePath))
	}
	if downloadBrowser {
		opts = append(opts, worksheetpdf.WithAutoDownload())
	}
	if noSandbox {
		opts = append(opts, worksheetpdf.WithNoSandbox())
	}

	sess, err := worksheetpdf.NewSession(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Could not start a browser session.")
		fmt.Fprintln(os.Stderr, "Make sure Chrome or Chromium is installed, pass --chrome, or use --download-browser.")
		return err
	}
	defer sess.Close()

	res, err := sess.Generate(context.Background(), worksheetpdf.Request{
		Text:        text,
		Output:      output,
		LineStyle:   ls,
		LetterStyle: lets,
	})
	if err != nil {
		printDiagnostics(res)
		return err
	}

	if res.Success {
		fmt.Println()
		fmt.Println("Worksheet generated successfully!")
		fmt.Printf("Delivery: %s\n", res.Outcome.Kind)
		fmt.Printf("Saved to: %s\n", res.ArtifactPath)
		return nil
	}

	fmt.Println()
	fmt.Println("Failed to generate worksheet.")
	printDiagnostics(res)
	fmt.Println()
	fmt.Println("Troubleshooting:")
	fmt.Println("  1. Re-run with --visible to watch the process")
	fmt.Println("  2. The site may have changed its markup or added anti-bot measures")
	fmt.Println("  3. Inspect the diagnostic files above for the page state at run end")
	return worksheetpdf.ErrNoArtifact
}

func printDiagnostics(res worksheetpdf.RunResult) {
	if res.Diagnostics.ScreenshotPath != "" {
		fmt.Printf("Debug screenshot:  %s\n", res.Diagnostics.ScreenshotPath)
	}
	if res.Diagnostics.PageSourcePath != "" {
		fmt.Printf("Debug page source: %s\n", res.Diagnostics.PageSourcePath)
	}
}
