package worksheetpdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Artifact holds a worksheet PDF fetched out-of-band (a redirect URL or an
// in-page link), before it is persisted under the caller's output name.
//
// Its methods may be called multiple times — the underlying data is never
// modified.
type Artifact struct {
	data []byte
}

// Bytes returns the raw PDF content.
func (a *Artifact) Bytes() []byte {
	return a.data
}

// Len returns the size of the artifact in bytes.
func (a *Artifact) Len() int {
	return len(a.data)
}

// IsPDF reports whether the content starts with the PDF magic number.
// Out-of-band fetches are validated with this before being persisted: a
// link that looked like a PDF may have served an error page instead.
func (a *Artifact) IsPDF() bool {
	return len(a.data) > 4 && string(a.data[:5]) == "%PDF-"
}

// Reader returns a [*bytes.Reader] over the artifact content.
func (a *Artifact) Reader() *bytes.Reader {
	return bytes.NewReader(a.data)
}

// WriteTo writes the full artifact content to w. It implements [io.WriterTo].
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.data)
	return int64(n), err
}

// WriteToFile writes the artifact to the file at path, creating it if needed.
func (a *Artifact) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, a.data, perm)
}

// maxArtifactSize bounds an out-of-band fetch. Worksheets are a few hundred
// kilobytes; anything past this is not the artifact we asked for.
const maxArtifactSize = 50 << 20

// fetchArtifact retrieves an artifact URL with an independent HTTP request,
// outside the browser, using the same user agent the session presents.
func fetchArtifact(ctx context.Context, rawURL, userAgent string) (*Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: building fetch request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("worksheetpdf: fetching %s: status %s", rawURL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactSize))
	if err != nil {
		return nil, fmt.Errorf("worksheetpdf: reading %s: %w", rawURL, err)
	}
	return &Artifact{data: data}, nil
}
