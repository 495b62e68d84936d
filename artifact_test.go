package worksheetpdf

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

var pdfStub = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

func TestArtifact_IsPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"valid pdf", pdfStub, true},
		{"html error page", []byte("<html>404 not found</html>"), false},
		{"short", []byte("%PDF"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		a := &Artifact{data: tt.data}
		if got := a.IsPDF(); got != tt.want {
			t.Errorf("%s: IsPDF() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArtifact_Accessors(t *testing.T) {
	a := &Artifact{data: pdfStub}
	if !bytes.Equal(a.Bytes(), pdfStub) {
		t.Error("Bytes() differs from the underlying data")
	}
	if a.Len() != len(pdfStub) {
		t.Errorf("Len() = %d, want %d", a.Len(), len(pdfStub))
	}

	var buf bytes.Buffer
	n, err := a.WriteTo(&buf)
	if err != nil || n != int64(len(pdfStub)) {
		t.Fatalf("WriteTo: n=%d err=%v", n, err)
	}
	if !bytes.Equal(buf.Bytes(), pdfStub) {
		t.Error("WriteTo content differs")
	}

	got, err := readAllArtifact(a)
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if !bytes.Equal(got, pdfStub) {
		t.Error("Reader content differs")
	}
}

// readAllArtifact drains an artifact reader.
func readAllArtifact(a *Artifact) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(a.Reader())
	return buf.Bytes(), err
}

func TestArtifact_WriteToFile(t *testing.T) {
	a := &Artifact{data: pdfStub}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := a.WriteToFile(path, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, pdfStub) {
		t.Error("file content differs")
	}
}

func TestFetchArtifact(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfStub)
	}))
	defer srv.Close()

	a, err := fetchArtifact(context.Background(), srv.URL+"/worksheet.pdf", "agent-under-test")
	if err != nil {
		t.Fatalf("fetchArtifact: %v", err)
	}
	if !a.IsPDF() {
		t.Error("fetched artifact is not a PDF")
	}
	if gotUA != "agent-under-test" {
		t.Errorf("user agent = %q, want the session's", gotUA)
	}
}

func TestFetchArtifact_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := fetchArtifact(context.Background(), srv.URL+"/missing.pdf", "ua"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchArtifact_Unreachable(t *testing.T) {
	if _, err := fetchArtifact(context.Background(), "http://127.0.0.1:1/x.pdf", "ua"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
