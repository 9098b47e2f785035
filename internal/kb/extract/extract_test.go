package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestText_PlainAndMarkdown(t *testing.T) {
	tests := []struct {
		name      string
		mediaType kbmodel.MediaType
		content   string
	}{
		{"plain.txt", kbmodel.MediaTypeText, "plain text body"},
		{"notes.md", kbmodel.MediaTypeMarkdown, "# Heading\n\nmarkdown body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.name, tt.content)
			got, err := Text(path, tt.mediaType)
			if err != nil {
				t.Fatalf("Text failed: %v", err)
			}
			if got != tt.content {
				t.Errorf("extracted %q; want the file content as-is", got)
			}
		})
	}
}

func TestText_UnsupportedMediaType(t *testing.T) {
	_, err := Text("ignored", kbmodel.MediaType("application/zip"))
	var unsupported *kbmodel.UnsupportedMediaTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedMediaTypeError, got %v", err)
	}
	if unsupported.MediaType != "application/zip" {
		t.Errorf("error carries %q; want the rejected type", unsupported.MediaType)
	}
}

func TestText_CorruptPDF(t *testing.T) {
	path := writeTemp(t, "broken.pdf", "this is not a pdf")
	_, err := Text(path, kbmodel.MediaTypePDF)
	var failed *kbmodel.ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected ExtractionFailedError, got %v", err)
	}
}

func TestText_MissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "absent.txt"), kbmodel.MediaTypeText)
	var failed *kbmodel.ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected ExtractionFailedError, got %v", err)
	}
}
