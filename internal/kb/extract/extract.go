package extract

import (
	"os"
	"strings"

	"github.com/lu4p/cat"

	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Text Extractor")

// Text converts the backing file into plain text based on the declared
// media type. It only reads the file; cleanup on failure is the caller's
// responsibility.
func Text(path string, mediaType kbmodel.MediaType) (string, error) {
	switch mediaType {
	case kbmodel.MediaTypePDF:
		return extractPDF(path)
	case kbmodel.MediaTypeText, kbmodel.MediaTypeMarkdown:
		return extractPlain(path)
	case kbmodel.MediaTypeDocx, kbmodel.MediaTypeOdt, kbmodel.MediaTypeRtf:
		return extractWithCat(path)
	default:
		return "", &kbmodel.UnsupportedMediaTypeError{MediaType: string(mediaType)}
	}
}

// Plain text and markdown are read as-is.
func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed reading text file", "path", path, "error", err)
		return "", &kbmodel.ExtractionFailedError{Cause: err}
	}
	return string(data), nil
}

// cat handles .docx, .odt and .rtf containers.
func extractWithCat(path string) (string, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("failed extracting document content", "path", path, "error", err)
		return "", &kbmodel.ExtractionFailedError{Cause: err}
	}
	return strings.TrimSpace(text), nil
}
