package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening pdf file", "path", path, "error", err)
		return "", &kbmodel.ExtractionFailedError{Cause: err}
	}

	var builder strings.Builder
	numPages := f.NumPage()
	extracted := 0
	logger.Debug("extractPDF", "path", path, "pages", numPages)

	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// a single unreadable page does not abort the document
			logger.Error("error parsing page content", "page", i, "error", err)
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(content)
		extracted++
	}

	if numPages > 0 && extracted == 0 {
		return "", &kbmodel.ExtractionFailedError{Cause: errors.New("no readable pages")}
	}
	return builder.String(), nil
}

// protectExtract bounds a single page parse. The pdf parser can hang on
// malformed streams, so the extraction runs in its own goroutine with a
// deadline.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout", config.PageExtractTimeout)
		return "", errors.New("page extraction timed out")
	}
}
