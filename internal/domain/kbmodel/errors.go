package kbmodel

import (
	"errors"
	"fmt"
)

// Callers branch on these with errors.Is / errors.As, not by message text.
var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidQuery = errors.New("search query must not be empty")
)

type UnsupportedMediaTypeError struct {
	MediaType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type: %q", e.MediaType)
}

type ExtractionFailedError struct {
	Cause error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("text extraction failed: %v", e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}
