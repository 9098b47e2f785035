package kbmodel

import (
	"strings"
	"time"
)

type DocStatus string

const (
	StatusProcessing DocStatus = "processing"
	StatusProcessed  DocStatus = "processed"
	StatusError      DocStatus = "error"
)

type MediaType string

const (
	MediaTypePDF      MediaType = "application/pdf"
	MediaTypeText     MediaType = "text/plain"
	MediaTypeMarkdown MediaType = "text/markdown"
	MediaTypeDocx     MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeOdt      MediaType = "application/vnd.oasis.opendocument.text"
	MediaTypeRtf      MediaType = "application/rtf"
)

// IsSupported reports whether the extractor can handle this media type.
func (m MediaType) IsSupported() bool {
	switch m {
	case MediaTypePDF, MediaTypeText, MediaTypeMarkdown, MediaTypeDocx, MediaTypeOdt, MediaTypeRtf:
		return true
	}
	return false
}

// MediaTypeFromExtension is the fallback when an upload arrives without a
// declared content type.
func MediaTypeFromExtension(fileName string) MediaType {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	switch strings.ToLower(fileName[idx:]) {
	case ".pdf":
		return MediaTypePDF
	case ".txt":
		return MediaTypeText
	case ".md", ".markdown":
		return MediaTypeMarkdown
	case ".docx":
		return MediaTypeDocx
	case ".odt":
		return MediaTypeOdt
	case ".rtf":
		return MediaTypeRtf
	default:
		return MediaType(fileName[idx:])
	}
}

// TextChunk is an overlapping word window of a document's extracted text.
type TextChunk struct {
	Text       string `json:"text"`
	StartIndex int    `json:"start_index"` // word offset within the source text
	WordCount  int    `json:"word_count"`
}

type Document struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Category      string      `json:"category,omitempty"`
	FileName      string      `json:"file_name"`
	FileSizeBytes int64       `json:"file_size_bytes"`
	MediaType     MediaType   `json:"media_type"`
	FilePath      string      `json:"-"` // backing file, never serialized outward
	ExtractedText string      `json:"extracted_text,omitempty"`
	Chunks        []TextChunk `json:"chunks,omitempty"`
	WordCount     int         `json:"word_count"`
	Status        DocStatus   `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DocumentSummary is the listing view: everything but the large payload
// fields (extracted text and chunks).
type DocumentSummary struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	FileName      string    `json:"file_name"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	MediaType     MediaType `json:"media_type"`
	WordCount     int       `json:"word_count"`
	Status        DocStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      d.Category,
		FileName:      d.FileName,
		FileSizeBytes: d.FileSizeBytes,
		MediaType:     d.MediaType,
		WordCount:     d.WordCount,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// DocRef is an inverted index posting: one document that contains a term.
type DocRef struct {
	DocumentID string `json:"document_id"`
	OwnerID    string `json:"owner_id"`
}

// MetadataPatch updates the user-supplied metadata fields. Nil pointers
// leave the field untouched.
type MetadataPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type ListOptions struct {
	Page      int
	Limit     int
	Category  string
	SortBy    string
	SortOrder SortOrder
}

type SearchOptions struct {
	Limit    int
	Category string
}

// ChunkMatch is a chunk surfaced for a search result, scored by the total
// number of query term occurrences inside it.
type ChunkMatch struct {
	Chunk       TextChunk `json:"chunk"`
	Occurrences int       `json:"occurrences"`
}

type SearchResult struct {
	Document       DocumentSummary `json:"document"`
	Score          int             `json:"score"` // count of distinct query terms present
	RelevantChunks []ChunkMatch    `json:"relevant_chunks,omitempty"`
	MatchedTerms   []string        `json:"matched_terms,omitempty"`
}
