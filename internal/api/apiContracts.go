package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id         string            `json:"id" example:"job_cz109"`
	DocumentId string            `json:"document_id" example:"doc_550"`
	Result     Result            `json:"result"`
	Error      *JobOutgoingError `json:"error,omitempty"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status string `json:"status"`
}

type InitJobResponse struct {
	Id         string `json:"id"`
	DocumentId string `json:"document_id"`
	StatusURL  string `json:"status_url"`
}

type ChunkPayload struct {
	Text        string `json:"text"`
	StartIndex  int    `json:"start_index"`
	WordCount   int    `json:"word_count"`
	Occurrences int    `json:"occurrences,omitempty"`
}

type DocumentResponse struct {
	Id            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Category      string         `json:"category,omitempty"`
	FileName      string         `json:"file_name"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	MediaType     string         `json:"media_type"`
	ExtractedText string         `json:"extracted_text,omitempty"`
	Chunks        []ChunkPayload `json:"chunks,omitempty"`
	WordCount     int            `json:"word_count"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type DocumentSummaryPayload struct {
	Id            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	FileName      string    `json:"file_name"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	MediaType     string    `json:"media_type"`
	WordCount     int       `json:"word_count"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type DocumentListResponse struct {
	Documents  []DocumentSummaryPayload `json:"documents"`
	Pagination Pagination               `json:"pagination"`
}

type SearchResultPayload struct {
	Document       DocumentSummaryPayload `json:"document"`
	Score          int                    `json:"score"`
	RelevantChunks []ChunkPayload         `json:"relevant_chunks,omitempty"`
	MatchedTerms   []string               `json:"matched_terms,omitempty"`
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Results []SearchResultPayload `json:"results"`
	Count   int                   `json:"count"`
}

// requests---------------------

type UpdateDocumentRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
