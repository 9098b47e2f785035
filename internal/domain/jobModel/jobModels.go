package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "Init"
	IngestExtracting InternalStatus = "Extracting"
	IngestIndexing   InternalStatus = "Indexing"
	Complete         InternalStatus = "Complete"
	Error            InternalStatus = "Error"
)

// ErrorKind mirrors the knowledge-base error taxonomy so the status
// endpoint can report what went wrong without callers parsing messages.
type ErrorKind string

const (
	ErrKindUnsupportedMediaType ErrorKind = "unsupported_media_type"
	ErrKindExtractionFailed     ErrorKind = "extraction_failed"
	ErrKindInternal             ErrorKind = "internal"
)

// Job tracks one document ingestion from upload to indexed.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	OwnerId     string         `json:"owner_id"`
	DocumentId  string         `json:"document_id"`
	Payload     JobPayload     `json:"payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message,omitempty"`
	Retry   bool      `json:"retry"`
}

type JobPayload struct {
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	MediaType     string `json:"media_type"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
