package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/config"
	jobmodel "github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/kb"
	"github.com/avasani/KnowledgeAPI/internal/metrics"
)

func executeJob(j jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(j.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, j.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()

	log := logger.With("traceId", j.TraceId, "jobId", j.Id)
	log.Debug("Processing job", "documentId", j.DocumentId)

	j.Status = jobmodel.JobStatusRunning
	j.CurrentStep = jobmodel.IngestExtracting
	saveJobState(ctx, j)

	j = ingestDocument(ctx, j)

	j.EndTime = time.Now()
	saveJobState(ctx, j)
}

func ingestDocument(ctx context.Context, j jobmodel.Job) jobmodel.Job {
	_, err := _ingester.Ingest(ctx, kb.IngestRequest{
		DocumentID:    j.DocumentId,
		OwnerID:       j.OwnerId,
		FilePath:      j.Payload.FilePath,
		FileName:      j.Payload.FileName,
		FileSizeBytes: j.Payload.FileSizeBytes,
		MediaType:     kbmodel.MediaType(j.Payload.MediaType),
		Title:         j.Payload.Title,
		Description:   j.Payload.Description,
		Category:      j.Payload.Category,
	})
	if err != nil {
		j.Status = jobmodel.JobStatusError
		j.CurrentStep = jobmodel.Error
		j.Error = classifyError(err)
		logger.Error("Ingestion failed", "jobId", j.Id, "error", err)
		return j
	}
	j.Status = jobmodel.JobStatusComplete
	j.CurrentStep = jobmodel.Complete
	return j
}

// classifyError maps the knowledge-base taxonomy onto the job record so
// the status endpoint reports a structured kind.
func classifyError(err error) jobmodel.JobError {
	jobErr := jobmodel.JobError{Message: err.Error()}

	var unsupported *kbmodel.UnsupportedMediaTypeError
	var failed *kbmodel.ExtractionFailedError
	switch {
	case errors.As(err, &unsupported):
		jobErr.Kind = jobmodel.ErrKindUnsupportedMediaType
	case errors.As(err, &failed):
		jobErr.Kind = jobmodel.ErrKindExtractionFailed
	default:
		jobErr.Kind = jobmodel.ErrKindInternal
		jobErr.Retry = true
	}
	return jobErr
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, j jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(ctx, j); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
