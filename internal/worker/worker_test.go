package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/job"
	"github.com/avasani/KnowledgeAPI/internal/kb"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

// MockIngester tracks processed jobs and can be told to fail.
type MockIngester struct {
	ProcessedCount int32
	FailWith       error
}

func (m *MockIngester) Ingest(ctx context.Context, req kb.IngestRequest) (kbmodel.Document, error) {
	atomic.AddInt32(&m.ProcessedCount, 1)
	if m.FailWith != nil {
		return kbmodel.Document{}, m.FailWith
	}
	return kbmodel.Document{ID: req.DocumentID, Status: kbmodel.StatusProcessed}, nil
}

type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]jobModel.Job
}

func newMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: make(map[string]jobModel.Job)}
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.Id] = j
	return nil
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
}

func TestWorkerPool_Flow(t *testing.T) {
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          newMockJobStore(),
	}
	mockIngester := &MockIngester{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockIngester)
	InitWorkerPool(stopChan, wg)

	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true
		time.Sleep(50 * time.Millisecond)

		if count := atomic.LoadInt64(&currentWorkerCount); count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "test-1", DocumentId: "doc-1"}
		time.Sleep(50 * time.Millisecond)

		if processed := atomic.LoadInt32(&mockIngester.ProcessedCount); processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestExecuteJob_RecordsResult(t *testing.T) {
	store := newMockJobStore()
	_jobService = &job.Service{JobStore: store}
	logger = logger_i.NewLogger("TestWorker")

	t.Run("success", func(t *testing.T) {
		_ingester = &MockIngester{}
		executeJob(jobModel.Job{Id: "ok-job", DocumentId: "doc-1"})

		saved, ok := store.GetJob(context.Background(), "ok-job")
		if !ok {
			t.Fatal("job state not saved")
		}
		if saved.Status != jobModel.JobStatusComplete {
			t.Errorf("status = %s; want COMPLETE", saved.Status)
		}
		if saved.EndTime.IsZero() {
			t.Error("end time not set")
		}
	})

	t.Run("unsupported media type", func(t *testing.T) {
		_ingester = &MockIngester{FailWith: &kbmodel.UnsupportedMediaTypeError{MediaType: "application/zip"}}
		executeJob(jobModel.Job{Id: "bad-type-job"})

		saved, _ := store.GetJob(context.Background(), "bad-type-job")
		if saved.Status != jobModel.JobStatusError {
			t.Errorf("status = %s; want Error", saved.Status)
		}
		if saved.Error.Kind != jobModel.ErrKindUnsupportedMediaType {
			t.Errorf("error kind = %s; want unsupported_media_type", saved.Error.Kind)
		}
		if saved.Error.Retry {
			t.Error("unsupported media type must not be retryable")
		}
	})

	t.Run("extraction failure", func(t *testing.T) {
		_ingester = &MockIngester{FailWith: &kbmodel.ExtractionFailedError{Cause: errors.New("corrupt file")}}
		executeJob(jobModel.Job{Id: "corrupt-job"})

		saved, _ := store.GetJob(context.Background(), "corrupt-job")
		if saved.Error.Kind != jobModel.ErrKindExtractionFailed {
			t.Errorf("error kind = %s; want extraction_failed", saved.Error.Kind)
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the full idle worker timeout")
	}
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockIngester{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	if count := atomic.LoadInt64(&currentWorkerCount); count != 0 {
		t.Errorf("Worker should have timed out and retired, but count is %d", count)
	}
}
