package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/data/filestore"
	"github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/job"
	"github.com/avasani/KnowledgeAPI/internal/kb"
	"github.com/avasani/KnowledgeAPI/internal/metrics"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service, knowledgeBase *kb.KnowledgeBase, files *filestore.Storage) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}
		kbRef = knowledgeBase
		filesRef = files

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.OwnerId = newJob.ownerId
	_job.DocumentId = newJob.documentId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.Payload = newJob.payload

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//we will start a new worker every 10 requests - can also be configured
	//extraction involves file parsing which might take time
	//worker will be removed if it has idle time - so it should be ok
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || newJob.payload.MediaType == string(kbmodel.MediaTypePDF) {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
