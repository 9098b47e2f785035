package adapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/api"
	"github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
)

func ToInitJobResponse(jobId, documentId string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:         jobId,
		DocumentId: documentId,
		StatusURL:  fmt.Sprintf("status/%s", jobId), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Kind != "" {
		errorPtr = &api.JobOutgoingError{
			Code:    errorKindToCode(job.Error.Kind),
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:         job.Id,
		DocumentId: job.DocumentId,
		StartTime:  job.CreatedTime,
		EndTime:    job.EndTime,
		Error:      errorPtr,
		Result:     api.Result{Status: string(job.Status)},
	}
}

func errorKindToCode(kind jobModel.ErrorKind) int {
	switch kind {
	case jobModel.ErrKindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case jobModel.ErrKindExtractionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
