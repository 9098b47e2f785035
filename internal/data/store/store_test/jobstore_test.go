package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/data/redisStore"
	"github.com/avasani/KnowledgeAPI/internal/data/store"
	"github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:         jobID,
		OwnerId:    "alice",
		DocumentId: "doc-1",
		Status:     jobModel.JobStatusRunning,
		Payload: jobModel.JobPayload{
			FileName:  "handbook.pdf",
			MediaType: "application/pdf",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrieved, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrieved.Payload.FileName != testJob.Payload.FileName {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrieved.Payload.FileName, testJob.Payload.FileName)
		}
		if retrieved.DocumentId != "doc-1" {
			t.Errorf("DocumentId = %s; want doc-1", retrieved.DocumentId)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Error Kind Survives Roundtrip", func(t *testing.T) {
		failed := testJob
		failed.Id = "job_failed"
		failed.Status = jobModel.JobStatusError
		failed.Error = jobModel.JobError{
			Kind:    jobModel.ErrKindUnsupportedMediaType,
			Message: "unsupported media type",
		}
		if err := jobStore.SaveJob(ctx, failed); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
		retrieved, found := jobStore.GetJob(ctx, "job_failed")
		if !found {
			t.Fatal("failed job not found")
		}
		if retrieved.Error.Kind != jobModel.ErrKindUnsupportedMediaType {
			t.Errorf("error kind = %q; want %q", retrieved.Error.Kind, jobModel.ErrKindUnsupportedMediaType)
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)
		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestInMemoryJobStore_Lifecycle(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	job := jobModel.Job{Id: "mem-1", Status: jobModel.JobStatusQueued}
	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, found := jobStore.GetJob(ctx, "mem-1")
	if !found || got.Status != jobModel.JobStatusQueued {
		t.Fatalf("GetJob = %+v, %v", got, found)
	}

	jobStore.DeleteJob(ctx, "mem-1")
	if _, found := jobStore.GetJob(ctx, "mem-1"); found {
		t.Error("job still present after delete")
	}
}
