package jobqueue

import (
	"testing"
	"time"
)

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeReconcilePlacements,
		Status:     JobStatusPending,
		MaxRetries: DefaultMaxRetries,
		CreatedAt:  time.Now(),
	}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing {
		t.Fatalf("expected processing, got %s", job.Status)
	}
	if job.ProcessedAt == nil {
		t.Fatal("expected ProcessedAt to be set")
	}

	job.MarkAsFailed("boom")
	if job.Status != JobStatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if job.RetryCount != 1 {
		t.Fatalf("expected retry count 1, got %d", job.RetryCount)
	}
	if !job.IsRetryable() {
		t.Fatal("expected job to be retryable")
	}

	job.RetryCount = job.MaxRetries
	if job.IsRetryable() {
		t.Fatal("expected job to be exhausted")
	}

	job.MarkAsCompleted()
	if job.Status != JobStatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	if job.ErrorMsg != "" {
		t.Fatal("expected error message to be cleared")
	}
	if job.CompletedAt == nil {
		t.Fatal("expected CompletedAt to be set")
	}
}

func TestReconcilePlacementsPayloadRoundTrip(t *testing.T) {
	payload := ReconcilePlacementsJobPayload{SlotKey: "home-hero"}

	restored, err := ReconcilePlacementsJobPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.SlotKey != "home-hero" {
		t.Fatalf("expected home-hero, got %s", restored.SlotKey)
	}
}
