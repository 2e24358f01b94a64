package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchRun is a persisted batch fetch
type BatchRun struct {
	ID        string       `json:"id"`
	Owner     string       `json:"owner"`
	Repo      string       `json:"repo"`
	Result    *BatchResult `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewBatchRun wraps a batch result with a fresh run ID
func NewBatchRun(owner, repo string, result *BatchResult) *BatchRun {
	return &BatchRun{
		ID:        uuid.New().String(),
		Owner:     owner,
		Repo:      repo,
		Result:    result,
		CreatedAt: time.Now(),
	}
}

// RunInfo is a listing row for stored batch runs
type RunInfo struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Repo      string    `json:"repo"`
	PRNumbers []int     `json:"pr_numbers"`
	FetchedAt time.Time `json:"fetched_at"`
	CreatedAt time.Time `json:"created_at"`
}
