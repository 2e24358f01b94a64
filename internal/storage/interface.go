package storage

import (
	"context"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Storage is the abstract interface for persisting batch fetch runs.
// The fetch pipeline itself never touches storage; only the CLI and the
// API server save and read runs.
type Storage interface {
	// SaveRun persists a batch run with all of its pull request data
	SaveRun(ctx context.Context, run *domain.BatchRun) error

	// ListRuns lists stored runs, optionally filtered by owner and repo
	// (empty strings match everything)
	ListRuns(ctx context.Context, owner, repo string) ([]*domain.RunInfo, error)

	// GetRun loads a stored run, reconstructing the full batch result
	GetRun(ctx context.Context, id string) (*domain.BatchRun, error)

	// Migrate creates the schema
	Migrate(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
