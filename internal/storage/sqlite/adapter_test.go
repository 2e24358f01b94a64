package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage"
)

func setupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func testRun(t *testing.T) *domain.BatchRun {
	t.Helper()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	merged := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	batch := domain.NewBatchResult("owner/repo", []int{3, 1, 2})
	batch.FetchedAt = created

	batch.Add(3, &domain.PRData{
		PullRequest: &domain.PullRequest{
			Number: 3, Title: "Add parser", State: "merged", Author: "alice",
			BaseBranch: "main", HeadBranch: "feat/parser",
			CreatedAt: created, UpdatedAt: created, MergedAt: &merged,
		},
		Reviews: []*domain.Review{
			{ID: 100, Author: "bob", State: "APPROVED", Body: "nice", SubmittedAt: created, CommitID: "abc"},
			{ID: 101, Author: "carol", State: "COMMENTED", SubmittedAt: created},
		},
		ReviewComments: []*domain.Comment{
			{
				ID: 200, Author: "bob", Body: "rename this",
				Type: domain.CommentTypeReview,
				Path: strPtr("parser.go"), Line: intPtr(12),
				CommitID: strPtr("abc"), ReviewID: int64Ptr(100),
				CreatedAt: created, UpdatedAt: created,
			},
			{
				ID: 201, Author: "alice", Body: "done",
				Type:        domain.CommentTypeReview,
				InReplyToID: int64Ptr(200),
				CreatedAt:   created, UpdatedAt: created,
			},
		},
	})
	batch.Add(1, &domain.PRData{
		PullRequest: &domain.PullRequest{
			Number: 1, Title: "Fix docs", State: "open", Author: "dan",
			BaseBranch: "main", HeadBranch: "docs",
			CreatedAt: created, UpdatedAt: created,
		},
	})

	return domain.NewBatchRun("owner", "repo", batch)
}

func TestSaveAndGetRun(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	run := testRun(t)
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "owner", got.Owner)
	assert.Equal(t, "repo", got.Repo)
	assert.Equal(t, "owner/repo", got.Result.Repository)
	assert.Equal(t, []int{3, 1, 2}, got.Result.Numbers)
	assert.Equal(t, []int{3, 1}, got.Result.Order, "fetch order survives the round trip")

	pr := got.Result.Data[3].PullRequest
	assert.Equal(t, "Add parser", pr.Title)
	assert.Equal(t, "alice", pr.Author)
	assert.Equal(t, "feat/parser", pr.HeadBranch)
	require.NotNil(t, pr.MergedAt)
	assert.WithinDuration(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), *pr.MergedAt, time.Second)

	reviews := got.Result.Data[3].Reviews
	require.Len(t, reviews, 2)
	assert.Equal(t, int64(100), reviews[0].ID)
	assert.Equal(t, "APPROVED", reviews[0].State)
	assert.Equal(t, "carol", reviews[1].Author)

	comments := got.Result.Data[3].ReviewComments
	require.Len(t, comments, 2)
	assert.Equal(t, domain.CommentTypeReview, comments[0].Type)
	require.NotNil(t, comments[0].Path)
	assert.Equal(t, "parser.go", *comments[0].Path)
	require.NotNil(t, comments[0].Line)
	assert.Equal(t, 12, *comments[0].Line)
	require.NotNil(t, comments[1].InReplyToID)
	assert.Equal(t, int64(200), *comments[1].InReplyToID)
	assert.Nil(t, comments[1].Path)

	assert.Nil(t, got.Result.Data[1].PullRequest.MergedAt)
	assert.Empty(t, got.Result.Data[1].Reviews)
}

func TestGetRun_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListRuns(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	first := testRun(t)
	require.NoError(t, store.SaveRun(ctx, first))

	other := domain.NewBatchRun("someone", "else", domain.NewBatchResult("someone/else", []int{9}))
	other.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, store.SaveRun(ctx, other))

	all, err := store.ListRuns(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, []int{3, 1, 2}, all[1].PRNumbers)

	filtered, err := store.ListRuns(ctx, "owner", "repo")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
}
