package aggregator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	batch := domain.NewBatchResult("owner/repo", []int{1, 2, 3})
	batch.Add(1, &domain.PRData{
		PullRequest: &domain.PullRequest{Number: 1, State: "open"},
		Reviews: []*domain.Review{
			{ID: 1, Author: "alice", State: "APPROVED"},
			{ID: 2, Author: "bob", State: "CHANGES_REQUESTED"},
		},
		ReviewComments: []*domain.Comment{
			{ID: 10, Author: "alice", Path: strPtr("main.go")},
			{ID: 11, Author: "bob", Path: strPtr("main.go")},
		},
	})
	batch.Add(3, &domain.PRData{
		PullRequest: &domain.PullRequest{Number: 3, State: "closed"},
		Reviews: []*domain.Review{
			{ID: 3, Author: "alice", State: "APPROVED"},
			{ID: 4, State: ""},
		},
		ReviewComments: []*domain.Comment{
			{ID: 12, Author: "", Path: strPtr("util.go")},
			nil,
		},
	})

	report := Summarize(batch)

	assert.Equal(t, 2, report.TotalPRs)
	assert.Equal(t, 4, report.TotalReviews)
	assert.Equal(t, 4, report.TotalComments, "nil entries still count toward the total")
	assert.Equal(t, map[string]int{"open": 1, "closed": 1}, report.PRStates)
	assert.Equal(t, map[string]int{
		"APPROVED":          2,
		"CHANGES_REQUESTED": 1,
		"UNKNOWN":           1,
	}, report.ReviewStates)

	assert.Equal(t, []domain.RankedEntry{
		{Name: "alice", Count: 2},
		{Name: "bob", Count: 1},
		{Name: "unknown", Count: 1},
	}, report.TopReviewers)
	assert.Equal(t, []domain.RankedEntry{
		{Name: "alice", Count: 1},
		{Name: "bob", Count: 1},
		{Name: "unknown", Count: 1},
	}, report.TopCommenters)
	assert.Equal(t, []domain.RankedEntry{
		{Name: "main.go", Count: 2},
		{Name: "util.go", Count: 1},
	}, report.TopFiles)
}

func TestSummarize_MissingPullRequestState(t *testing.T) {
	batch := domain.NewBatchResult("owner/repo", []int{5})
	batch.Add(5, &domain.PRData{PullRequest: &domain.PullRequest{Number: 5}})

	report := Summarize(batch)

	assert.Equal(t, map[string]int{"unknown": 1}, report.PRStates)
}

func TestSummarize_TruncatesRankingsToTen(t *testing.T) {
	batch := domain.NewBatchResult("owner/repo", []int{1})

	comments := make([]*domain.Comment, 0, 12)
	for i := 0; i < 12; i++ {
		comments = append(comments, &domain.Comment{
			ID:     int64(i),
			Author: fmt.Sprintf("user%02d", i),
		})
	}
	batch.Add(1, &domain.PRData{
		PullRequest:    &domain.PullRequest{Number: 1, State: "open"},
		ReviewComments: comments,
	})

	report := Summarize(batch)

	require.Len(t, report.TopCommenters, 10)
	// all tied at one comment each; first-seen order wins
	assert.Equal(t, "user00", report.TopCommenters[0].Name)
	assert.Equal(t, "user09", report.TopCommenters[9].Name)
}

func TestCounter_TopIsStableOnTies(t *testing.T) {
	c := newCounter()
	for _, key := range []string{"a", "b", "a", "c", "b", "a"} {
		c.Add(key)
	}

	assert.Equal(t, []domain.RankedEntry{
		{Name: "a", Count: 3},
		{Name: "b", Count: 2},
		{Name: "c", Count: 1},
	}, c.Top(10))

	assert.Equal(t, []domain.RankedEntry{
		{Name: "a", Count: 3},
	}, c.Top(1))
}

func TestSummarize_EmptyBatch(t *testing.T) {
	report := Summarize(domain.NewBatchResult("owner/repo", nil))

	assert.Equal(t, 0, report.TotalPRs)
	assert.Empty(t, report.PRStates)
	assert.Empty(t, report.TopReviewers)
}
