package domain

import "time"

// FetchSummary holds the per-PR counts for a full single fetch
type FetchSummary struct {
	TotalReviews        int            `json:"total_reviews"`
	TotalReviewComments int            `json:"total_review_comments"`
	TotalIssueComments  int            `json:"total_issue_comments"`
	TotalAllComments    int            `json:"total_all_comments"`
	TotalTargetComments int            `json:"total_target_comments"`
	ReviewStates        map[string]int `json:"review_states"`
}

// FetchResult is the full result of fetching one pull request in depth
type FetchResult struct {
	PullRequest    *PullRequest `json:"pull_request"`
	Reviews        []*Review    `json:"reviews"`
	AllComments    []*Comment   `json:"all_comments"`
	TargetComments []*Comment   `json:"target_comments"`
	Summary        FetchSummary `json:"summary"`
	FetchedAt      time.Time    `json:"fetched_at"`
}

// PRData is the reduced per-PR record collected in bulk mode: summary,
// reviews and review comments only. Slices may contain nil entries;
// consumers skip them.
type PRData struct {
	PullRequest    *PullRequest `json:"pull_request"`
	Reviews        []*Review    `json:"reviews"`
	ReviewComments []*Comment   `json:"review_comments"`
}

// BatchResult maps pull request numbers to their fetched data. A number
// missing from Data failed and was skipped. Order records the numbers
// that succeeded, in fetch order.
type BatchResult struct {
	Repository string          `json:"repository"`
	Numbers    []int           `json:"pr_numbers"`
	Data       map[int]*PRData `json:"data"`
	FetchedAt  time.Time       `json:"fetched_at"`

	Order []int `json:"-"`
}

// NewBatchResult creates an empty batch result for the given PR numbers
func NewBatchResult(repository string, numbers []int) *BatchResult {
	return &BatchResult{
		Repository: repository,
		Numbers:    numbers,
		Data:       make(map[int]*PRData),
	}
}

// Add records a successfully fetched pull request
func (b *BatchResult) Add(number int, data *PRData) {
	if _, ok := b.Data[number]; !ok {
		b.Order = append(b.Order, number)
	}
	b.Data[number] = data
}

// Len returns the number of successfully fetched pull requests
func (b *BatchResult) Len() int {
	return len(b.Order)
}
