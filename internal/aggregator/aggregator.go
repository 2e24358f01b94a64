package aggregator

import (
	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Summarize folds a batch result into an aggregate report. Items fold in
// the order they were fetched, so ranking ties stay deterministic across
// runs.
func Summarize(batch *domain.BatchResult) *domain.SummaryReport {
	report := &domain.SummaryReport{
		TotalPRs:     batch.Len(),
		PRStates:     make(map[string]int),
		ReviewStates: make(map[string]int),
	}

	reviewers := newCounter()
	commenters := newCounter()
	files := newCounter()

	for _, number := range batch.Order {
		data := batch.Data[number]
		if data == nil {
			continue
		}

		state := "unknown"
		if data.PullRequest != nil && data.PullRequest.State != "" {
			state = data.PullRequest.State
		}
		report.PRStates[state]++

		report.TotalReviews += len(data.Reviews)
		for _, review := range data.Reviews {
			if review == nil {
				continue
			}

			reviewState := review.State
			if reviewState == "" {
				reviewState = domain.ReviewStateUnknown
			}
			report.ReviewStates[reviewState]++

			reviewer := review.Author
			if reviewer == "" {
				reviewer = domain.UnknownAuthor
			}
			reviewers.Add(reviewer)
		}

		report.TotalComments += len(data.ReviewComments)
		for _, comment := range data.ReviewComments {
			if comment == nil {
				continue
			}

			commenter := comment.Author
			if commenter == "" {
				commenter = domain.UnknownAuthor
			}
			commenters.Add(commenter)

			if comment.Path != nil && *comment.Path != "" {
				files.Add(*comment.Path)
			}
		}
	}

	report.TopReviewers = reviewers.Top(10)
	report.TopCommenters = commenters.Top(10)
	report.TopFiles = files.Top(10)

	return report
}
