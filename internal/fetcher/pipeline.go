package fetcher

import (
	"context"
	"time"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Pipeline orchestrates the per-pull-request fetch flow
type Pipeline struct {
	fetcher Fetcher
}

// NewPipeline creates a new pipeline on top of a Fetcher
func NewPipeline(f Fetcher) *Pipeline {
	return &Pipeline{fetcher: f}
}

// FetchPullRequest retrieves one pull request in depth: basic info,
// reviews, inline review comments and PR-level issue comments, then
// classifies the comments and assembles the counts. A missing pull
// request fails the whole call; the paginated sub-fetches are fail-soft.
func (p *Pipeline) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*domain.FetchResult, error) {
	info, err := p.fetcher.GetPullRequestInfo(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	reviews := p.fetcher.GetReviews(ctx, owner, repo, number)
	reviewComments := p.fetcher.GetReviewComments(ctx, owner, repo, number)
	issueComments := p.fetcher.GetIssueComments(ctx, owner, repo, number)

	set := Classify(reviewComments, issueComments)

	return &domain.FetchResult{
		PullRequest:    info,
		Reviews:        reviews,
		AllComments:    set.All,
		TargetComments: set.Targets,
		Summary: domain.FetchSummary{
			TotalReviews:        len(reviews),
			TotalReviewComments: len(reviewComments),
			TotalIssueComments:  len(issueComments),
			TotalAllComments:    len(set.All),
			TotalTargetComments: len(set.Targets),
			ReviewStates:        reviewStateHistogram(reviews),
		},
		FetchedAt: time.Now(),
	}, nil
}

// reviewStateHistogram counts reviews per state. Reviews without a state
// land in the "UNKNOWN" bucket.
func reviewStateHistogram(reviews []*domain.Review) map[string]int {
	states := make(map[string]int)
	for _, r := range reviews {
		if r == nil {
			continue
		}
		state := r.State
		if state == "" {
			state = domain.ReviewStateUnknown
		}
		states[state]++
	}
	return states
}
