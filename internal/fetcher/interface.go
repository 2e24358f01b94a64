package fetcher

import (
	"context"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Fetcher defines the interface for retrieving pull request review data.
//
// GetPullRequestInfo is a single, mandatory request: an error means the
// pull request is unusable and the caller must fail the whole item. The
// paginated getters are fail-soft instead; on a failed page they report
// the problem and return whatever was fetched so far.
type Fetcher interface {
	// GetPullRequestInfo retrieves the basic information of a pull request
	GetPullRequestInfo(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error)

	// GetReviews retrieves all reviews of a pull request
	GetReviews(ctx context.Context, owner, repo string, number int) []*domain.Review

	// GetReviewComments retrieves all inline review comments of a pull request
	GetReviewComments(ctx context.Context, owner, repo string, number int) []*domain.Comment

	// GetIssueComments retrieves all PR-level issue comments of a pull request
	GetIssueComments(ctx context.Context, owner, repo string, number int) []*domain.Comment
}
