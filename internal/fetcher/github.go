package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
)

// githubFetcher implements Fetcher using the GitHub REST API
type githubFetcher struct {
	client *github.Client
}

// NewGitHubFetcher creates a new GitHub fetcher authenticated with a
// personal access token
func NewGitHubFetcher(token string) Fetcher {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &githubFetcher{client: github.NewClient(tc)}
}

// NewFetcherWithClient creates a Fetcher from an existing go-github
// client. Intended for tests, which point the client at an httptest
// server.
func NewFetcherWithClient(client *github.Client) Fetcher {
	return &githubFetcher{client: client}
}

// GetPullRequestInfo retrieves the basic information of a pull request
func (f *githubFetcher) GetPullRequestInfo(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error) {
	pr, resp, err := f.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusNotFound:
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("pull request %s/%s#%d", owner, repo, number))
			case http.StatusUnauthorized:
				return nil, apperrors.NewUnauthorizedError("GitHub token was rejected")
			}
		}
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("failed to fetch PR info for %s/%s#%d", owner, repo, number), err)
	}

	reportRateLimit(resp)
	return normalizePullRequest(pr), nil
}

// GetReviews retrieves all reviews of a pull request
func (f *githubFetcher) GetReviews(ctx context.Context, owner, repo string, number int) []*domain.Review {
	raw := fetchAllPages(func(page int) ([]*github.PullRequestReview, bool) {
		opts := &github.ListOptions{Page: page, PerPage: perPage}
		items, resp, err := f.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			fmt.Printf("Error fetching reviews for #%d (page %d): %v\n", number, page, err)
			return nil, false
		}
		reportRateLimit(resp)
		return items, true
	})

	reviews := make([]*domain.Review, 0, len(raw))
	for _, r := range raw {
		reviews = append(reviews, normalizeReview(r))
	}
	return reviews
}

// GetReviewComments retrieves all inline review comments of a pull request
func (f *githubFetcher) GetReviewComments(ctx context.Context, owner, repo string, number int) []*domain.Comment {
	raw := fetchAllPages(func(page int) ([]*github.PullRequestComment, bool) {
		opts := &github.PullRequestListCommentsOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: perPage},
		}
		items, resp, err := f.client.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			fmt.Printf("Error fetching review comments for #%d (page %d): %v\n", number, page, err)
			return nil, false
		}
		reportRateLimit(resp)
		return items, true
	})

	comments := make([]*domain.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, normalizeReviewComment(c))
	}
	return comments
}

// GetIssueComments retrieves all PR-level issue comments of a pull request
func (f *githubFetcher) GetIssueComments(ctx context.Context, owner, repo string, number int) []*domain.Comment {
	raw := fetchAllPages(func(page int) ([]*github.IssueComment, bool) {
		opts := &github.IssueListCommentsOptions{
			ListOptions: github.ListOptions{Page: page, PerPage: perPage},
		}
		items, resp, err := f.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			fmt.Printf("Error fetching issue comments for #%d (page %d): %v\n", number, page, err)
			return nil, false
		}
		reportRateLimit(resp)
		return items, true
	})

	comments := make([]*domain.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, normalizeIssueComment(c))
	}
	return comments
}

// reportRateLimit warns when the remaining API quota is running low
func reportRateLimit(resp *github.Response) {
	if resp != nil && resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		fmt.Printf("  Warning: GitHub rate limit low (%d remaining)\n", resp.Rate.Remaining)
	}
}
