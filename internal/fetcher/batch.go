package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// FetchPullRequests fetches a batch of pull requests sequentially, in
// the given order. Each item uses the reduced flow: basic info, reviews
// and inline review comments only — no issue comments and no reply
// classification, which keeps bulk runs cheap. A failed item is reported
// and skipped; the batch always continues. The pacer runs between
// consecutive items, never after the last one. A cancelled context stops
// the batch between items and returns the partial result.
func (p *Pipeline) FetchPullRequests(ctx context.Context, owner, repo string, numbers []int, pacer Pacer) *domain.BatchResult {
	batch := domain.NewBatchResult(owner+"/"+repo, numbers)

	for i, number := range numbers {
		fmt.Printf("[%d/%d] Fetching PR #%d...\n", i+1, len(numbers), number)

		info, err := p.fetcher.GetPullRequestInfo(ctx, owner, repo, number)
		if err != nil {
			fmt.Printf("  Failed to fetch PR #%d: %v\n", number, err)
		} else {
			reviews := p.fetcher.GetReviews(ctx, owner, repo, number)
			fmt.Printf("  Found %d reviews\n", len(reviews))

			comments := p.fetcher.GetReviewComments(ctx, owner, repo, number)
			fmt.Printf("  Found %d review comments\n", len(comments))

			batch.Add(number, &domain.PRData{
				PullRequest:    info,
				Reviews:        reviews,
				ReviewComments: comments,
			})
		}

		if i < len(numbers)-1 && pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				fmt.Printf("  Batch interrupted: %v\n", err)
				break
			}
		}
	}

	batch.FetchedAt = time.Now()
	return batch
}
