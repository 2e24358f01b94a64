package fetcher

import (
	"time"

	"github.com/google/go-github/v55/github"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// login extracts a user login, falling back to the documented default
// when the user object is absent or has no login
func login(u *github.User) string {
	if u == nil || u.GetLogin() == "" {
		return domain.UnknownAuthor
	}
	return u.GetLogin()
}

// normalizePullRequest converts a go-github PullRequest into the domain model
func normalizePullRequest(pr *github.PullRequest) *domain.PullRequest {
	var mergedAt *time.Time
	if pr.MergedAt != nil {
		t := pr.GetMergedAt().Time
		mergedAt = &t
	}

	return &domain.PullRequest{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		State:      pr.GetState(),
		CreatedAt:  pr.GetCreatedAt().Time,
		UpdatedAt:  pr.GetUpdatedAt().Time,
		MergedAt:   mergedAt,
		Author:     login(pr.User),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
	}
}

// normalizeReview converts a go-github PullRequestReview into the domain model
func normalizeReview(r *github.PullRequestReview) *domain.Review {
	return &domain.Review{
		ID:          r.GetID(),
		Author:      login(r.User),
		State:       r.GetState(),
		Body:        r.GetBody(),
		SubmittedAt: r.GetSubmittedAt().Time,
		CommitID:    r.GetCommitID(),
	}
}

// normalizeReviewComment converts a go-github PullRequestComment into the
// domain model, keeping the thread and file fields only when present
func normalizeReviewComment(c *github.PullRequestComment) *domain.Comment {
	comment := &domain.Comment{
		ID:        c.GetID(),
		Author:    login(c.User),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
		Body:      c.GetBody(),
		Type:      domain.CommentTypeReview,
	}

	if c.Path != nil {
		path := c.GetPath()
		comment.Path = &path
	}
	if c.Line != nil {
		line := c.GetLine()
		comment.Line = &line
	}
	if c.CommitID != nil {
		commitID := c.GetCommitID()
		comment.CommitID = &commitID
	}
	if c.InReplyTo != nil {
		inReplyTo := c.GetInReplyTo()
		comment.InReplyToID = &inReplyTo
	}
	if c.PullRequestReviewID != nil {
		reviewID := c.GetPullRequestReviewID()
		comment.ReviewID = &reviewID
	}

	return comment
}

// normalizeIssueComment converts a go-github IssueComment into the domain
// model. Issue comments have no file or thread structure, so the optional
// fields stay empty.
func normalizeIssueComment(c *github.IssueComment) *domain.Comment {
	return &domain.Comment{
		ID:        c.GetID(),
		Author:    login(c.User),
		CreatedAt: c.GetCreatedAt().Time,
		UpdatedAt: c.GetUpdatedAt().Time,
		Body:      c.GetBody(),
		Type:      domain.CommentTypeIssue,
	}
}
