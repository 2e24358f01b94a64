package domain

import "time"

// CommentType tells which endpoint a comment came from
type CommentType string

const (
	// CommentTypeReview marks inline comments attached to a review thread
	CommentTypeReview CommentType = "review_comment"
	// CommentTypeIssue marks PR-level comments from the issues endpoint
	CommentTypeIssue CommentType = "issue_comment"
)

// UnknownAuthor is the fallback author when the user record is absent
const UnknownAuthor = "unknown"

// Comment represents a normalized pull request comment.
// Review comments carry file/thread fields; issue comments never do.
type Comment struct {
	ID          int64       `json:"id"`
	Author      string      `json:"user"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Body        string      `json:"body"`
	Type        CommentType `json:"type"`
	Path        *string     `json:"path,omitempty"`
	Line        *int        `json:"line,omitempty"`
	CommitID    *string     `json:"commit_id,omitempty"`
	InReplyToID *int64      `json:"in_reply_to_id,omitempty"`
	ReviewID    *int64      `json:"pull_request_review_id,omitempty"`
}

// IsReply reports whether the comment answers another review comment
func (c *Comment) IsReply() bool {
	return c.InReplyToID != nil
}

// CommentSet is the merged comment view for one pull request
type CommentSet struct {
	All     []*Comment
	Targets []*Comment
}
