package domain

import "time"

// PullRequest represents the basic information of a pull request
type PullRequest struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	State      string     `json:"state"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	MergedAt   *time.Time `json:"merged_at,omitempty"`
	Author     string     `json:"user"`
	BaseBranch string     `json:"base_branch"`
	HeadBranch string     `json:"head_branch"`
}
