package domain

import "time"

// ReviewStateUnknown is the histogram bucket for reviews without a state.
// Note the casing differs from UnknownAuthor; both are part of the output
// contract.
const ReviewStateUnknown = "UNKNOWN"

// Review represents a normalized pull request review.
// State is passed through as GitHub reports it (APPROVED,
// CHANGES_REQUESTED, COMMENTED, ...).
type Review struct {
	ID          int64     `json:"id"`
	Author      string    `json:"user"`
	State       string    `json:"state"`
	Body        string    `json:"body"`
	SubmittedAt time.Time `json:"submitted_at"`
	CommitID    string    `json:"commit_id"`
}
