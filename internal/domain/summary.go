package domain

// RankedEntry is one name/count pair in a ranking
type RankedEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SummaryReport is the aggregate view over a batch result. The three
// rankings are truncated to their top 10 entries, ordered by count
// descending; ties keep the order in which the keys first appeared
// during aggregation.
type SummaryReport struct {
	TotalPRs      int            `json:"total_prs"`
	TotalReviews  int            `json:"total_reviews"`
	TotalComments int            `json:"total_comments"`
	PRStates      map[string]int `json:"pr_states"`
	ReviewStates  map[string]int `json:"review_states"`
	TopReviewers  []RankedEntry  `json:"top_reviewers"`
	TopCommenters []RankedEntry  `json:"top_commenters"`
	TopFiles      []RankedEntry  `json:"files_with_most_comments"`
}
