package fetcher

import "github.com/Trippy3/pr-comments-fetcher/internal/domain"

// Classify merges review comments and issue comments into one view and
// extracts the target set: comments that are not the opening remark of a
// review thread. Review comments qualify when they reply to another
// comment; issue comments have no thread structure on the API side, so
// every one of them counts as a target.
func Classify(reviewComments, issueComments []*domain.Comment) *domain.CommentSet {
	all := make([]*domain.Comment, 0, len(reviewComments)+len(issueComments))
	all = append(all, reviewComments...)
	all = append(all, issueComments...)

	targets := make([]*domain.Comment, 0, len(all))
	for _, c := range reviewComments {
		if c.IsReply() {
			targets = append(targets, c)
		}
	}
	targets = append(targets, issueComments...)

	return &domain.CommentSet{All: all, Targets: targets}
}
