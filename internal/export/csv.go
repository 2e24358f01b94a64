// Package export turns batch results into flat output formats. The
// projections are pure; file writing is a thin wrapper around them.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Row is one flattened review comment for CSV export
type Row struct {
	PRNumber      int
	PRTitle       string
	PRState       string
	PRAuthor      string
	CommentID     int64
	CommentAuthor string
	CommentBody   string
	FilePath      *string
	LineNumber    *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	InReplyTo     *int64
}

// csvHeader lists the CSV columns in output order
var csvHeader = []string{
	"pr_number", "pr_title", "pr_state", "pr_author",
	"comment_id", "comment_author", "comment_body",
	"file_path", "line_number", "created_at", "updated_at", "in_reply_to",
}

// Rows flattens a batch result into one row per review comment, in fetch
// order. Nil comment entries are skipped silently.
func Rows(batch *domain.BatchResult) []Row {
	var rows []Row

	for _, number := range batch.Order {
		data := batch.Data[number]
		if data == nil || data.PullRequest == nil {
			continue
		}
		pr := data.PullRequest

		for _, comment := range data.ReviewComments {
			if comment == nil {
				continue
			}
			rows = append(rows, Row{
				PRNumber:      number,
				PRTitle:       pr.Title,
				PRState:       pr.State,
				PRAuthor:      pr.Author,
				CommentID:     comment.ID,
				CommentAuthor: comment.Author,
				CommentBody:   comment.Body,
				FilePath:      comment.Path,
				LineNumber:    comment.Line,
				CreatedAt:     comment.CreatedAt,
				UpdatedAt:     comment.UpdatedAt,
				InReplyTo:     comment.InReplyToID,
			})
		}
	}

	return rows
}

// WriteCSV writes rows to w with a header line
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.PRNumber),
			r.PRTitle,
			r.PRState,
			r.PRAuthor,
			strconv.FormatInt(r.CommentID, 10),
			r.CommentAuthor,
			r.CommentBody,
			stringCell(r.FilePath),
			intCell(r.LineNumber),
			r.CreatedAt.Format(time.RFC3339),
			r.UpdatedAt.Format(time.RFC3339),
			int64Cell(r.InReplyTo),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes rows to a CSV file
func SaveCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteCSV(f, rows)
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func int64Cell(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
