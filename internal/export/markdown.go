package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// MarkupRow is one markdown table row for a review comment
type MarkupRow struct {
	PRNumber int
	Body     string
	Path     string
}

// MarkupRows projects a batch result into markdown table rows, in fetch
// order. Nil comment entries are skipped silently.
func MarkupRows(batch *domain.BatchResult) []MarkupRow {
	var rows []MarkupRow

	for _, number := range batch.Order {
		data := batch.Data[number]
		if data == nil {
			continue
		}

		for _, comment := range data.ReviewComments {
			if comment == nil {
				continue
			}
			rows = append(rows, MarkupRow{
				PRNumber: number,
				Body:     comment.Body,
				Path:     stringCell(comment.Path),
			})
		}
	}

	return rows
}

// WriteMarkdown writes rows as a markdown table. Pipes inside the body
// and path are escaped so they do not break the table; newlines in the
// body are replaced with <br>.
func WriteMarkdown(w io.Writer, rows []MarkupRow) error {
	if _, err := fmt.Fprintln(w, "| PR Number | Comment Body | File Path |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|-----------|--------------|----------|"); err != nil {
		return err
	}

	for _, r := range rows {
		body := strings.ReplaceAll(escapePipes(r.Body), "\n", "<br>")
		path := escapePipes(r.Path)
		if _, err := fmt.Fprintf(w, "| %d | %s | %s |\n", r.PRNumber, body, path); err != nil {
			return err
		}
	}

	return nil
}

// SaveMarkdown writes rows to a markdown file
func SaveMarkdown(path string, rows []MarkupRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteMarkdown(f, rows)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
