package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage"
)

// sqliteStorage implements the Storage interface for SQLite
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &sqliteStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *sqliteStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		repo TEXT NOT NULL,
		pr_numbers TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_owner_repo ON runs(owner, repo);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

	CREATE TABLE IF NOT EXISTS pull_requests (
		run_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		state TEXT NOT NULL,
		author TEXT NOT NULL,
		base_branch TEXT NOT NULL,
		head_branch TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		merged_at TIMESTAMP,
		PRIMARY KEY (run_id, number)
	);

	CREATE TABLE IF NOT EXISTS reviews (
		run_id TEXT NOT NULL,
		pr_number INTEGER NOT NULL,
		position INTEGER NOT NULL,
		id INTEGER NOT NULL,
		author TEXT NOT NULL,
		state TEXT NOT NULL,
		body TEXT NOT NULL,
		submitted_at TIMESTAMP NOT NULL,
		commit_id TEXT NOT NULL,
		PRIMARY KEY (run_id, pr_number, position)
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_run ON reviews(run_id);

	CREATE TABLE IF NOT EXISTS review_comments (
		run_id TEXT NOT NULL,
		pr_number INTEGER NOT NULL,
		position INTEGER NOT NULL,
		id INTEGER NOT NULL,
		author TEXT NOT NULL,
		body TEXT NOT NULL,
		path TEXT,
		line INTEGER,
		commit_id TEXT,
		in_reply_to_id INTEGER,
		review_id INTEGER,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, pr_number, position)
	);

	CREATE INDEX IF NOT EXISTS idx_review_comments_run ON review_comments(run_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun persists a batch run with all of its pull request data
func (s *sqliteStorage) SaveRun(ctx context.Context, run *domain.BatchRun) error {
	numbersJSON, err := json.Marshal(run.Result.Numbers)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, owner, repo, pr_numbers, fetched_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Owner, run.Repo, string(numbersJSON), run.Result.FetchedAt, run.CreatedAt)
	if err != nil {
		return err
	}

	for position, number := range run.Result.Order {
		data := run.Result.Data[number]
		if data == nil || data.PullRequest == nil {
			continue
		}
		pr := data.PullRequest

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pull_requests (run_id, number, position, title, state, author, base_branch, head_branch, created_at, updated_at, merged_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, number, position, pr.Title, pr.State, pr.Author, pr.BaseBranch, pr.HeadBranch, pr.CreatedAt, pr.UpdatedAt, pr.MergedAt)
		if err != nil {
			return err
		}

		if err := saveReviews(ctx, tx, run.ID, number, data.Reviews); err != nil {
			return err
		}
		if err := saveComments(ctx, tx, run.ID, number, data.ReviewComments); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func saveReviews(ctx context.Context, tx *sql.Tx, runID string, number int, reviews []*domain.Review) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reviews (run_id, pr_number, position, id, author, state, body, submitted_at, commit_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, review := range reviews {
		if review == nil {
			continue
		}
		_, err = stmt.ExecContext(ctx,
			runID, number, position,
			review.ID, review.Author, review.State, review.Body, review.SubmittedAt, review.CommitID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func saveComments(ctx context.Context, tx *sql.Tx, runID string, number int, comments []*domain.Comment) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO review_comments (run_id, pr_number, position, id, author, body, path, line, commit_id, in_reply_to_id, review_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, comment := range comments {
		if comment == nil {
			continue
		}
		_, err = stmt.ExecContext(ctx,
			runID, number, position,
			comment.ID, comment.Author, comment.Body,
			comment.Path, comment.Line, comment.CommitID, comment.InReplyToID, comment.ReviewID,
			comment.CreatedAt, comment.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListRuns lists stored runs, newest first
func (s *sqliteStorage) ListRuns(ctx context.Context, owner, repo string) ([]*domain.RunInfo, error) {
	query := `
		SELECT id, owner, repo, pr_numbers, fetched_at, created_at
		FROM runs
	`
	var args []interface{}
	if owner != "" && repo != "" {
		query += " WHERE owner = ? AND repo = ?"
		args = append(args, owner, repo)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.RunInfo
	for rows.Next() {
		info := &domain.RunInfo{}
		var numbersJSON string
		if err := rows.Scan(&info.ID, &info.Owner, &info.Repo, &numbersJSON, &info.FetchedAt, &info.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(numbersJSON), &info.PRNumbers); err != nil {
			return nil, err
		}
		runs = append(runs, info)
	}

	return runs, rows.Err()
}

// GetRun loads a stored run and reconstructs the full batch result
func (s *sqliteStorage) GetRun(ctx context.Context, id string) (*domain.BatchRun, error) {
	run := &domain.BatchRun{ID: id}
	var numbersJSON string
	var fetchedAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT owner, repo, pr_numbers, fetched_at, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.Owner, &run.Repo, &numbersJSON, &fetchedAt, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("run " + id)
	}
	if err != nil {
		return nil, err
	}

	var numbers []int
	if err := json.Unmarshal([]byte(numbersJSON), &numbers); err != nil {
		return nil, err
	}

	batch := domain.NewBatchResult(run.Owner+"/"+run.Repo, numbers)
	batch.FetchedAt = fetchedAt

	reviews, err := s.loadReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.loadComments(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, title, state, author, base_branch, head_branch, created_at, updated_at, merged_at
		FROM pull_requests WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		pr := &domain.PullRequest{}
		var mergedAt sql.NullTime
		if err := rows.Scan(&pr.Number, &pr.Title, &pr.State, &pr.Author, &pr.BaseBranch, &pr.HeadBranch, &pr.CreatedAt, &pr.UpdatedAt, &mergedAt); err != nil {
			return nil, err
		}
		if mergedAt.Valid {
			t := mergedAt.Time
			pr.MergedAt = &t
		}

		batch.Add(pr.Number, &domain.PRData{
			PullRequest:    pr,
			Reviews:        reviews[pr.Number],
			ReviewComments: comments[pr.Number],
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	run.Result = batch
	return run, nil
}

func (s *sqliteStorage) loadReviews(ctx context.Context, runID string) (map[int][]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pr_number, id, author, state, body, submitted_at, commit_id
		FROM reviews WHERE run_id = ? ORDER BY pr_number, position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make(map[int][]*domain.Review)
	for rows.Next() {
		var number int
		review := &domain.Review{}
		if err := rows.Scan(&number, &review.ID, &review.Author, &review.State, &review.Body, &review.SubmittedAt, &review.CommitID); err != nil {
			return nil, err
		}
		reviews[number] = append(reviews[number], review)
	}

	return reviews, rows.Err()
}

func (s *sqliteStorage) loadComments(ctx context.Context, runID string) (map[int][]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pr_number, id, author, body, path, line, commit_id, in_reply_to_id, review_id, created_at, updated_at
		FROM review_comments WHERE run_id = ? ORDER BY pr_number, position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[int][]*domain.Comment)
	for rows.Next() {
		var number int
		comment := &domain.Comment{Type: domain.CommentTypeReview}
		var path, commitID sql.NullString
		var line sql.NullInt64
		var inReplyTo, reviewID sql.NullInt64
		if err := rows.Scan(&number, &comment.ID, &comment.Author, &comment.Body, &path, &line, &commitID, &inReplyTo, &reviewID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, err
		}
		if path.Valid {
			comment.Path = &path.String
		}
		if line.Valid {
			n := int(line.Int64)
			comment.Line = &n
		}
		if commitID.Valid {
			comment.CommitID = &commitID.String
		}
		if inReplyTo.Valid {
			comment.InReplyToID = &inReplyTo.Int64
		}
		if reviewID.Valid {
			comment.ReviewID = &reviewID.Int64
		}
		comments[number] = append(comments[number], comment)
	}

	return comments, rows.Err()
}

// Close closes the database connection
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
