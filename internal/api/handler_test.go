package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
	"github.com/Trippy3/pr-comments-fetcher/internal/fetcher"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeFetcher serves canned per-PR data
type fakeFetcher struct {
	prs     map[int]*domain.PullRequest
	reviews map[int][]*domain.Review
}

func (f *fakeFetcher) GetPullRequestInfo(ctx context.Context, owner, repo string, number int) (*domain.PullRequest, error) {
	pr, ok := f.prs[number]
	if !ok {
		return nil, apperrors.NewNotFoundError("pull request")
	}
	return pr, nil
}

func (f *fakeFetcher) GetReviews(ctx context.Context, owner, repo string, number int) []*domain.Review {
	return f.reviews[number]
}

func (f *fakeFetcher) GetReviewComments(ctx context.Context, owner, repo string, number int) []*domain.Comment {
	return nil
}

func (f *fakeFetcher) GetIssueComments(ctx context.Context, owner, repo string, number int) []*domain.Comment {
	return nil
}

// memStore keeps runs in a map
type memStore struct {
	runs  []*domain.BatchRun
	byID  map[string]*domain.BatchRun
	saves int
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]*domain.BatchRun)}
}

func (m *memStore) SaveRun(ctx context.Context, run *domain.BatchRun) error {
	m.runs = append(m.runs, run)
	m.byID[run.ID] = run
	m.saves++
	return nil
}

func (m *memStore) ListRuns(ctx context.Context, owner, repo string) ([]*domain.RunInfo, error) {
	var infos []*domain.RunInfo
	for _, run := range m.runs {
		if owner != "" && repo != "" && (run.Owner != owner || run.Repo != repo) {
			continue
		}
		infos = append(infos, &domain.RunInfo{
			ID:        run.ID,
			Owner:     run.Owner,
			Repo:      run.Repo,
			PRNumbers: run.Result.Numbers,
			FetchedAt: run.Result.FetchedAt,
			CreatedAt: run.CreatedAt,
		})
	}
	return infos, nil
}

func (m *memStore) GetRun(ctx context.Context, id string) (*domain.BatchRun, error) {
	run, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("run " + id)
	}
	return run, nil
}

func (m *memStore) Migrate(ctx context.Context) error { return nil }
func (m *memStore) Close() error                      { return nil }

func newTestRouter(f *fakeFetcher, store *memStore) *gin.Engine {
	pipeline := fetcher.NewPipeline(f)
	return SetupRoutes(NewHandler(pipeline, store))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPullRequestComments(t *testing.T) {
	f := &fakeFetcher{
		prs: map[int]*domain.PullRequest{
			42: {Number: 42, Title: "Add feature X", State: "open", Author: "alice"},
		},
		reviews: map[int][]*domain.Review{
			42: {{ID: 1, Author: "bob", State: "APPROVED"}},
		},
	}
	router := newTestRouter(f, newMemStore())

	w := doRequest(router, http.MethodGet, "/api/v1/repos/owner/repo/pulls/42/comments", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data *domain.FetchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Add feature X", body.Data.PullRequest.Title)
	assert.Equal(t, 1, body.Data.Summary.TotalReviews)
	assert.Equal(t, map[string]int{"APPROVED": 1}, body.Data.Summary.ReviewStates)
}

func TestGetPullRequestComments_BadNumber(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodGet, "/api/v1/repos/owner/repo/pulls/abc/comments", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

func TestGetPullRequestComments_NotFound(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodGet, "/api/v1/repos/owner/repo/pulls/99/comments", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestCreateRun(t *testing.T) {
	f := &fakeFetcher{
		prs: map[int]*domain.PullRequest{
			1: {Number: 1, State: "open"},
			3: {Number: 3, State: "closed"},
		},
	}
	store := newMemStore()
	router := newTestRouter(f, store)

	w := doRequest(router, http.MethodPost, "/api/v1/repos/owner/repo/runs", `{"numbers":"1-3","delay":0}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, store.saves)

	var body struct {
		Data struct {
			ID        string                `json:"id"`
			PRNumbers []int                 `json:"pr_numbers"`
			Fetched   int                   `json:"fetched"`
			Summary   *domain.SummaryReport `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID)
	assert.Equal(t, []int{1, 2, 3}, body.Data.PRNumbers)
	assert.Equal(t, 2, body.Data.Fetched, "PR 2 failed and was skipped")
	require.NotNil(t, body.Data.Summary)
	assert.Equal(t, 2, body.Data.Summary.TotalPRs)
}

func TestCreateRun_MissingNumbers(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodPost, "/api/v1/repos/owner/repo/runs", `{"delay":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

func TestCreateRun_BadExpression(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodPost, "/api/v1/repos/owner/repo/runs", `{"numbers":"1,abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

func TestListAndGetRuns(t *testing.T) {
	store := newMemStore()
	batch := domain.NewBatchResult("owner/repo", []int{1})
	batch.Add(1, &domain.PRData{PullRequest: &domain.PullRequest{Number: 1, State: "open"}})
	run := domain.NewBatchRun("owner", "repo", batch)
	require.NoError(t, store.SaveRun(context.Background(), run))

	router := newTestRouter(&fakeFetcher{}, store)

	w := doRequest(router, http.MethodGet, "/api/v1/runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []*domain.RunInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, run.ID, list.Data[0].ID)

	w = doRequest(router, http.MethodGet, "/api/v1/runs/"+run.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Data *domain.BatchRun `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "owner/repo", got.Data.Result.Repository)

	w = doRequest(router, http.MethodGet, "/api/v1/runs/"+run.ID+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Data *domain.SummaryReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Data.TotalPRs)
	assert.Equal(t, map[string]int{"open": 1}, summary.Data.PRStates)
}

func TestGetRun_NotFound(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, newMemStore())

	w := doRequest(router, http.MethodGet, "/api/v1/runs/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}
