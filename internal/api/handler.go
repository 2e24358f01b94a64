package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Trippy3/pr-comments-fetcher/internal/aggregator"
	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
	"github.com/Trippy3/pr-comments-fetcher/internal/fetcher"
	"github.com/Trippy3/pr-comments-fetcher/internal/storage"
)

// Handler handles API requests
type Handler struct {
	pipeline *fetcher.Pipeline
	store    storage.Storage
}

// NewHandler creates a new API handler
func NewHandler(pipeline *fetcher.Pipeline, store storage.Storage) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    store,
	}
}

// GetPullRequestComments fetches review data for a single pull request
// GET /api/v1/repos/:owner/:repo/pulls/:number/comments
func (h *Handler) GetPullRequestComments(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")

	number, err := fetcher.ParsePRNumber(c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.pipeline.FetchPullRequest(c.Request.Context(), owner, repo, number)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// createRunRequest is the body of POST .../runs
type createRunRequest struct {
	Numbers string  `json:"numbers" binding:"required"`
	Delay   float64 `json:"delay"`
}

// CreateRun fetches a batch of pull requests and stores the run
// POST /api/v1/repos/:owner/:repo/runs
func (h *Handler) CreateRun(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")

	req := createRunRequest{Delay: 1.0}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}

	numbers, err := fetcher.ParsePRNumbers(req.Numbers)
	if err != nil {
		respondError(c, err)
		return
	}

	pacer := fetcher.NewSleepPacer(req.Delay)
	batch := h.pipeline.FetchPullRequests(c.Request.Context(), owner, repo, numbers, pacer)

	run := domain.NewBatchRun(owner, repo, batch)
	if err := h.store.SaveRun(c.Request.Context(), run); err != nil {
		respondError(c, apperrors.NewInternalError("failed to save run", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"id":         run.ID,
			"owner":      run.Owner,
			"repo":       run.Repo,
			"pr_numbers": batch.Numbers,
			"fetched":    batch.Len(),
			"created_at": run.CreatedAt,
			"summary":    aggregator.Summarize(batch),
		},
	})
}

// ListRuns lists stored runs, newest first
// GET /api/v1/runs
func (h *Handler) ListRuns(c *gin.Context) {
	owner := c.Query("owner")
	repo := c.Query("repo")

	runs, err := h.store.ListRuns(c.Request.Context(), owner, repo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
	})
}

// GetRun returns a stored run with its full batch result
// GET /api/v1/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": run,
	})
}

// GetRunSummary returns aggregate statistics for a stored run
// GET /api/v1/runs/:id/summary
func (h *Handler) GetRunSummary(c *gin.Context) {
	run, err := h.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": aggregator.Summarize(run.Result),
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrCodeUpstream:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}
