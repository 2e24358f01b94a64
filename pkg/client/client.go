package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Trippy3/pr-comments-fetcher/internal/domain"
)

// Client is the API client for pr-comments-fetcher
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetPullRequestComments retrieves the full review data for one pull request
func (c *Client) GetPullRequestComments(owner, repo string, number int) (*domain.FetchResult, error) {
	path := fmt.Sprintf("/api/v1/repos/%s/%s/pulls/%d/comments", owner, repo, number)

	var response struct {
		Data *domain.FetchResult `json:"data"`
	}
	if err := c.get(path, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// CreatedRun is the server's response to a newly created run
type CreatedRun struct {
	ID        string                `json:"id"`
	Owner     string                `json:"owner"`
	Repo      string                `json:"repo"`
	PRNumbers []int                 `json:"pr_numbers"`
	Fetched   int                   `json:"fetched"`
	CreatedAt time.Time             `json:"created_at"`
	Summary   *domain.SummaryReport `json:"summary"`
}

// CreateRun runs a batch fetch on the server and stores the result
func (c *Client) CreateRun(owner, repo, numbers string, delay float64) (*CreatedRun, error) {
	path := fmt.Sprintf("/api/v1/repos/%s/%s/runs", owner, repo)
	body := map[string]interface{}{
		"numbers": numbers,
		"delay":   delay,
	}

	var response struct {
		Data *CreatedRun `json:"data"`
	}
	if err := c.post(path, body, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// ListRuns lists stored runs, optionally filtered by owner and repo
func (c *Client) ListRuns(owner, repo string) ([]*domain.RunInfo, error) {
	params := url.Values{}
	if owner != "" {
		params.Set("owner", owner)
	}
	if repo != "" {
		params.Set("repo", repo)
	}

	var response struct {
		Data []*domain.RunInfo `json:"data"`
	}
	if err := c.get("/api/v1/runs", params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetRun retrieves a stored run with its full batch result
func (c *Client) GetRun(id string) (*domain.BatchRun, error) {
	var response struct {
		Data *domain.BatchRun `json:"data"`
	}
	if err := c.get("/api/v1/runs/"+id, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetRunSummary retrieves aggregate statistics for a stored run
func (c *Client) GetRunSummary(id string) (*domain.SummaryReport, error) {
	var response struct {
		Data *domain.SummaryReport `json:"data"`
	}
	if err := c.get("/api/v1/runs/"+id+"/summary", nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// HealthCheck checks if the API is healthy
func (c *Client) HealthCheck() error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", nil, &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("unhealthy status: %s", response.Status)
	}
	return nil
}

func (c *Client) get(path string, params url.Values, result interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	resp, err := c.httpClient.Get(u.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s - %s", resp.Status, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
