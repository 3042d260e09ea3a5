// Package client provides an HTTP client for the job recommender API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Job represents a job returned by the API.
type Job struct {
	JobID     int       `json:"job_id"`
	WindowID  int       `json:"window_id"`
	Title     string    `json:"title"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       *int      `json:"zip,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Score     float64   `json:"score"`

	Probability *float64 `json:"probability,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

// JobsMetadata describes how a job list was produced.
type JobsMetadata struct {
	Fallback bool   `json:"fallback"`
	Source   string `json:"source,omitempty"`
}

// JobsResponse represents a job list response.
type JobsResponse struct {
	Data     []Job        `json:"data"`
	Metadata JobsMetadata `json:"metadata"`
}

// Client is an HTTP client for the job recommender API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (c *Client) getJobs(ctx context.Context, path string, params url.Values) (JobsResponse, error) {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return JobsResponse{}, err
	}

	var result JobsResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return JobsResponse{}, err
	}
	return result, nil
}

// GetRecommendations fetches a user's recommended jobs. A zero maxDistance uses the
// server default.
func (c *Client) GetRecommendations(ctx context.Context, userID, limit int, maxDistance float64) (JobsResponse, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if maxDistance > 0 {
		params.Set("max_distance", strconv.FormatFloat(maxDistance, 'f', -1, 64))
	}

	return c.getJobs(ctx, "/v1/users/"+strconv.Itoa(userID)+"/recommendations", params)
}

// GetSimilarJobs finds jobs similar to the given job within its window.
func (c *Client) GetSimilarJobs(ctx context.Context, jobID, limit int) ([]Job, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	result, err := c.getJobs(ctx, "/v1/jobs/"+strconv.Itoa(jobID)+"/similar", params)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetJobProbabilities fetches the scoring model's application probabilities for a
// user's candidate jobs. Requires an operator token.
func (c *Client) GetJobProbabilities(ctx context.Context, userID, limit int) ([]Job, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	result, err := c.getJobs(ctx, "/v1/users/"+strconv.Itoa(userID)+"/job-probabilities", params)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}
