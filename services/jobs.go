// ABOUTME: HTTP client for the job execution backend (automation runner)
// ABOUTME: Job submission, status polling, and workflow analysis calls

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// JobClient talks to the automation backend that runs long-lived jobs and
// the workflow analysis endpoints. Responses are returned raw; callers
// probe the duck-typed JSON themselves.
type JobClient struct {
	baseURL string
	client  *http.Client
}

// NewJobClient creates a client for the job backend.
func NewJobClient(baseURL string, timeout time.Duration) *JobClient {
	return &JobClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// StartJob submits an automation run with the given credentials.
func (c *JobClient) StartJob(ctx context.Context, naverID, naverPW string) (int, []byte, error) {
	return c.post(ctx, "/start_job", map[string]string{
		"naver_id": naverID,
		"naver_pw": naverPW,
	})
}

// JobStatus fetches the latest snapshot for a job.
func (c *JobClient) JobStatus(ctx context.Context, jobID string) (int, []byte, error) {
	return c.get(ctx, "/job_status/"+jobID)
}

// AnalyzeOnboarding extracts keyword candidates from interview text.
func (c *JobClient) AnalyzeOnboarding(ctx context.Context, text string) (int, []byte, error) {
	return c.post(ctx, "/api/analyze-onboarding", map[string]string{"text": text})
}

// AnalyzeTrendKeywords scores keyword candidates for search trends.
func (c *JobClient) AnalyzeTrendKeywords(ctx context.Context, keywords []string) (int, []byte, error) {
	return c.post(ctx, "/api/analyze-trend-keywords", map[string][]string{"keywords": keywords})
}

// GenerateTopics asks the backend for content topics given free-form options.
func (c *JobClient) GenerateTopics(ctx context.Context, options map[string]interface{}) (int, []byte, error) {
	return c.post(ctx, "/api/generate-content-topics", map[string]interface{}{"content_options": options})
}

func (c *JobClient) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create job request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *JobClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create job request: %w", err)
	}
	return c.do(req)
}

func (c *JobClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("job backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read job backend response: %w", err)
	}

	return resp.StatusCode, body, nil
}
