// Package summary is the boundary to the external summarization agent. Every
// failure mode past this boundary is the single domain error ErrUnavailable;
// callers proceed with empty notes rather than losing the recorded interval.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable is returned for any gateway failure: transport error,
// non-2xx status, or a malformed or empty response body.
var ErrUnavailable = errors.New("summary unavailable")

// Client calls the agent's workflow-end endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a gateway client. The timeout bounds the whole call; the
// agent's LLM generation can be slow, so callers typically pass ~120s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// EndWorkflowRequest is the body for POST /api/v1/workflow/end.
type EndWorkflowRequest struct {
	UserID          string `json:"user_id"`
	ProjectPath     string `json:"project_path"`
	TaskDescription string `json:"task_description,omitempty"`
}

// EndWorkflowResponse is the agent's reply.
type EndWorkflowResponse struct {
	SummaryTitle    string `json:"summary_title"`
	SummaryMarkdown string `json:"summary_markdown"`
}

// EndWorkflow asks the agent to summarize the work done in the project since
// the session started. The task description is trimmed and omitted entirely
// when empty.
func (c *Client) EndWorkflow(ctx context.Context, req EndWorkflowRequest) (*EndWorkflowResponse, error) {
	req.TaskDescription = strings.TrimSpace(req.TaskDescription)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow end request: %w", ErrUnavailable)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/workflow/end", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build workflow end request: %w", ErrUnavailable)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("agent unreachable: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("agent returned %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(respBody)), ErrUnavailable)
	}

	var out EndWorkflowResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode agent response: %w", ErrUnavailable)
	}

	if strings.TrimSpace(out.SummaryMarkdown) == "" {
		return nil, fmt.Errorf("agent returned empty summary: %w", ErrUnavailable)
	}

	out.SummaryMarkdown = strings.TrimSpace(out.SummaryMarkdown)
	return &out, nil
}
