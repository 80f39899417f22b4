package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Summarizer turns a git status report into a context re-entry summary using
// a local Ollama-compatible model.
type Summarizer struct {
	ollamaURL string
	model     string
	logger    *slog.Logger
	client    *http.Client
}

// NewSummarizer creates a new summarizer.
func NewSummarizer(ollamaURL, model string, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		ollamaURL: strings.TrimRight(ollamaURL, "/"),
		model:     model,
		logger:    logger,
		client: &http.Client{
			Timeout: 120 * time.Second, // LLM generation can be slow
		},
	}
}

const summaryPrompt = `You are an expert "Context Re-Entry" agent. You will be given a "Git Status Report" showing a developer's file changes.

Your job is to analyze this file list and infer what task the developer was performing.

The summary MUST include:
- A high-level title (e.g., "Refactoring the Agent Logic").
- A "Summary" section describing the inferred task.
- A "Key Files Changed" section (bullet points from the list).
- A "Suggested Next Steps" section (e.g., "commit changes", "push branch").

In the report, files starting with ' M' are Modified and files starting with '??' are Untracked (new).

%s`

// minSummaryLen guards against degenerate one-word model output.
const minSummaryLen = 10

// maxAttempts bounds the retry loop on empty or too-short output.
const maxAttempts = 3

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Summarize generates a markdown summary from the task description and git
// report. Retries a few times when the model returns nothing usable.
func (s *Summarizer) Summarize(ctx context.Context, taskDescription, gitReport string) (string, error) {
	var userContent string
	if taskDescription != "" {
		userContent = fmt.Sprintf("Task: %s\n\nGit Status Report:\n%s", taskDescription, gitReport)
	} else {
		userContent = fmt.Sprintf("Git Status Report:\n%s", gitReport)
	}
	prompt := fmt.Sprintf(summaryPrompt, userContent)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		summary, err := s.generate(ctx, prompt)
		if err != nil {
			lastErr = err
			s.logger.Warn("summary generation failed", "attempt", attempt, "error", err)
			continue
		}
		if len(summary) > minSummaryLen {
			return summary, nil
		}
		lastErr = fmt.Errorf("model returned empty or too-short summary")
		s.logger.Warn("summary too short, retrying", "attempt", attempt)
	}
	return "", fmt.Errorf("generate summary after %d attempts: %w", maxAttempts, lastErr)
}

func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ollamaURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return strings.TrimSpace(out.Response), nil
}
