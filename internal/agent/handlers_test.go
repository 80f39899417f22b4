package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeSummarizer struct {
	summary string
	err     error
	task    string
	report  string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, taskDescription, gitReport string) (string, error) {
	f.task = taskDescription
	f.report = gitReport
	return f.summary, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stubReport(report string, err error) ReportFunc {
	return func(ctx context.Context, workspacePath string) (string, error) {
		return report, err
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWorkflowEnd(t *testing.T) {
	fs := &fakeSummarizer{summary: "## Summary\nRefactored the store."}
	h := NewHandler(fs, stubReport(" M internal/store/sqlite.go", nil), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/workflow/end", WorkflowEndRequest{
		UserID:          "u1",
		ProjectPath:     "/work/project",
		TaskDescription: "  refactor store  ",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp WorkflowEndResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SummaryMarkdown != "## Summary\nRefactored the store." {
		t.Errorf("summary = %q", resp.SummaryMarkdown)
	}
	if resp.SummaryTitle != "refactor store" {
		t.Errorf("title = %q, want trimmed task", resp.SummaryTitle)
	}
	if fs.task != "refactor store" {
		t.Errorf("summarizer task = %q, want trimmed", fs.task)
	}
	if fs.report != " M internal/store/sqlite.go" {
		t.Errorf("summarizer report = %q", fs.report)
	}
}

func TestWorkflowEndDefaultTitle(t *testing.T) {
	fs := &fakeSummarizer{summary: "a perfectly fine summary"}
	h := NewHandler(fs, stubReport("clean", nil), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/workflow/end", WorkflowEndRequest{
		UserID:      "u1",
		ProjectPath: "/work/project",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp WorkflowEndResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SummaryTitle != "Automated Context Summary" {
		t.Errorf("title = %q, want Automated Context Summary", resp.SummaryTitle)
	}
}

func TestWorkflowEndValidation(t *testing.T) {
	h := NewHandler(&fakeSummarizer{summary: "s"}, stubReport("", nil), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/workflow/end", WorkflowEndRequest{UserID: "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing project_path: status = %d, want 400", rec.Code)
	}
}

func TestWorkflowEndSummarizerFailure(t *testing.T) {
	fs := &fakeSummarizer{err: fmt.Errorf("model exploded")}
	h := NewHandler(fs, stubReport("report", nil), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/workflow/end", WorkflowEndRequest{
		UserID:      "u1",
		ProjectPath: "/work/project",
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestWorkflowEndReportFailure(t *testing.T) {
	h := NewHandler(&fakeSummarizer{summary: "s"}, stubReport("", fmt.Errorf("not a git repo")), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/workflow/end", WorkflowEndRequest{
		UserID:      "u1",
		ProjectPath: "/tmp/nowhere",
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHeartbeat(t *testing.T) {
	h := NewHandler(&fakeSummarizer{}, stubReport("", nil), discard())
	router := NewRouter(h, discard())

	rec := postJSON(t, router, "/api/v1/heartbeat", HeartbeatRequest{
		UserID:  "u1",
		AppName: "editor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "received" {
		t.Errorf("status = %q, want received", resp["status"])
	}
}
