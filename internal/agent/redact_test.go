package agent

import (
	"strings"
	"testing"
)

func TestRedactCredentialLines(t *testing.T) {
	report := strings.Join([]string{
		" M internal/config/config.go",
		"+API_KEY=sk-abc123",
		"+password: hunter2",
		" M internal/api/router.go",
	}, "\n")

	got := Redact(report)
	if strings.Contains(got, "sk-abc123") || strings.Contains(got, "hunter2") {
		t.Errorf("credentials survived redaction:\n%s", got)
	}
	if !strings.Contains(got, "internal/config/config.go") {
		t.Error("non-secret lines should be preserved")
	}
	if !strings.Contains(got, "[redacted]") {
		t.Error("expected redaction markers")
	}
}

func TestRedactCleanReport(t *testing.T) {
	report := " M internal/timer/timer.go\n?? internal/calendar/calendar.go"
	if got := Redact(report); got != report {
		t.Errorf("clean report changed:\n%s", got)
	}
}
