package agent

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const gitTimeout = 10 * time.Second

// CollectGitReport builds a status report for the workspace: porcelain status
// plus a diff stat, the raw material the summarizer infers the task from.
// An empty working tree is reported as clean, not as an error.
func CollectGitReport(ctx context.Context, workspacePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	status, err := runGit(ctx, workspacePath, "status", "--porcelain=v1")
	if err != nil {
		return "", fmt.Errorf("git status in %s: %w", workspacePath, err)
	}

	// Diff stat is best-effort; status alone is still a usable report.
	diffStat, _ := runGit(ctx, workspacePath, "diff", "--stat")

	var b strings.Builder
	if status == "" {
		b.WriteString("Working tree clean, no uncommitted changes.\n")
	} else {
		b.WriteString("Changed files:\n")
		b.WriteString(status)
		b.WriteString("\n")
	}
	if diffStat != "" {
		b.WriteString("\nDiff stat:\n")
		b.WriteString(diffStat)
		b.WriteString("\n")
	}
	return Redact(b.String()), nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmdArgs := append([]string{"--no-optional-locks"}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
