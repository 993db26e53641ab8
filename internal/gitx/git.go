package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v failed: %v\n%s", args, err, stderr.String())
	}
	return stdout.String(), nil
}

// Changes holds the staged and unstaged diffs of a repository.
type Changes struct {
	Staged  string
	Working string
}

// Combined returns working and staged diffs in one text, or "" when there are
// no changes at all.
func (c Changes) Combined() string {
	var parts []string
	if strings.TrimSpace(c.Working) != "" {
		parts = append(parts, strings.TrimRight(c.Working, "\n"))
	}
	if strings.TrimSpace(c.Staged) != "" {
		parts = append(parts, strings.TrimRight(c.Staged, "\n"))
	}
	return strings.Join(parts, "\n")
}

// CollectChanges reads the staged and working tree diffs. Paths for which
// skip returns true are left out.
func CollectChanges(ctx context.Context, repoRoot string, skip func(path string) bool) (Changes, error) {
	staged, err := Diff(ctx, repoRoot, true, skip)
	if err != nil {
		return Changes{}, err
	}
	working, err := Diff(ctx, repoRoot, false, skip)
	if err != nil {
		return Changes{}, err
	}
	return Changes{Staged: staged, Working: working}, nil
}

func Diff(ctx context.Context, repoRoot string, staged bool, skip func(path string) bool) (string, error) {
	base := []string{"diff"}
	if staged {
		base = append(base, "--staged")
	}

	filesOut, err := Git(ctx, repoRoot, append(base, "--name-only")...)
	if err != nil {
		return "", err
	}

	var files []string
	for _, f := range splitNonEmptyLines(filesOut) {
		if skip != nil && skip(f) {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return "", nil
	}

	args := append(append(base, "--"), files...)
	return Git(ctx, repoRoot, args...)
}

func Commit(ctx context.Context, repoRoot, message string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := Git(ctx, repoRoot, "commit", "-m", msg)
	return err
}

func splitNonEmptyLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
