package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hoanghonghuy/commitagent/internal/gitx"
)

// InstallHook installs the prepare-commit-msg hook into the current repository.
func InstallHook(ctx context.Context) error {
	root, err := gitx.ResolveRepoRoot(ctx, "")
	if err != nil {
		return err
	}

	hooksDir := filepath.Join(root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
	if _, err := os.Stat(hookPath); err == nil {
		return fmt.Errorf("hook %s already exists. Please remove it first", hookPath)
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "commitagent"
	} else {
		exe, _ = filepath.Abs(exe)
	}

	if err := os.WriteFile(hookPath, []byte(hookScript(exe)), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	fmt.Printf("✅ Hook installed to %s\n", hookPath)
	return nil
}

func hookScript(exe string) string {
	return fmt.Sprintf(`#!/bin/sh
# commitagent hook
# $1 is the message file, $2 the message source, $3 the SHA.

COMMIT_MSG_FILE=$1
COMMIT_SOURCE=$2

# A message was given with -m; nothing to generate.
if [ "$COMMIT_SOURCE" = "message" ]; then
  exit 0
fi

# The confirm loop needs a terminal.
if [ -t 0 ]; then
    exec < /dev/tty
fi

echo "🤖 commitagent is analyzing changes..."
"%s" generate --hook "$COMMIT_MSG_FILE" < /dev/tty > /dev/tty
`, exe)
}
