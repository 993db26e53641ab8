package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"

	"github.com/hoanghonghuy/commitagent/internal/config"
	"github.com/hoanghonghuy/commitagent/internal/generation"
	"github.com/hoanghonghuy/commitagent/internal/gitx"
	"github.com/hoanghonghuy/commitagent/internal/prompt"
	"github.com/hoanghonghuy/commitagent/internal/registry"
)

type Config struct {
	Command string

	RepoArg string

	// Config management
	ConfigPath string
	Env        config.Env
	Flags      config.Overrides

	// Per-request overrides for generate
	ProviderID string
	ModelID    string

	// Print streams the message and exits without the confirm loop.
	Print    bool
	HookFile string

	// models command
	SaveModels   bool
	BaseURL      string
	APIKey       string
	ProviderType string

	Log zerolog.Logger
	Out io.Writer
}

func (c Config) source() config.Source {
	return config.Source{Path: c.ConfigPath, Env: c.Env, Flags: c.Flags}
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func Run(ctx context.Context, cfg Config) error {
	switch cfg.Command {
	case "config":
		return runConfig(cfg)
	case "install-hook":
		return InstallHook(ctx)
	case "models":
		return runModels(ctx, cfg)
	}

	repoRoot, err := gitx.ResolveRepoRoot(ctx, cfg.RepoArg)
	if err != nil {
		return err
	}

	src := cfg.source()
	snap, err := src.Load()
	if err != nil {
		return err
	}

	ignores := append(append([]string{}, defaultIgnores...), snap.IgnoredFiles...)
	changes, err := gitx.CollectChanges(ctx, repoRoot, func(path string) bool {
		return shouldIgnore(path, ignores)
	})
	if err != nil {
		return err
	}

	cfg.Log.Debug().
		Int("staged_len", len(changes.Staged)).
		Int("working_len", len(changes.Working)).
		Msg("collected changes")

	prompts := prompt.NewResolver([]string{repoRoot}, cfg.Log)

	switch cfg.Command {
	case "dump-prompt":
		text, layer := prompts.Build(snap, changes.Combined())
		fmt.Fprintf(os.Stderr, "# prompt source: %s\n", layer)
		_, err := fmt.Fprintln(cfg.out(), text)
		return err
	case "select", "generate", "":
	default:
		return fmt.Errorf("unknown command %q (use generate | select | models | dump-prompt | config | install-hook)", cfg.Command)
	}

	diff, reason := generationDiff(changes, cfg.commits())
	if diff == "" {
		fmt.Fprintln(cfg.out(), reason)
		return nil
	}

	if cfg.Command == "select" {
		providerID, modelID, ok, err := selectModelInteractive(config.EnabledProviders(snap))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cfg.ProviderID, cfg.ModelID = providerID, modelID
	}

	reg := registry.Default(nil, nil, cfg.Log)
	orch := generation.NewOrchestrator(src, reg, prompts, nil, cfg.Log)
	return runInteractiveLoop(ctx, cfg, repoRoot, orch, generation.Request{
		Diff:       diff,
		ProviderID: cfg.ProviderID,
		ModelID:    cfg.ModelID,
	})
}

// commits reports whether the accepted message ends up in a git commit,
// either through the confirm loop or the prepare-commit-msg hook.
func (c Config) commits() bool {
	return c.HookFile != "" || !c.Print
}

// generationDiff picks the diff to describe. A message that will be
// committed only sees staged changes, since that is what git commits.
// When there is nothing to describe, reason says why.
func generationDiff(c gitx.Changes, commits bool) (diff, reason string) {
	if !commits {
		if diff = c.Combined(); diff == "" {
			return "", "No changes detected."
		}
		return diff, ""
	}

	if strings.TrimSpace(c.Staged) == "" {
		if strings.TrimSpace(c.Working) != "" {
			return "", "No staged changes. Stage files with `git add` first."
		}
		return "", "No changes detected."
	}
	return strings.TrimRight(c.Staged, "\n"), ""
}

var defaultIgnores = []string{
	"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
	"*.map", "*.svg", "*.min.js", "*.min.css",
}

func shouldIgnore(pattern string, ignores []string) bool {
	base := filepath.Base(pattern)
	for _, ign := range ignores {
		if ign == base || ign == pattern {
			return true
		}
		if matched, _ := filepath.Match(ign, base); matched {
			return true
		}
	}
	return false
}

// streamOnce runs one generation, echoing chunks to out while they arrive.
// The first interrupt stops the generation; a second one cancels ctx.
func streamOnce(ctx context.Context, orch *generation.Orchestrator, req generation.Request, out io.Writer) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		for {
			select {
			case <-sigs:
				if !orch.Stop() {
					cancel()
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Generating commit message..."
	s.Start()
	defer s.Stop()

	streamed := false
	text, err := orch.Generate(ctx, req, func(chunk string) {
		if !streamed {
			s.Stop()
			streamed = true
		}
		fmt.Fprint(out, chunk)
	})
	if streamed {
		fmt.Fprintln(out)
	}
	return text, err
}

func runInteractiveLoop(ctx context.Context, cfg Config, repoRoot string, orch *generation.Orchestrator, req generation.Request) error {
	for {
		raw, err := streamOnce(ctx, orch, req, cfg.out())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cfg.out(), "Cancelled.")
				return nil
			}
			return err
		}

		commitMsg := prompt.CleanMessage(raw)
		if commitMsg == "" {
			fmt.Fprintln(cfg.out(), "Cancelled.")
			if cfg.HookFile != "" {
				return fmt.Errorf("commit cancelled by user")
			}
			return nil
		}

		if cfg.Print {
			return nil
		}

		// Inner Confirmation Loop
	confirm:
		for {
			action, err := confirmCommitInteractive(commitMsg)
			if err != nil {
				return err
			}

			switch action {
			case ActionCommit:
				if cfg.HookFile != "" {
					if err := os.WriteFile(cfg.HookFile, []byte(commitMsg), 0644); err != nil {
						return fmt.Errorf("write hook file: %w", err)
					}
					fmt.Fprintln(cfg.out(), "Message generated for git hook.")
					return nil
				}
				if err := gitx.Commit(ctx, repoRoot, commitMsg); err != nil {
					return err
				}
				fmt.Fprintln(cfg.out(), "Commit successful!")
				return nil

			case ActionEdit:
				newMsg, err := editCommitMessageInteractive(commitMsg)
				if err != nil {
					return err
				}
				commitMsg = strings.TrimSpace(newMsg)
				continue

			case ActionRegenerate:
				fmt.Fprintln(cfg.out(), "Regenerating...")
				break confirm

			case ActionCancel:
				fmt.Fprintln(cfg.out(), "Cancelled.")
				if cfg.HookFile != "" {
					return fmt.Errorf("commit cancelled by user")
				}
				return nil
			}
		}
	}
}
