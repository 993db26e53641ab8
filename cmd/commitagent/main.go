package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/commitagent/internal/app"
	"github.com/hoanghonghuy/commitagent/internal/config"
	"github.com/hoanghonghuy/commitagent/internal/logger"
)

var (
	cfg   app.Config
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "commitagent",
	Short: "Generate git commit messages with the AI provider of your choice.",
	Long: `commitagent streams a commit message for your staged and working changes
from OpenAI, Azure OpenAI, Gemini, Anthropic or any OpenAI-compatible endpoint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}
		cfg.Env = env
		cfg.Flags.MaxLengthSet = cmd.Flags().Changed("max-length")
		cfg.Log = logger.New(env.LogLevel, debug)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), "generate")
	},
}

func run(ctx context.Context, command string) error {
	cfg.Command = command
	return app.Run(ctx, cfg)
}

func command(use, short string, setup func(*cobra.Command)) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Name())
		},
	}
	if setup != nil {
		setup(c)
	}
	return c
}

func generationFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&cfg.ProviderID, "provider", "", "provider id to use instead of the default provider")
	f.StringVar(&cfg.ModelID, "model", "", "model id to use (not validated against the provider's list)")
	f.BoolVar(&cfg.Print, "print", false, "print the message and exit without the confirm prompt")
	f.StringVar(&cfg.HookFile, "hook", "", "write the accepted message to this file (prepare-commit-msg mode)")
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigPath, "config", "", "config file (default ~/.commitagent.json)")
	pf.StringVar(&cfg.RepoArg, "repo", "", "path inside the git repository (default: current directory)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&cfg.Flags.DefaultProvider, "default-provider", "", "override the default provider name")
	pf.StringVar(&cfg.Flags.DefaultModel, "default-model", "", "override the default model")
	pf.StringVar(&cfg.Flags.Language, "language", "", "message language")
	pf.StringVar(&cfg.Flags.CommitType, "commit-type", "", "commit style: conventional or gitmoji")
	pf.StringVar(&cfg.Flags.CustomPrompt, "custom-prompt", "", "custom prompt; ${diff} is replaced with the diff")
	pf.IntVar(&cfg.Flags.MaxLength, "max-length", config.DefaultMaxLength, "maximum commit title length")

	generationFlags(rootCmd)

	rootCmd.AddCommand(
		command("generate", "Generate a commit message for the current changes", generationFlags),
		command("select", "Pick a provider and model, then generate", func(c *cobra.Command) {
			f := c.Flags()
			f.BoolVar(&cfg.Print, "print", false, "print the message and exit without the confirm prompt")
		}),
		command("models", "List the models of configured providers", func(c *cobra.Command) {
			f := c.Flags()
			f.StringVar(&cfg.ProviderID, "provider", "", "only list this provider id")
			f.BoolVar(&cfg.SaveModels, "save", false, "write the fetched lists back into the config file")
			f.StringVar(&cfg.BaseURL, "base-url", "", "list a provider that is not configured yet")
			f.StringVar(&cfg.APIKey, "api-key", "", "api key for --base-url")
			f.StringVar(&cfg.ProviderType, "type", "openai-compatible", "provider type for --base-url")
		}),
		command("dump-prompt", "Print the resolved prompt with the diff substituted", nil),
		command("config", "Add or edit a provider interactively", nil),
		command("install-hook", "Install the prepare-commit-msg hook", nil),
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
