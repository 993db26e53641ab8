package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

const EnvPrefix = "COMMITAGENT_"

// Env holds the COMMITAGENT_* environment overrides.
type Env struct {
	ConfigPath      string `env:"CONFIG"`
	DefaultProvider string `env:"DEFAULT_PROVIDER"`
	DefaultModel    string `env:"DEFAULT_MODEL"`
	Language        string `env:"LANGUAGE"`
	CommitType      string `env:"COMMIT_TYPE"`
	CustomPrompt    string `env:"CUSTOM_PROMPT"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadEnv parses the environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return Env{}, fmt.Errorf("parse env config: %w", err)
	}
	return e, nil
}

// Overrides are values given on the command line. They win over env and file.
type Overrides struct {
	DefaultProvider string
	DefaultModel    string
	Language        string
	CommitType      string
	CustomPrompt    string
	MaxLength       int
	MaxLengthSet    bool
}

// Source produces a fresh Snapshot on every Load. Nothing is cached between
// calls; the file is the source of truth.
type Source struct {
	Path  string
	Env   Env
	Flags Overrides
}

func (s Source) FilePath() string {
	return ResolveString(s.Path, s.Env.ConfigPath, "", DefaultPath())
}

func (s Source) Load() (Snapshot, error) {
	snap, err := Load(s.FilePath())
	if err != nil {
		return Snapshot{}, err
	}

	snap.DefaultProviderName = ResolveString(s.Flags.DefaultProvider, s.Env.DefaultProvider, snap.DefaultProviderName, "")
	snap.DefaultModel = ResolveString(s.Flags.DefaultModel, s.Env.DefaultModel, snap.DefaultModel, "")
	snap.Language = ResolveString(s.Flags.Language, s.Env.Language, snap.Language, DefaultLanguage)
	snap.CommitType = CommitType(strings.ToLower(ResolveString(s.Flags.CommitType, s.Env.CommitType, string(snap.CommitType), "")))
	snap.CustomPrompt = ResolveString(s.Flags.CustomPrompt, s.Env.CustomPrompt, snap.CustomPrompt, "")

	maxLen := ResolveInt(s.Flags.MaxLength, s.Flags.MaxLengthSet, snap.MaxLength, DefaultMaxLength)
	snap.MaxLength = &maxLen

	if !snap.CommitType.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidCommitType, snap.CommitType)
	}
	return snap, nil
}
