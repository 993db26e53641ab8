package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

const (
	DefaultFileName  = ".commitagent.json"
	DefaultLanguage  = "en"
	DefaultMaxLength = 72
)

var (
	ErrDuplicateProviderID = errors.New("duplicate provider id")
	ErrInvalidCommitType   = errors.New("invalid commit type")
)

// CommitType selects the built-in prompt style. Empty means the default style.
type CommitType string

const (
	CommitTypeNone         CommitType = ""
	CommitTypeConventional CommitType = "conventional"
	CommitTypeGitmoji      CommitType = "gitmoji"
)

func (t CommitType) Valid() bool {
	switch t {
	case CommitTypeNone, CommitTypeConventional, CommitTypeGitmoji:
		return true
	}
	return false
}

// Snapshot is one read of the persisted configuration. It is treated as an
// immutable value for the duration of a call.
type Snapshot struct {
	Providers           []ai.Provider `json:"providers" yaml:"providers"`
	DefaultProviderName string        `json:"defaultProviderName,omitempty" yaml:"defaultProviderName,omitempty"`
	DefaultModel        string        `json:"defaultModel,omitempty" yaml:"defaultModel,omitempty"`
	Language            string        `json:"language,omitempty" yaml:"language,omitempty"`
	CommitType          CommitType    `json:"commitType,omitempty" yaml:"commitType,omitempty"`
	CustomPrompt        string        `json:"customPrompt,omitempty" yaml:"customPrompt,omitempty"`

	MaxLength    *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	IgnoredFiles []string `json:"ignoredFiles,omitempty" yaml:"ignoredFiles,omitempty"`
}

// MaxLengthOrDefault returns the configured title length limit.
func (s Snapshot) MaxLengthOrDefault() int {
	return ResolveInt(0, false, s.MaxLength, DefaultMaxLength)
}

// DefaultPath returns ~/.commitagent.json, or DefaultFileName when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the snapshot at path. A missing file yields an empty snapshot.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func Load(path string) (Snapshot, error) {
	if path == "" {
		path = DefaultPath()
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}

	var raw rawSnapshot
	if isYAML(path) {
		err = yaml.Unmarshal(b, &raw)
	} else {
		err = json.Unmarshal(b, &raw)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}

	snap := raw.snapshot()
	if err := Validate(snap); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Validate rejects duplicate provider ids and unknown commit types.
func Validate(s Snapshot) error {
	seen := make(map[string]struct{}, len(s.Providers))
	for _, p := range s.Providers {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateProviderID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if !s.CommitType.Valid() {
		return fmt.Errorf("%w: %q (want conventional, gitmoji or empty)", ErrInvalidCommitType, s.CommitType)
	}
	return nil
}

func Save(s Snapshot, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	var (
		b   []byte
		err error
	)
	if isYAML(path) {
		b, err = yaml.Marshal(s)
	} else {
		b, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	// the file holds api keys
	return os.WriteFile(path, b, 0600)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ResolveString picks the first non-empty of flag, env and file values.
func ResolveString(flagVal, envVal, fileVal, defVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return defVal
}

func ResolveInt(flagVal int, flagSet bool, fileVal *int, defVal int) int {
	if flagSet {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return defVal
}
