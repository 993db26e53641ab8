// Package prompt builds the instruction text sent to the model.
//
// Sources are layered, first non-empty wins:
//  1. markdown rule files in the workspace (see RuleDirs)
//  2. the configured custom prompt
//  3. the built-in template for the configured commit style
package prompt

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hoanghonghuy/commitagent/internal/config"
)

// RuleDirs are the workspace-relative directories scanned for *.md rule files.
// The second spelling is kept for repositories created with an older release.
var RuleDirs = []string{".ai-generate-commit-rules", ".ai-genrate-commit-rules"}

type Layer int

const (
	LayerBuiltin Layer = iota
	LayerCustomPrompt
	LayerWorkspaceRules
)

func (l Layer) String() string {
	switch l {
	case LayerWorkspaceRules:
		return "workspace-rules"
	case LayerCustomPrompt:
		return "custom-prompt"
	default:
		return "builtin"
	}
}

// Resolver resolves instructions for a fixed set of workspace roots.
type Resolver struct {
	roots []string
	log   zerolog.Logger
}

func NewResolver(roots []string, log zerolog.Logger) *Resolver {
	return &Resolver{roots: roots, log: log}
}

// Instructions returns the instruction template for s and the layer it came from.
func (r *Resolver) Instructions(s config.Snapshot) (string, Layer) {
	if rules := WorkspaceRules(r.roots, r.log); rules != "" {
		return rules, LayerWorkspaceRules
	}
	if custom := strings.TrimSpace(s.CustomPrompt); custom != "" {
		return custom, LayerCustomPrompt
	}
	return Builtin(s.CommitType, s.Language, s.MaxLengthOrDefault()), LayerBuiltin
}

// Build resolves the instructions for s and substitutes diff into them.
func (r *Resolver) Build(s config.Snapshot, diff string) (string, Layer) {
	tmpl, layer := r.Instructions(s)
	r.log.Debug().Str("layer", layer.String()).Str("language", s.Language).Msg("resolved prompt")
	return Substitute(tmpl, diff), layer
}

// ResolveInstructions is the functional form of Resolver.Instructions with an
// explicit commit style.
func ResolveInstructions(roots []string, s config.Snapshot, style config.CommitType) string {
	s.CommitType = style
	tmpl, _ := NewResolver(roots, zerolog.Nop()).Instructions(s)
	return tmpl
}

// Substitute replaces the first DiffPlaceholder in tmpl with diff. Templates
// without the placeholder are returned unchanged.
func Substitute(tmpl, diff string) string {
	return strings.Replace(tmpl, DiffPlaceholder, diff, 1)
}

// WorkspaceRules concatenates the trimmed, non-empty *.md files found under
// RuleDirs in every root, newline separated. Unreadable entries are skipped.
func WorkspaceRules(roots []string, log zerolog.Logger) string {
	var parts []string
	for _, root := range roots {
		for _, dirName := range RuleDirs {
			dir := filepath.Join(root, dirName)
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("error reading rules")
				continue
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
					continue
				}
				b, err := os.ReadFile(filepath.Join(dir, e.Name()))
				if err != nil {
					log.Warn().Err(err).Str("file", e.Name()).Msg("error reading rule file")
					continue
				}
				if text := strings.TrimSpace(string(b)); text != "" {
					parts = append(parts, text)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}
