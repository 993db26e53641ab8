package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghonghuy/commitagent/internal/config"
)

func writeRule(t *testing.T, root, dir, name, content string) {
	t.Helper()
	d := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(d, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(d, name), []byte(content), 0644))
}

func TestInstructionsPrecedence(t *testing.T) {
	root := t.TempDir()
	snap := config.Snapshot{
		CommitType:   config.CommitTypeGitmoji,
		CustomPrompt: "custom ${diff}",
	}

	r := NewResolver([]string{root}, zerolog.Nop())

	got, layer := r.Instructions(snap)
	assert.Equal(t, LayerCustomPrompt, layer)
	assert.Equal(t, "custom ${diff}", got)

	writeRule(t, root, RuleDirs[0], "rules.md", "  Use imperative mood.\n")
	got, layer = r.Instructions(snap)
	assert.Equal(t, LayerWorkspaceRules, layer)
	assert.Equal(t, "Use imperative mood.", got)

	snap.CustomPrompt = "   "
	got, layer = NewResolver(nil, zerolog.Nop()).Instructions(snap)
	assert.Equal(t, LayerBuiltin, layer)
	assert.Equal(t, Builtin(config.CommitTypeGitmoji, "", 0), got)
}

func TestCustomPromptTrimmed(t *testing.T) {
	got, layer := NewResolver(nil, zerolog.Nop()).Instructions(config.Snapshot{CustomPrompt: "\n  Write it short: ${diff}\n"})
	assert.Equal(t, LayerCustomPrompt, layer)
	assert.Equal(t, "Write it short: ${diff}", got)
}

func TestWorkspaceRules(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	writeRule(t, rootA, RuleDirs[0], "b.md", "second")
	writeRule(t, rootA, RuleDirs[0], "a.md", "first")
	writeRule(t, rootA, RuleDirs[0], "notes.txt", "ignored")
	writeRule(t, rootA, RuleDirs[0], "empty.md", "  \n ")
	writeRule(t, rootA, RuleDirs[1], "legacy.md", "legacy")
	writeRule(t, rootB, RuleDirs[0], "z.md", "other root")

	got := WorkspaceRules([]string{rootA, rootB}, zerolog.Nop())
	assert.Equal(t, "first\nsecond\nlegacy\nother root", got)
}

func TestWorkspaceRulesNone(t *testing.T) {
	root := t.TempDir()
	// a file where the directory is expected is ignored
	require.NoError(t, os.WriteFile(filepath.Join(root, RuleDirs[0]), []byte("x"), 0644))

	assert.Empty(t, WorkspaceRules([]string{root, filepath.Join(root, "missing")}, zerolog.Nop()))
	assert.Empty(t, WorkspaceRules(nil, zerolog.Nop()))
}

func TestBuild(t *testing.T) {
	r := NewResolver(nil, zerolog.Nop())

	got, layer := r.Build(config.Snapshot{CustomPrompt: "Summarize:\n${diff}\nend ${diff}"}, "+ add feature")
	assert.Equal(t, LayerCustomPrompt, layer)
	assert.Equal(t, "Summarize:\n+ add feature\nend ${diff}", got)

	got, _ = r.Build(config.Snapshot{CustomPrompt: "No placeholder here"}, "+ add feature")
	assert.Equal(t, "No placeholder here", got)

	got, layer = r.Build(config.Snapshot{}, "+ add feature")
	assert.Equal(t, LayerBuiltin, layer)
	assert.True(t, strings.HasSuffix(got, "\n\nDiff:\n+ add feature"))
	assert.NotContains(t, got, DiffPlaceholder)
}

func TestSubstitute(t *testing.T) {
	assert.Equal(t, "a DIFF b", Substitute("a ${diff} b", "DIFF"))
	assert.Equal(t, "no diff", Substitute("no diff", "DIFF"))
	assert.Equal(t, "$ {diff}", Substitute("$ {diff}", "DIFF"))
}

func TestBuiltin(t *testing.T) {
	def := Builtin(config.CommitTypeNone, "en", 50)
	assert.Contains(t, def, "Conventional Commits")
	assert.Contains(t, def, "at most 50 characters")
	assert.Contains(t, def, "Message language: en")
	assert.True(t, strings.HasSuffix(def, "Diff:\n"+DiffPlaceholder))

	conv := Builtin(config.CommitTypeConventional, "fr", 72)
	assert.Contains(t, conv, "Message language: fr")
	assert.Contains(t, conv, "maximum of 72 characters")
	assert.Contains(t, conv, `"feat": "A new feature"`)
	assert.Contains(t, conv, "<type>[optional (<scope>)]: <commit message>")
	assert.Less(t, strings.Index(conv, `"docs"`), strings.Index(conv, `"fix"`))

	moji := Builtin(config.CommitTypeGitmoji, "en", 72)
	assert.Contains(t, moji, `"🐛": "Fix a bug"`)
	assert.Contains(t, moji, ":emoji: <commit message>")
	assert.NotContains(t, moji, `"feat"`)
}

func TestBuiltinDefaults(t *testing.T) {
	assert.Equal(t, Builtin("", config.DefaultLanguage, config.DefaultMaxLength), Builtin("", "", 0))
}

func TestBuiltinChinese(t *testing.T) {
	for _, lang := range []string{"zh", "zh-CN", "ZH_tw"} {
		got := Builtin("", lang, 72)
		assert.Contains(t, got, "提交信息", lang)
		assert.Contains(t, got, "最终输出语言必须是："+lang, lang)
	}
	assert.NotContains(t, Builtin("", "zhuang", 72), "提交信息")
}

func TestResolveInstructions(t *testing.T) {
	snap := config.Snapshot{Language: "de", CommitType: config.CommitTypeGitmoji}
	assert.Equal(t, Builtin(config.CommitTypeConventional, "de", 72), ResolveInstructions(nil, snap, config.CommitTypeConventional))
}

func TestLayerString(t *testing.T) {
	assert.Equal(t, "workspace-rules", LayerWorkspaceRules.String())
	assert.Equal(t, "custom-prompt", LayerCustomPrompt.String())
	assert.Equal(t, "builtin", LayerBuiltin.String())
}
