package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hoanghonghuy/commitagent/internal/config"
)

// DiffPlaceholder is replaced with the diff text in the chosen template.
const DiffPlaceholder = "${diff}"

type entry struct {
	key, desc string
}

// References:
// https://github.com/conventional-changelog/commitlint/blob/18fbed7ea86ac0ec9d5449b4979b762ec4305a92/%40commitlint/config-conventional/index.js#L40-L100
var conventionalTypes = []entry{
	{"docs", "Documentation only changes"},
	{"style", "Changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc)"},
	{"refactor", "A code change that improves code structure without changing functionality (renaming, restructuring classes/methods, extracting functions, etc)"},
	{"perf", "A code change that improves performance"},
	{"test", "Adding missing tests or correcting existing tests"},
	{"build", "Changes that affect the build system or external dependencies"},
	{"ci", "Changes to our CI configuration files and scripts"},
	{"chore", "Other changes that don't modify src or test files"},
	{"revert", "Reverts a previous commit"},
	{"feat", "A new feature"},
	{"fix", "A bug fix"},
}

// https://gitmoji.dev/
var gitmojis = []entry{
	{"🎨", "Improve structure / format of the code"},
	{"⚡", "Improve performance"},
	{"🔥", "Remove code or files"},
	{"🐛", "Fix a bug"},
	{"🚑", "Critical hotfix"},
	{"✨", "Introduce new features"},
	{"📝", "Add or update documentation"},
	{"🚀", "Deploy stuff"},
	{"💄", "Add or update the UI and style files"},
	{"🎉", "Begin a project"},
	{"✅", "Add, update, or pass tests"},
	{"🔒", "Fix security or privacy issues"},
	{"🔐", "Add or update secrets"},
	{"🔖", "Release / Version tags"},
	{"🚨", "Fix compiler / linter warnings"},
	{"🚧", "Work in progress"},
	{"💚", "Fix CI Build"},
	{"⬇️", "Downgrade dependencies"},
	{"⬆️", "Upgrade dependencies"},
	{"📌", "Pin dependencies to specific versions"},
	{"👷", "Add or update CI build system"},
	{"📈", "Add or update analytics or track code"},
	{"♻️", "Refactor code"},
	{"➕", "Add a dependency"},
	{"➖", "Remove a dependency"},
	{"🔧", "Add or update configuration files"},
	{"🔨", "Add or update development scripts"},
	{"🌐", "Internationalization and localization"},
	{"✏️", "Fix typos"},
	{"💩", "Write bad code that needs to be improved"},
	{"⏪", "Revert changes"},
	{"🔀", "Merge branches"},
	{"📦", "Add or update compiled files or packages"},
	{"👽", "Update code due to external API changes"},
	{"🚚", "Move or rename resources (e.g.: files, paths, routes)"},
	{"📄", "Add or update license"},
	{"💥", "Introduce breaking changes"},
	{"🍱", "Add or update assets"},
	{"♿", "Improve accessibility"},
	{"💡", "Add or update comments in source code"},
	{"🍻", "Write code drunkenly"},
	{"💬", "Add or update text and literals"},
	{"🗃", "Perform database related changes"},
	{"🔊", "Add or update logs"},
	{"🔇", "Remove logs"},
	{"👥", "Add or update contributor(s)"},
	{"🚸", "Improve user experience / usability"},
	{"🏗", "Make architectural changes"},
	{"📱", "Work on responsive design"},
	{"🤡", "Mock things"},
	{"🥚", "Add or update an easter egg"},
	{"🙈", "Add or update a .gitignore file"},
	{"📸", "Add or update snapshots"},
	{"⚗", "Perform experiments"},
	{"🔍", "Improve SEO"},
	{"🏷", "Add or update types"},
	{"🌱", "Add or update seed files"},
	{"🚩", "Add, update, or remove feature flags"},
	{"🥅", "Catch errors"},
	{"💫", "Add or update animations and transitions"},
	{"🗑", "Deprecate code that needs to be cleaned up"},
	{"🛂", "Work on code related to authorization, roles and permissions"},
	{"🩹", "Simple fix for a non-critical issue"},
	{"🧐", "Data exploration/inspection"},
	{"⚰", "Remove dead code"},
	{"🧪", "Add a failing test"},
	{"👔", "Add or update business logic"},
	{"🩺", "Add or update healthcheck"},
	{"🧱", "Infrastructure related changes"},
	{"🧑‍💻", "Improve developer experience"},
	{"💸", "Add sponsorships or money related infrastructure"},
	{"🧵", "Add or update code related to multithreading or concurrency"},
	{"🦺", "Add or update code related to validation"},
}

var commitFormats = map[config.CommitType]string{
	config.CommitTypeConventional: "<type>[optional (<scope>)]: <commit message>",
	config.CommitTypeGitmoji:      ":emoji: <commit message>",
}

// Builtin returns the built-in template for style. An empty style yields the
// localized default prompt. The template always contains DiffPlaceholder.
func Builtin(style config.CommitType, language string, maxLength int) string {
	if language == "" {
		language = config.DefaultLanguage
	}
	if maxLength <= 0 {
		maxLength = config.DefaultMaxLength
	}

	var body string
	switch style {
	case config.CommitTypeConventional:
		body = styledPrompt(language, maxLength, style,
			"Choose a type from the type-to-description JSON below that best describes the git diff:\n"+renderTaxonomy(conventionalTypes))
	case config.CommitTypeGitmoji:
		body = styledPrompt(language, maxLength, style,
			"Choose an emoji from the emoji-to-description JSON below that best describes the git diff:\n"+renderTaxonomy(gitmojis))
	default:
		body = defaultPrompt(language, maxLength)
	}
	return body + "\n\nDiff:\n" + DiffPlaceholder
}

func styledPrompt(language string, maxLength int, style config.CommitType, taxonomy string) string {
	lines := []string{
		"Generate a concise git commit message title in present tense that precisely describes the key changes in the following code diff. Focus on what was changed, not just file names. Provide only the title, no description or body.",
		"Message language: " + language,
		fmt.Sprintf("Commit message must be a maximum of %d characters.", maxLength),
		"Exclude anything unnecessary such as translation. Your entire response will be passed directly into git commit.",
		"IMPORTANT: Do not include any explanations, introductions, or additional text. Do not wrap the commit message in quotes or any other formatting. Respond with ONLY the commit message text.",
		taxonomy,
		"The output response must be in format:\n" + commitFormats[style],
	}
	return strings.Join(lines, "\n")
}

func defaultPrompt(language string, maxLength int) string {
	if isChinese(language) {
		return fmt.Sprintf(`你是一位经验丰富的软件工程师，擅长编写清晰、简洁且符合 Conventional Commits 规范的 Git 提交信息。请根据下面提供的 git diff 输出内容，生成一条合适的提交记录。
要求如下：
提交格式遵循 Conventional Commits 规范，例如：<type>(<scope>): <subject>。
type 可选值包括：feat、fix、docs、style、refactor、perf、test、chore 等。
scope（可选）应简明指出改动影响的模块或文件。
subject 应使用祈使句（如“修复登录失败问题”而非“修复了...”），不超过 %d 个字符。
如果改动较复杂，请在正文（body）中简要说明改动原因或细节；若简单，可省略正文。
不要包含任何 git diff 中的代码片段或技术细节（如 +/- 行），只提炼语义。
不要输出任何解释或前言，也不要用引号或代码块包裹提交信息。
最终输出语言必须是：%s`, maxLength, language)
	}

	return fmt.Sprintf(`You are a helpful assistant that generates conventional commit messages based on git diffs.
Please generate a commit message for the following diff.
The commit message should follow the Conventional Commits specification.
The subject line must be at most %d characters.
Message language: %s
Only return the commit message, no other text. Do not wrap it in quotes or code blocks.`, maxLength, language)
}

func isChinese(language string) bool {
	l := strings.ToLower(language)
	return l == "zh" || strings.HasPrefix(l, "zh-") || strings.HasPrefix(l, "zh_")
}

// renderTaxonomy prints entries as an indented JSON object, keeping their order.
func renderTaxonomy(entries []entry) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, e := range entries {
		k, _ := json.Marshal(e.key)
		v, _ := json.Marshal(e.desc)
		b.WriteString("  ")
		b.Write(k)
		b.WriteString(": ")
		b.Write(v)
		if i < len(entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
