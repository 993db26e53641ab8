package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoanghonghuy/commitagent/internal/ai"
	"github.com/hoanghonghuy/commitagent/internal/config"
)

const newProviderValue = "\x00new"

// runConfigInteractive edits one provider entry and the global defaults of snap.
func runConfigInteractive(snap config.Snapshot) (config.Snapshot, bool, error) {
	target := newProviderValue
	if len(snap.Providers) > 0 {
		opts := []huh.Option[string]{huh.NewOption("+ New provider", newProviderValue)}
		for _, p := range snap.Providers {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", p.Name, p.Type), p.ID))
		}
		pick := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider to edit").
				Options(opts...).
				Value(&target),
		))
		if err := pick.Run(); err != nil {
			return snap, false, err
		}
	}

	idx := -1
	p := ai.Provider{Type: ai.TypeOpenAI}
	for i := range snap.Providers {
		if snap.Providers[i].ID == target {
			idx, p = i, snap.Providers[i]
		}
	}

	id := p.ID
	name := p.Name
	providerType := string(p.Type)
	baseURL := p.BaseURL
	apiKey := p.APIKey
	enabled := p.IsEnabled()
	modelIDs := make([]string, 0, len(p.Models))
	for _, m := range p.Models {
		modelIDs = append(modelIDs, m.ID)
	}
	modelsStr := strings.Join(modelIDs, ", ")

	wasDefault := idx >= 0 && config.IsDefaultProvider(snap, p)
	makeDefault := wasDefault
	defaultModel := ""
	if wasDefault {
		defaultModel = snap.DefaultModel
	}
	commitType := string(snap.CommitType)
	language := snap.Language
	if language == "" {
		language = config.DefaultLanguage
	}
	maxLenStr := strconv.Itoa(snap.MaxLengthOrDefault())
	customPrompt := snap.CustomPrompt

	typeOpts := make([]huh.Option[string], 0, len(ai.ProviderTypes()))
	for _, t := range ai.ProviderTypes() {
		typeOpts = append(typeOpts, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("CommitAgent Configuration").
				Description("Update your settings in ~/.commitagent.json"),

			huh.NewInput().
				Title("Provider ID").
				Description("Unique identifier").
				Value(&id).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("id is required")
					}
					for i, other := range snap.Providers {
						if i != idx && other.ID == s {
							return fmt.Errorf("id %q is already used", s)
						}
					}
					return nil
				}),

			huh.NewInput().
				Title("Display name").
				Value(&name),

			huh.NewSelect[string]().
				Title("Provider type").
				Options(typeOpts...).
				Value(&providerType),

			huh.NewInput().
				Title("Base URL").
				Description("Required except for openai and gemini").
				Placeholder("https://api.openai.com/v1").
				Value(&baseURL),

			huh.NewInput().
				Title("API Key").
				Value(&apiKey).
				EchoMode(huh.EchoModePassword),

			huh.NewInput().
				Title("Models").
				Description("Model ids (comma separated); use `commitagent models --save` to fetch").
				Value(&modelsStr),

			huh.NewConfirm().
				Title("Enabled").
				Value(&enabled),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Default provider").
				Description("Use this provider when none is selected").
				Value(&makeDefault),

			huh.NewInput().
				Title("Default model").
				Description("Only applies to the default provider").
				Value(&defaultModel),

			huh.NewSelect[string]().
				Title("Commit style").
				Options(
					huh.NewOption("Default", ""),
					huh.NewOption("Conventional Commits", string(config.CommitTypeConventional)),
					huh.NewOption("Gitmoji", string(config.CommitTypeGitmoji)),
				).
				Value(&commitType),

			huh.NewInput().
				Title("Language").
				Suggestions([]string{"en", "zh-CN", "ja", "de", "fr", "vi"}).
				Value(&language),

			huh.NewInput().
				Title("Max length").
				Description("Maximum commit title length").
				Value(&maxLenStr).
				Validate(func(s string) error {
					v, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if v <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),

			huh.NewText().
				Title("Custom prompt").
				Description("Replaces the built-in prompt; ${diff} is substituted").
				Value(&customPrompt),
		),
	)

	if err := form.Run(); err != nil {
		return snap, false, err
	}

	p.ID = strings.TrimSpace(id)
	p.Name = strings.TrimSpace(name)
	if p.Name == "" {
		p.Name = p.ID
	}
	p.Type = ai.ProviderType(providerType)
	p.BaseURL = strings.TrimSpace(baseURL)
	p.APIKey = strings.TrimSpace(apiKey)
	p.Enabled = &enabled
	p.Models = mergeModelIDs(p.Models, splitList(modelsStr))

	if idx >= 0 {
		snap.Providers[idx] = p
	} else {
		snap.Providers = append(snap.Providers, p)
	}

	applyDefaultProvider(&snap, p, wasDefault, makeDefault, defaultModel)
	snap.CommitType = config.CommitType(commitType)
	snap.Language = strings.TrimSpace(language)
	snap.CustomPrompt = customPrompt
	if v, err := strconv.Atoi(maxLenStr); err == nil {
		snap.MaxLength = &v
	}

	return snap, true, nil
}

// applyDefaultProvider records whether p is the default provider. The default
// model belongs to the default provider, so it is only written when p is
// (or becomes) the default, and cleared along with the name otherwise.
func applyDefaultProvider(snap *config.Snapshot, p ai.Provider, wasDefault, makeDefault bool, defaultModel string) {
	switch {
	case makeDefault:
		snap.DefaultProviderName = p.Name
		snap.DefaultModel = strings.TrimSpace(defaultModel)
	case wasDefault:
		snap.DefaultProviderName = ""
		snap.DefaultModel = ""
	}
}

// mergeModelIDs keeps existing model metadata for ids that are still listed.
func mergeModelIDs(existing []ai.Model, ids []string) []ai.Model {
	byID := make(map[string]ai.Model, len(existing))
	for _, m := range existing {
		byID[m.ID] = m
	}
	out := make([]ai.Model, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, ai.Model{ID: id})
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// selectModelInteractive lets the user pick one model across all providers.
func selectModelInteractive(providers []ai.Provider) (providerID, modelID string, ok bool, err error) {
	opts := modelOptions(providers)
	if len(opts) == 0 {
		return "", "", false, fmt.Errorf("no AI providers configured")
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select AI Model").
				Options(opts...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", "", false, nil
		}
		return "", "", false, err
	}

	providerID, modelID, found := strings.Cut(selected, "\x00")
	return providerID, modelID, found, nil
}

// modelOptions builds one option per provider model, labelled "model · provider".
func modelOptions(providers []ai.Provider) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range providers {
		for _, m := range p.Models {
			label := fmt.Sprintf("%s · %s", m.DisplayName(), p.Name)
			opts = append(opts, huh.NewOption(label, p.ID+"\x00"+m.ID))
		}
	}
	return opts
}

// Action enum for confirmation
type Action int

const (
	ActionCommit Action = iota
	ActionRegenerate
	ActionEdit
	ActionCancel
)

func confirmCommitInteractive(commitMsg string) (Action, error) {
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Generated Commit Message:"))

	fmt.Println(lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		MarginBottom(1).
		Render(strings.TrimSpace(commitMsg)))

	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Commit (Apply)", "commit"),
					huh.NewOption("Regenerate", "regenerate"),
					huh.NewOption("Edit", "edit"),
					huh.NewOption("Cancel", "cancel"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return ActionCancel, err
	}

	switch selected {
	case "commit":
		return ActionCommit, nil
	case "edit":
		return ActionEdit, nil
	case "regenerate":
		return ActionRegenerate, nil
	default:
		return ActionCancel, nil
	}
}

func editCommitMessageInteractive(initialMsg string) (string, error) {
	content := initialMsg

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Edit Commit Message").
				Description("Modify the message below (Press Esc+Enter or standard submit key to finish)").
				Value(&content),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return content, nil
}
