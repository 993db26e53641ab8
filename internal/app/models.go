package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoanghonghuy/commitagent/internal/ai"
	"github.com/hoanghonghuy/commitagent/internal/config"
	"github.com/hoanghonghuy/commitagent/internal/registry"
)

var (
	providerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	modelIDStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// runModels fetches model lists and optionally writes them back to the config file.
func runModels(ctx context.Context, cfg Config) error {
	src := cfg.source()
	snap, err := src.Load()
	if err != nil {
		return err
	}

	providers, err := modelTargets(snap, cfg)
	if err != nil {
		return err
	}

	reg := registry.Default(nil, nil, cfg.Log)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Fetching models..."
	s.Start()
	listings := reg.FetchAll(ctx, providers)
	s.Stop()

	renderListings(cfg.out(), listings)

	var errs []error
	for _, l := range listings {
		if l.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.Provider.Name, l.Err))
		}
	}

	if cfg.SaveModels {
		if cfg.BaseURL != "" {
			return errors.New("--save cannot be used with a temporary --base-url provider")
		}
		if err := saveListings(src.FilePath(), listings); err != nil {
			return err
		}
		fmt.Fprintf(cfg.out(), "\nModels saved to %s\n", src.FilePath())
	}

	return errors.Join(errs...)
}

// modelTargets picks the providers to list: a temporary provider built from
// --base-url, one provider by id, or every enabled provider.
func modelTargets(snap config.Snapshot, cfg Config) ([]ai.Provider, error) {
	if strings.TrimSpace(cfg.BaseURL) != "" {
		t := ai.ProviderType(cfg.ProviderType)
		if t == "" {
			t = ai.TypeOpenAICompatible
		}
		return []ai.Provider{{
			ID:      "temp",
			Name:    "Temp",
			Type:    t,
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		}}, nil
	}

	if cfg.ProviderID != "" {
		p, ok := config.ResolveProvider(snap, cfg.ProviderID)
		if !ok {
			return nil, fmt.Errorf("provider %q not found or disabled", cfg.ProviderID)
		}
		return []ai.Provider{p}, nil
	}

	providers := config.EnabledProviders(snap)
	if len(providers) == 0 {
		return nil, errors.New("no AI providers configured")
	}
	return providers, nil
}

func renderListings(w io.Writer, listings []registry.Listing) {
	for i, l := range listings {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, providerStyle.Render(l.Provider.Name)+" "+dimStyle.Render("("+string(l.Provider.Type)+")"))
		if l.Err != nil {
			fmt.Fprintln(w, "  "+errorStyle.Render(l.Err.Error()))
			continue
		}
		if len(l.Models) == 0 {
			fmt.Fprintln(w, "  "+dimStyle.Render("no models"))
			continue
		}
		for _, m := range l.Models {
			line := "  " + modelIDStyle.Render(m.ID)
			if m.DisplayName() != m.ID {
				line += " " + dimStyle.Render(m.DisplayName())
			}
			fmt.Fprintln(w, line)
		}
	}
}

// saveListings replaces the models of each successfully listed provider in
// the file at path. The file is re-read so command line overrides are not
// persisted.
func saveListings(path string, listings []registry.Listing) error {
	snap, err := config.Load(path)
	if err != nil {
		return err
	}
	changed := applyListings(&snap, listings)
	if changed == 0 {
		return errors.New("no model lists to save")
	}
	if err := config.Save(snap, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func applyListings(snap *config.Snapshot, listings []registry.Listing) int {
	changed := 0
	for _, l := range listings {
		if l.Err != nil {
			continue
		}
		for i := range snap.Providers {
			if snap.Providers[i].ID == l.Provider.ID {
				snap.Providers[i].Models = l.Models
				changed++
			}
		}
	}
	return changed
}
