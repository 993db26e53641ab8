package app

import (
	"fmt"

	"github.com/hoanghonghuy/commitagent/internal/config"
)

func runConfig(cfg Config) error {
	path := cfg.source().FilePath()

	// edit the file contents, not the env/flag-resolved view
	snap, err := config.Load(path)
	if err != nil {
		return err
	}

	newSnap, ok, err := runConfigInteractive(snap)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cfg.out(), "Operation cancelled.")
		return nil
	}

	if err := config.Validate(newSnap); err != nil {
		return err
	}
	if err := config.Save(newSnap, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cfg.out(), "\nConfiguration saved to %s\n", path)
	return nil
}
