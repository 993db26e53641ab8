package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

// rawSnapshot mirrors Snapshot but accepts models written as plain strings.
type rawSnapshot struct {
	Providers           []rawProvider `json:"providers" yaml:"providers"`
	DefaultProviderName string        `json:"defaultProviderName" yaml:"defaultProviderName"`
	DefaultModel        string        `json:"defaultModel" yaml:"defaultModel"`
	Language            string        `json:"language" yaml:"language"`
	CommitType          CommitType    `json:"commitType" yaml:"commitType"`
	CustomPrompt        string        `json:"customPrompt" yaml:"customPrompt"`
	MaxLength           *int          `json:"maxLength" yaml:"maxLength"`
	IgnoredFiles        []string      `json:"ignoredFiles" yaml:"ignoredFiles"`
}

type rawProvider struct {
	ID      string          `json:"id" yaml:"id"`
	Name    string          `json:"name" yaml:"name"`
	Type    ai.ProviderType `json:"type" yaml:"type"`
	APIKey  string          `json:"apiKey" yaml:"apiKey"`
	BaseURL string          `json:"baseUrl" yaml:"baseUrl"`
	Models  []modelEntry    `json:"models" yaml:"models"`
	Enabled *bool           `json:"enabled" yaml:"enabled"`
}

type modelEntry ai.Model

func (m *modelEntry) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*m = modelEntry{ID: id}
		return nil
	}
	var full ai.Model
	if err := json.Unmarshal(b, &full); err != nil {
		return err
	}
	*m = modelEntry(full)
	return nil
}

func (m *modelEntry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*m = modelEntry{ID: n.Value}
		return nil
	}
	var full ai.Model
	if err := n.Decode(&full); err != nil {
		return err
	}
	*m = modelEntry(full)
	return nil
}

func (r rawSnapshot) snapshot() Snapshot {
	s := Snapshot{
		DefaultProviderName: r.DefaultProviderName,
		DefaultModel:        r.DefaultModel,
		Language:            r.Language,
		CommitType:          r.CommitType,
		CustomPrompt:        r.CustomPrompt,
		MaxLength:           r.MaxLength,
		IgnoredFiles:        r.IgnoredFiles,
	}
	for _, rp := range r.Providers {
		p := ai.Provider{
			ID:      rp.ID,
			Name:    rp.Name,
			Type:    rp.Type,
			APIKey:  rp.APIKey,
			BaseURL: rp.BaseURL,
			Enabled: rp.Enabled,
			Models:  make([]ai.Model, 0, len(rp.Models)),
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		for _, m := range rp.Models {
			p.Models = append(p.Models, ai.Model(m))
		}
		s.Providers = append(s.Providers, p)
	}
	return s
}
