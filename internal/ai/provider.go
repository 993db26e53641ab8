package ai

import (
	"context"
	"slices"
	"strings"
)

// ProviderType tags the backend family a Provider talks to.
type ProviderType string

const (
	TypeOpenAI           ProviderType = "openai"
	TypeOpenAICompatible ProviderType = "openai-compatible"
	TypeAzureOpenAI      ProviderType = "azure-openai"
	TypeGemini           ProviderType = "gemini"
	TypeAnthropic        ProviderType = "anthropic"
)

// ProviderTypes lists every supported backend family in a stable order.
func ProviderTypes() []ProviderType {
	return []ProviderType{TypeOpenAI, TypeAzureOpenAI, TypeOpenAICompatible, TypeGemini, TypeAnthropic}
}

// Valid reports whether t is one of the supported backend families.
func (t ProviderType) Valid() bool {
	return slices.Contains(ProviderTypes(), t)
}

// Capabilities are optional model feature flags.
type Capabilities struct {
	Vision   bool `json:"vision,omitempty" yaml:"vision,omitempty"`
	Web      bool `json:"web,omitempty" yaml:"web,omitempty"`
	Thinking bool `json:"thinking,omitempty" yaml:"thinking,omitempty"`
	Tools    bool `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// Model describes one model a provider exposes.
type Model struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Group        string        `json:"group,omitempty" yaml:"group,omitempty"`
	Capabilities *Capabilities `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// DisplayName returns the model name, or its id when no name is set.
func (m Model) DisplayName() string {
	if strings.TrimSpace(m.Name) != "" {
		return m.Name
	}
	return m.ID
}

// Provider is a configured backend account: credentials, endpoint and known models.
type Provider struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Type    ProviderType `json:"type" yaml:"type"`
	APIKey  string       `json:"apiKey" yaml:"apiKey"`
	BaseURL string       `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Models  []Model      `json:"models" yaml:"models"`
	Enabled *bool        `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the provider takes part in selection. Absent means enabled.
func (p Provider) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// HasModel reports whether id is among the provider's known models.
func (p Provider) HasModel(id string) bool {
	return slices.ContainsFunc(p.Models, func(m Model) bool { return m.ID == id })
}

// Adapter translates a Provider into backend-specific calls.
type Adapter interface {
	// NewModelHandle validates the provider and returns a handle bound to modelID.
	// It performs no network I/O.
	NewModelHandle(p Provider, modelID string) (ModelHandle, error)
	// FetchModels lists the models the backend advertises.
	FetchModels(ctx context.Context, p Provider) ([]Model, error)
}

// ModelHandle is a ready-to-invoke reference to one model on one provider.
type ModelHandle interface {
	ModelID() string
	// Stream opens a streaming text generation for prompt.
	Stream(ctx context.Context, prompt string) (Stream, error)
}

// Stream yields generated text incrementally.
// Recv returns io.EOF once the backend has finished.
type Stream interface {
	Recv() (string, error)
	Close() error
}
