// Package registry maps provider type tags to their adapters.
package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hoanghonghuy/commitagent/internal/ai"
	"github.com/hoanghonghuy/commitagent/internal/anthropic"
	"github.com/hoanghonghuy/commitagent/internal/gemini"
	"github.com/hoanghonghuy/commitagent/internal/openai"
)

// Registry is an immutable mapping from provider type to Adapter.
type Registry struct {
	adapters map[ai.ProviderType]ai.Adapter
	log      zerolog.Logger
}

// New builds a registry from an explicit adapter set.
func New(adapters map[ai.ProviderType]ai.Adapter, log zerolog.Logger) *Registry {
	m := make(map[ai.ProviderType]ai.Adapter, len(adapters))
	for k, v := range adapters {
		m[k] = v
	}
	return &Registry{adapters: m, log: log}
}

// Default builds the registry for every supported provider type.
// Nil clients fall back to each adapter's defaults.
func Default(rest *resty.Client, httpClient *http.Client, log zerolog.Logger) *Registry {
	return New(map[ai.ProviderType]ai.Adapter{
		ai.TypeOpenAI:           openai.NewAdapter(openai.WithRestClient(rest), openai.WithHTTPClient(httpClient)),
		ai.TypeOpenAICompatible: openai.NewCompatibleAdapter(openai.WithRestClient(rest), openai.WithHTTPClient(httpClient)),
		ai.TypeAzureOpenAI:      openai.NewAzureAdapter(openai.WithRestClient(rest), openai.WithHTTPClient(httpClient)),
		ai.TypeGemini:           gemini.NewAdapter(rest, httpClient),
		ai.TypeAnthropic:        anthropic.NewAdapter(rest, httpClient, log),
	}, log)
}

// Adapter returns the adapter registered for t.
func (r *Registry) Adapter(t ai.ProviderType) (ai.Adapter, error) {
	a, ok := r.adapters[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ai.ErrUnsupportedProviderType, t)
	}
	return a, nil
}

// NewModelHandle resolves the provider's adapter and creates a handle for modelID.
func (r *Registry) NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error) {
	r.log.Debug().
		Str("provider", p.Name).
		Str("type", string(p.Type)).
		Str("model", modelID).
		Msg("creating model handle")

	a, err := r.Adapter(p.Type)
	if err != nil {
		return nil, err
	}
	return a.NewModelHandle(p, modelID)
}

// FetchModels lists the models of one provider.
func (r *Registry) FetchModels(ctx context.Context, p ai.Provider) ([]ai.Model, error) {
	a, err := r.Adapter(p.Type)
	if err != nil {
		return nil, err
	}
	models, err := a.FetchModels(ctx, p)
	if err != nil {
		r.log.Error().Err(err).Str("provider", p.Name).Msg("error fetching models")
		return nil, err
	}
	return models, nil
}

// Listing is the outcome of fetching one provider's models.
type Listing struct {
	Provider ai.Provider
	Models   []ai.Model
	Err      error
}

// FetchAll lists models for every provider concurrently. Per-provider failures
// are reported in the Listing rather than aborting the others. Results keep
// the input order.
func (r *Registry) FetchAll(ctx context.Context, providers []ai.Provider) []Listing {
	out := make([]Listing, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			models, err := r.FetchModels(gctx, p)
			out[i] = Listing{Provider: p, Models: models, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
