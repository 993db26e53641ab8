package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/hoanghonghuy/commitagent/internal/ai"
	"github.com/hoanghonghuy/commitagent/internal/openai"
)

// KnownModels is returned when no proxy is configured or the proxy listing fails.
// Anthropic has no public listing endpoint.
var KnownModels = []ai.Model{
	{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4"},
	{ID: "claude-3-7-sonnet-20250219", Name: "Claude 3.7 Sonnet"},
	{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet"},
	{ID: "claude-3-5-haiku-20241022", Name: "Claude 3.5 Haiku"},
	{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus"},
}

// Adapter serves the anthropic provider type. Generation goes through an
// OpenAI-compatible proxy at the provider's base URL.
type Adapter struct {
	rest *resty.Client
	http *http.Client
	log  zerolog.Logger
}

func NewAdapter(rest *resty.Client, httpClient *http.Client, log zerolog.Logger) *Adapter {
	if rest == nil {
		rest = ai.NewRestClient()
	}
	return &Adapter{rest: rest, http: httpClient, log: log}
}

func (a *Adapter) NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error) {
	if strings.TrimSpace(p.BaseURL) == "" {
		return nil, ai.MissingBaseURL(p)
	}
	return openai.New(openai.Config{
		Name:       name(p),
		BaseURL:    p.BaseURL,
		APIKey:     p.APIKey,
		Model:      modelID,
		HTTPClient: a.http,
	}), nil
}

// FetchModels never fails: proxy errors of any kind fall back to KnownModels.
func (a *Adapter) FetchModels(ctx context.Context, p ai.Provider) ([]ai.Model, error) {
	if strings.TrimSpace(p.BaseURL) == "" {
		return knownModels(), nil
	}

	models, ok, err := openai.ListModels(ctx, a.rest, name(p), p.BaseURL, p.APIKey)
	if err != nil || !ok {
		a.log.Debug().Err(err).Str("provider", name(p)).Msg("proxy model listing unavailable, using built-in list")
		return knownModels(), nil
	}
	return models, nil
}

func knownModels() []ai.Model {
	out := make([]ai.Model, len(KnownModels))
	copy(out, KnownModels)
	return out
}

func name(p ai.Provider) string {
	if p.Name != "" {
		return p.Name
	}
	return "anthropic"
}
