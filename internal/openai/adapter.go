package openai

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

type flavor int

const (
	native flavor = iota
	compatible
	azure
)

// Adapter serves the openai, openai-compatible and azure-openai provider types.
type Adapter struct {
	flavor flavor
	rest   *resty.Client
	http   *http.Client
}

// Option customises an Adapter's HTTP clients.
type Option func(*Adapter)

func WithRestClient(c *resty.Client) Option { return func(a *Adapter) { a.rest = c } }

func WithHTTPClient(c *http.Client) Option { return func(a *Adapter) { a.http = c } }

// NewAdapter returns the adapter for the native OpenAI API. A missing base URL
// falls back to DefaultBaseURL.
func NewAdapter(opts ...Option) *Adapter { return newAdapter(native, opts) }

// NewCompatibleAdapter returns the adapter for arbitrary OpenAI-compatible endpoints.
func NewCompatibleAdapter(opts ...Option) *Adapter { return newAdapter(compatible, opts) }

// NewAzureAdapter returns the adapter for Azure OpenAI resources.
func NewAzureAdapter(opts ...Option) *Adapter { return newAdapter(azure, opts) }

func newAdapter(f flavor, opts []Option) *Adapter {
	a := &Adapter{flavor: f}
	for _, opt := range opts {
		opt(a)
	}
	if a.rest == nil {
		a.rest = ai.NewRestClient()
	}
	return a
}

func (a *Adapter) baseURL(p ai.Provider) (string, error) {
	base := strings.TrimSpace(p.BaseURL)
	if base != "" {
		return base, nil
	}
	if a.flavor == native {
		return DefaultBaseURL, nil
	}
	return "", ai.MissingBaseURL(p)
}

func (a *Adapter) NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error) {
	base, err := a.baseURL(p)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Name:       providerName(p),
		BaseURL:    base,
		APIKey:     p.APIKey,
		Model:      modelID,
		Azure:      a.flavor == azure,
		HTTPClient: a.http,
	}), nil
}

func (a *Adapter) FetchModels(ctx context.Context, p ai.Provider) ([]ai.Model, error) {
	base, err := a.baseURL(p)
	if err != nil {
		return nil, err
	}
	if a.flavor == azure {
		return listAzureDeployments(ctx, a.rest, providerName(p), base, p.APIKey)
	}
	models, _, err := ListModels(ctx, a.rest, providerName(p), base, p.APIKey)
	return models, err
}

type modelList struct {
	Data []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Model string `json:"model"`
		Group string `json:"group"`
	} `json:"data"`
}

// ListModels calls GET {base}/models with Bearer auth and maps data[].
// The boolean reports whether the response carried a data array at all.
func ListModels(ctx context.Context, rest *resty.Client, name, base, apiKey string) ([]ai.Model, bool, error) {
	var out modelList
	err := ai.GetJSON(ctx, rest, ai.ListRequest{
		Provider: name,
		URL:      ai.JoinURL(base, "/models"),
		Headers:  map[string]string{"Authorization": "Bearer " + apiKey},
	}, &out)
	if err != nil {
		return nil, false, err
	}
	if out.Data == nil {
		return []ai.Model{}, false, nil
	}

	models := make([]ai.Model, 0, len(out.Data))
	for _, m := range out.Data {
		models = append(models, ai.Model{
			ID:    m.ID,
			Name:  firstNonEmpty(m.Name, m.ID),
			Group: m.Group,
		})
	}
	return models, true, nil
}

func listAzureDeployments(ctx context.Context, rest *resty.Client, name, base, apiKey string) ([]ai.Model, error) {
	var out modelList
	err := ai.GetJSON(ctx, rest, ai.ListRequest{
		Provider: name,
		URL:      ai.JoinURL(base, "/deployments"),
		Headers:  map[string]string{"api-key": apiKey},
		Query:    map[string]string{"api-version": AzureAPIVersion},
	}, &out)
	if err != nil {
		return nil, err
	}

	models := make([]ai.Model, 0, len(out.Data))
	for _, m := range out.Data {
		models = append(models, ai.Model{
			ID:   m.ID,
			Name: firstNonEmpty(m.Name, m.Model, m.ID),
		})
	}
	return models, nil
}

func providerName(p ai.Provider) string {
	return firstNonEmpty(p.Name, p.ID, string(p.Type))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
