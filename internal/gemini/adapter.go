package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

// Adapter serves the gemini provider type. Base URLs are optional.
type Adapter struct {
	rest *resty.Client
	http *http.Client
}

func NewAdapter(rest *resty.Client, httpClient *http.Client) *Adapter {
	if rest == nil {
		rest = ai.NewRestClient()
	}
	return &Adapter{rest: rest, http: httpClient}
}

func (a *Adapter) NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error) {
	return New(Config{
		Name:       displayName(p),
		BaseURL:    p.BaseURL,
		APIKey:     p.APIKey,
		Model:      modelID,
		HTTPClient: a.http,
	}), nil
}

type modelList struct {
	Models []struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	} `json:"models"`
}

// FetchModels calls GET {base}/models?key=... and strips the "models/" prefix from ids.
func (a *Adapter) FetchModels(ctx context.Context, p ai.Provider) ([]ai.Model, error) {
	base := strings.TrimSpace(p.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	var out modelList
	err := ai.GetJSON(ctx, a.rest, ai.ListRequest{
		Provider: displayName(p),
		URL:      ai.JoinURL(base, "/models"),
		Query:    map[string]string{"key": p.APIKey},
	}, &out)
	if err != nil {
		return nil, err
	}

	models := make([]ai.Model, 0, len(out.Models))
	for _, m := range out.Models {
		id := strings.TrimPrefix(m.Name, "models/")
		name := m.DisplayName
		if name == "" {
			name = m.Name
		}
		models = append(models, ai.Model{ID: id, Name: name})
	}
	return models, nil
}

func displayName(p ai.Provider) string {
	if p.Name != "" {
		return p.Name
	}
	return "gemini"
}
