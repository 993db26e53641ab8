package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// NewRestClient returns the resty client used for model listing calls.
func NewRestClient() *resty.Client {
	return resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
}

// ListRequest describes one model-listing GET.
type ListRequest struct {
	Provider string
	URL      string
	Headers  map[string]string
	Query    map[string]string
}

// GetJSON performs a listing GET and decodes the body into out.
// Any transport failure, non-2xx status or undecodable body is a *ModelFetchError.
func GetJSON(ctx context.Context, client *resty.Client, req ListRequest, out any) error {
	if client == nil {
		client = NewRestClient()
	}

	r := client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}

	resp, err := r.Get(req.URL)
	if err != nil {
		return &ModelFetchError{Provider: req.Provider, Cause: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &ModelFetchError{
			Provider:   req.Provider,
			StatusCode: resp.StatusCode(),
			Status:     statusText(resp),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &ModelFetchError{
			Provider:   req.Provider,
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// JoinURL appends path to base, dropping a trailing slash on base.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func statusText(resp *resty.Response) string {
	if s := strings.TrimSpace(resp.Status()); s != "" {
		return s
	}
	return fmt.Sprintf("status %d", resp.StatusCode())
}
