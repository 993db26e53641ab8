package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

// Client streams generateContent responses from the Gemini API.
type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: httpClient}
}

func (c *Client) ModelID() string { return c.cfg.Model }

// Minimal Gemini API structs
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("alt", "sse")
	q.Set("key", c.cfg.APIKey)
	model := strings.TrimPrefix(c.cfg.Model, "models/")
	return fmt.Sprintf("%s/models/%s:streamGenerateContent?%s", c.cfg.BaseURL, url.PathEscape(model), q.Encode())
}

func (c *Client) Stream(ctx context.Context, prompt string) (ai.Stream, error) {
	b, err := json.Marshal(generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &ai.APIError{
			Provider:   c.cfg.Name,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return &stream{body: resp.Body, events: ai.NewSSEReader(resp.Body)}, nil
}

type stream struct {
	body   io.ReadCloser
	events *ai.SSEReader
}

func (s *stream) Recv() (string, error) {
	for {
		data, err := s.events.Next()
		if err != nil {
			return "", err
		}

		var resp generateContentResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			continue
		}
		if resp.Error != nil {
			return "", fmt.Errorf("gemini error: %s (%s)", resp.Error.Message, resp.Error.Status)
		}
		if len(resp.Candidates) == 0 {
			continue
		}

		var sb strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() == 0 {
			continue
		}
		return sb.String(), nil
	}
}

func (s *stream) Close() error {
	return s.body.Close()
}
