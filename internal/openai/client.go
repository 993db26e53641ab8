package openai

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

const (
	DefaultBaseURL  = "https://api.openai.com/v1"
	AzureAPIVersion = "2024-02-01"
)

type Config struct {
	Name    string // provider name, used in errors
	BaseURL string
	APIKey  string
	Model   string

	// Azure switches to the deployments endpoint and the api-key header.
	Azure bool

	HTTPClient *http.Client
}

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 120 * time.Second,
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) ModelID() string { return c.cfg.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *Client) endpoint() string {
	if c.cfg.Azure {
		return c.cfg.BaseURL + "/deployments/" + url.PathEscape(c.cfg.Model) +
			"/chat/completions?api-version=" + AzureAPIVersion
	}
	return c.cfg.BaseURL + "/chat/completions"
}

// Stream opens a streaming chat completion with prompt as the single user message.
func (c *Client) Stream(ctx context.Context, prompt string) (ai.Stream, error) {
	payload, err := json.Marshal(chatReq{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.cfg.Azure {
		req.Header.Set("api-key", c.cfg.APIKey)
	} else if strings.TrimSpace(c.cfg.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.cfg.Name, err)
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

	return &chatStream{
		name:   c.cfg.Name,
		body:   resp.Body,
		events: ai.NewSSEReader(resp.Body),
	}, nil
}

type chatStream struct {
	name   string
	body   io.ReadCloser
	events *ai.SSEReader
}

func (s *chatStream) Recv() (string, error) {
	for {
		data, err := s.events.Next()
		if err != nil {
			return "", err
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// skip malformed chunks
			continue
		}
		if chunk.Error != nil {
			return "", fmt.Errorf("llm error: %s (%s)", chunk.Error.Message, chunk.Error.Type)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		return chunk.Choices[0].Delta.Content, nil
	}
}

func (s *chatStream) Close() error {
	return s.body.Close()
}
