package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"leafline/logging"
)

// ChatCompleter is the inference endpoint as the orchestrator sees it:
// a prompt plus optional image references in, raw text out.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one inference call.
type CompletionRequest struct {
	Model     string
	System    string
	Prompt    string
	Images    []string // normalized data URIs
	MaxTokens int
}

// HTTPError is a non-2xx reply from the inference service. RetryAfter
// carries the server's retry hint when one was provided.
type HTTPError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("inference http %d: %s", e.Status, e.Body)
}

func (e *HTTPError) RateLimited() bool { return e.Status == http.StatusTooManyRequests }

// ClientConfig configures the inference client. APIKey is mandatory:
// its absence is a constructor-time error, never a per-call check.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	log        *logging.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg ClientConfig, log *logging.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("advisor: missing inference API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		log:        log.With("service", "InferenceClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete performs a single chat-completions call. It fails fast when the
// service returns no choices or empty content; retrying is the caller's job.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	c.log.Debug("inference call",
		"model", req.Model,
		"images", len(req.Images),
		"max_tokens", req.MaxTokens,
	)

	payload := chatRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
	}
	if strings.TrimSpace(req.System) != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: req.System})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: userContent(req)})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal inference req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{
			Status:     resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			RetryAfter: retryAfterHint(resp),
		}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode inference resp: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrNoResponse
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}

// userContent builds the user message: plain string for text-only calls,
// multimodal content parts when images ride along.
func userContent(req CompletionRequest) any {
	if len(req.Images) == 0 {
		return req.Prompt
	}
	parts := make([]map[string]any, 0, 1+len(req.Images))
	parts = append(parts, map[string]any{"type": "text", "text": req.Prompt})
	for _, img := range req.Images {
		parts = append(parts, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": img},
		})
	}
	return parts
}

func retryAfterHint(resp *http.Response) time.Duration {
	ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if ra == "" {
		return 0
	}
	if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
