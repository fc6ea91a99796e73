// Package genai provides the generative model client used for assessments.
// It speaks the OpenAI-compatible chat completions API so the backend can sit
// behind any proxy that routes to a vision-capable model.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/babynest/assistant/imaging"
)

// Part is one element of a model request: text, or an attached image.
type Part struct {
	Text  string
	Image *imaging.Image
}

// GenerationConfig carries sampling and safety parameters for one request.
type GenerationConfig struct {
	Temperature    float64
	MaxTokens      int
	SafetySettings []SafetySetting
}

// SafetySetting is a category threshold forwarded to the provider.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// Client is the HTTP chat completions client.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new model client.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatCompletionRequest represents the chat completion request body.
type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	SafetySettings []SafetySetting `json:"safety_settings,omitempty"`
}

// chatMessage represents a chat message. Content is either a plain string or
// a list of typed content parts for image-bearing requests.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// contentPart is one typed element of a multi-part message.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatCompletionResponse represents the chat completion response body.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int          `json:"index"`
	Message      *respMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type respMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorResponse represents an API error response.
type errorResponse struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Generate sends the parts as a single user message and returns the reply
// text. Any transport, quota, or filtering failure comes back as an error;
// callers decide how to surface it.
func (c *Client) Generate(ctx context.Context, parts []Part, cfg GenerationConfig) (string, error) {
	req := &chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: messageContent(parts)},
		},
		SafetySettings: cfg.SafetySettings,
	}
	if cfg.Temperature > 0 {
		req.Temperature = &cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		req.MaxTokens = &cfg.MaxTokens
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return "", fmt.Errorf("model API error [%d]: %s (type: %s)", resp.StatusCode, errResp.Error.Message, errResp.Error.Type)
		}
		return "", fmt.Errorf("model API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message == nil {
		return "", fmt.Errorf("model returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

// messageContent packs parts into the wire shape: a plain string for
// text-only requests, typed content parts when an image is attached.
func messageContent(parts []Part) interface{} {
	hasImage := false
	for _, p := range parts {
		if p.Image != nil {
			hasImage = true
			break
		}
	}
	if !hasImage {
		var texts []string
		for _, p := range parts {
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		return strings.Join(texts, "\n")
	}

	var content []contentPart
	for _, p := range parts {
		if p.Text != "" {
			content = append(content, contentPart{Type: "text", Text: p.Text})
		}
		if p.Image != nil {
			url := fmt.Sprintf("data:%s;base64,%s", p.Image.MIMEType, base64.StdEncoding.EncodeToString(p.Image.Data))
			content = append(content, contentPart{Type: "image_url", ImageURL: &imageURL{URL: url}})
		}
	}
	return content
}
