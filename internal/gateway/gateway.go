// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway calls the model gateway's chat-completions endpoint.
// A Backend abstraction lets tests supply a mock in place of the network.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/sred-engine/internal/httputil"
	"github.com/pdiddy/sred-engine/pkg/types"
)

// DefaultURL is the production gateway endpoint.
const DefaultURL = "https://ai.gateway.lovable.dev/v1/chat/completions"

// modelMap resolves an operator-facing model key to the concrete backing
// model identifier the gateway understands.
var modelMap = map[types.ModelKey]string{
	types.ModelOpenAI: "openai/gpt-5",
	types.ModelClaude: "google/gemini-2.5-pro",
	types.ModelGemini: "google/gemini-2.5-flash",
}

// displayNames maps backing model identifiers to short names for logging.
var displayNames = map[string]string{
	"openai/gpt-5":            "GPT-5",
	"google/gemini-2.5-pro":   "Gemini Pro",
	"google/gemini-2.5-flash": "Gemini Flash",
}

// Resolve maps a model key to its backing model identifier. An empty key
// defaults to gemini; an unrecognized key is a validation error.
func Resolve(key types.ModelKey) (string, error) {
	if key == "" {
		key = types.ModelGemini
	}
	model, ok := modelMap[key]
	if !ok {
		return "", types.NewError(types.KindValidation,
			"invalid model selection %q: allowed models: openai, claude, gemini", key)
	}
	return model, nil
}

// DisplayName returns a short human-readable name for a backing model.
func DisplayName(model string) string {
	if name, ok := displayNames[model]; ok {
		return name
	}
	return model
}

// Request is one completion call: the resolved backing model, the system
// prompt, and the fully built user prompt.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
}

// Backend abstracts the model gateway so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client is the HTTP Backend.
type Client struct {
	URL    string
	APIKey string
	HTTP   *http.Client
}

// NewClient builds a gateway client from config, falling back to the
// production endpoint.
func NewClient(cfg types.GatewayConfig) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	client := &http.Client{}
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	return &Client{URL: url, APIKey: cfg.APIKey, HTTP: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete posts one chat completion and returns the reply text verbatim.
// Non-2xx statuses become classified errors; a context deadline becomes a
// timeout error. No retries.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	resp, err := httputil.PostJSON(ctx, c.HTTP, c.URL, c.APIKey, body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", types.WrapError(types.KindTimeout, err, "gateway call timed out")
		}
		return "", types.WrapError(types.KindUpstream, err, "calling gateway")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", httputil.ClassifyStatus(resp)
	}

	var cr chatResponse
	if err := httputil.DecodeJSON(resp, &cr); err != nil {
		return "", types.WrapError(types.KindUpstream, err, "decoding gateway response")
	}
	if len(cr.Choices) == 0 {
		return "", types.NewError(types.KindUpstream, "gateway returned no choices")
	}

	content := cr.Choices[0].Message.Content
	if content == "" {
		return "", types.NewError(types.KindUpstream, "gateway returned empty content")
	}
	return content, nil
}

var _ Backend = (*Client)(nil)

// ValidateKey reports whether key names a known model, for early request
// validation before any prompt is built.
func ValidateKey(key types.ModelKey) error {
	_, err := Resolve(key)
	return err
}

// Describe formats a model selection for progress output.
func Describe(key types.ModelKey) string {
	model, err := Resolve(key)
	if err != nil {
		return string(key)
	}
	return fmt.Sprintf("%s (%s)", DisplayName(model), model)
}
