package embed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mimosa-flytrap/flytrap/config"
	"github.com/mimosa-flytrap/flytrap/http"
)

// Client posts texts to an embeddings endpoint and returns the decoded JSON
// response untouched. A missing URL or key is reported on first use, so a
// session without embeddings still starts.
type Client struct {
	caller http.Caller
	url    string
	apiKey string
	model  string
}

func New(cfg config.EmbedConfig, userAgent string) *Client {
	caller := http.New(http.Config{
		APIKey:          cfg.APIKey,
		AuthHeader:      http.DefaultAuthHeader,
		AuthTokenPrefix: http.DefaultAuthTokenPrefix,
		UserAgent:       userAgent,
		Timeout:         cfg.Timeout,
	})
	return NewWithCaller(caller, cfg.URL, cfg.APIKey, cfg.Model)
}

func NewWithCaller(caller http.Caller, url, apiKey, model string) *Client {
	return &Client{caller: caller, url: url, apiKey: apiKey, model: model}
}

type request struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

func (c *Client) Configured() bool {
	return c.url != "" && c.apiKey != ""
}

func (c *Client) Embed(ctx context.Context, texts []string) (json.RawMessage, error) {
	if c.url == "" {
		return nil, config.Missing("embed.url", "DEEPSEEK_API_URL")
	}
	if c.apiKey == "" {
		return nil, config.Missing("embed.api_key", "DEEPSEEK_API_KEY")
	}
	if texts == nil {
		texts = []string{}
	}

	body, err := json.Marshal(request{Model: c.model, Input: texts})
	if err != nil {
		return nil, err
	}

	raw, err := c.caller.Post(ctx, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.New("embed: response is not JSON")
	}
	return json.RawMessage(raw), nil
}
