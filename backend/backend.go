package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/mimosa-flytrap/flytrap/config"
	"github.com/mimosa-flytrap/flytrap/http"
)

// Client turns a system prompt and a user prompt into reply text.
type Client interface {
	Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
	Name() string
}

// BackendError is a failed model call: transport failure, non-2xx status or
// an unreadable response.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: name, Err: err}
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.Config) (Client, error) {
	switch cfg.Backend {
	case config.BackendOllama:
		return NewOllamaCompletions(newCaller(cfg, ""), cfg.Ollama.BaseURL, cfg.ModelFor(cfg.Backend), cfg.MaxTokens), nil
	case config.BackendOllamaChat:
		return NewOllamaChat(newCaller(cfg, ""), cfg.Ollama.BaseURL, cfg.ModelFor(cfg.Backend)), nil
	case config.BackendOpenAI:
		return newOpenAIFromConfig(cfg)
	case config.BackendCohere:
		return NewCohere(cfg.Cohere.APIKey, cfg.ModelFor(cfg.Backend))
	}
	return nil, config.ConfigurationError{
		Setting: "backend",
		Reason:  fmt.Sprintf("unknown backend %q (want one of %s)", cfg.Backend, strings.Join(config.Backends, ", ")),
	}
}

func newOpenAIFromConfig(cfg config.Config) (Client, error) {
	base, key := cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey

	// Pointed at Ollama's /v1 endpoint, the Ollama key stands in for a
	// missing OpenAI key.
	if key == "" && strings.HasPrefix(base, strings.TrimRight(cfg.Ollama.BaseURL, "/")) {
		key = cfg.Ollama.APIKey
	}
	if key == "" {
		return nil, config.Missing("openai.api_key", "OPENAI_API_KEY or OPENAI_API_KEY_FILE")
	}

	return NewOpenAI(newCaller(cfg, key), base, cfg.ModelFor(cfg.Backend), cfg.MaxTokens), nil
}

func newCaller(cfg config.Config, apiKey string) *http.RestCaller {
	return http.New(http.Config{
		APIKey:          apiKey,
		AuthHeader:      http.DefaultAuthHeader,
		AuthTokenPrefix: http.DefaultAuthTokenPrefix,
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.Timeout,
		SkipTLSVerify:   cfg.SkipTLSVerify,
		CustomHeaders:   cfg.CustomHeaders,
	})
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func conversation(systemPrompt, userPrompt string) []message {
	var msgs []message
	if systemPrompt != "" {
		msgs = append(msgs, message{Role: "system", Content: systemPrompt})
	}
	return append(msgs, message{Role: "user", Content: userPrompt})
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
