package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mimosa-flytrap/flytrap/http"
)

const (
	completionsPath = "/v1/completions"
	ollamaChatPath  = "/api/chat"
)

// OllamaCompletions calls the OpenAI-style completions endpoint that Ollama
// serves, with the system and user prompts folded into one prompt string.
type OllamaCompletions struct {
	caller    http.Caller
	baseURL   string
	model     string
	maxTokens int
}

var _ Client = (*OllamaCompletions)(nil)

func NewOllamaCompletions(caller http.Caller, baseURL, model string, maxTokens int) *OllamaCompletions {
	return &OllamaCompletions{caller: caller, baseURL: baseURL, model: model, maxTokens: maxTokens}
}

func (o *OllamaCompletions) Name() string { return "ollama" }

type completionsRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

type completionsResponse struct {
	Choices []struct {
		Text    string `json:"text"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OllamaCompletions) Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	body, err := json.Marshal(completionsRequest{
		Model:       o.model,
		Prompt:      fmt.Sprintf("System:\n%s\n\nUser:\n%s", systemPrompt, userPrompt),
		Temperature: temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	raw, err := o.caller.Post(ctx, endpoint(o.baseURL, completionsPath), body)
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	text, err := completionText(raw)
	return text, wrap(o.Name(), err)
}

// completionText accepts a reply at choices[0].text or
// choices[0].message.content. A body without choices is returned as compact
// JSON so the caller can show it.
func completionText(raw []byte) (string, error) {
	var resp completionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(resp.Choices) == 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw), nil
		}
		return buf.String(), nil
	}

	first := resp.Choices[0]
	if first.Text != "" {
		return first.Text, nil
	}
	return first.Message.Content, nil
}

// OllamaChat calls Ollama's native chat endpoint with streaming off.
type OllamaChat struct {
	caller  http.Caller
	baseURL string
	model   string
}

var _ Client = (*OllamaChat)(nil)

func NewOllamaChat(caller http.Caller, baseURL, model string) *OllamaChat {
	return &OllamaChat{caller: caller, baseURL: baseURL, model: model}
}

func (o *OllamaChat) Name() string { return "ollama-chat" }

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type ollamaChatResponse struct {
	Message *message `json:"message"`
	Error   string   `json:"error"`
}

func (o *OllamaChat) Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	req := ollamaChatRequest{
		Model:    o.model,
		Messages: conversation(systemPrompt, userPrompt),
	}
	req.Options.Temperature = temperature

	body, err := json.Marshal(req)
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	raw, err := o.caller.Post(ctx, endpoint(o.baseURL, ollamaChatPath), body)
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", wrap(o.Name(), fmt.Errorf("failed to decode response: %w", err))
	}
	if resp.Error != "" {
		return "", wrap(o.Name(), errors.New(resp.Error))
	}
	if resp.Message == nil {
		return "", wrap(o.Name(), errors.New("response has no message"))
	}
	return resp.Message.Content, nil
}
