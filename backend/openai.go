package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mimosa-flytrap/flytrap/http"
)

const chatCompletionsPath = "/chat/completions"

// OpenAI calls a chat completions endpoint: the hosted API, or Ollama's
// OpenAI-compatible one under /v1. Authentication lives in the caller.
type OpenAI struct {
	caller    http.Caller
	baseURL   string
	model     string
	maxTokens int
}

var _ Client = (*OpenAI)(nil)

func NewOpenAI(caller http.Caller, baseURL, model string, maxTokens int) *OpenAI {
	return &OpenAI{caller: caller, baseURL: baseURL, model: model, maxTokens: maxTokens}
}

func (o *OpenAI) Name() string { return "openai" }

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Send(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	body, err := json.Marshal(chatCompletionsRequest{
		Model:       o.model,
		Messages:    conversation(systemPrompt, userPrompt),
		Temperature: temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	raw, err := o.caller.Post(ctx, endpoint(o.baseURL, chatCompletionsPath), body)
	if err != nil {
		return "", wrap(o.Name(), err)
	}

	var resp chatCompletionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", wrap(o.Name(), fmt.Errorf("failed to decode response: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", wrap(o.Name(), errors.New("no responses returned"))
	}
	return resp.Choices[0].Message.Content, nil
}
