package config

import "time"

const (
	defaultBackend       = BackendOllama
	defaultTemperature   = 0.2
	defaultMaxTokens     = 1024
	defaultTimeout       = 60 * time.Second
	defaultUserAgent     = "flytrap"
	defaultCommandPrompt = "task> "
	defaultRole          = "You are a helpful assistant."

	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama2-13b-chat"
	defaultOllamaAPIKey  = "ollama"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"

	defaultCohereModel = "command-r"

	defaultEmbedModel   = "deepseek-r1"
	defaultEmbedTimeout = 30 * time.Second

	defaultShellTimeout = 300 * time.Second
)

// envBindings maps config keys to the environment variables that feed them.
var envBindings = map[string][]string{
	"backend":                    {"FLYTRAP_BACKEND", "MODEL_TYPE"},
	"model":                      {"FLYTRAP_MODEL"},
	"temperature":                {"DEFAULT_TEMPERATURE"},
	"max_tokens":                 {"MAX_TOKENS"},
	"timeout":                    {"BACKEND_TIMEOUT"},
	"user_agent":                 {"FLYTRAP_USER_AGENT"},
	"skip_tls_verify":            {"FLYTRAP_SKIP_TLS_VERIFY"},
	"command_prompt":             {"FLYTRAP_COMMAND_PROMPT"},
	"role":                       {"FLYTRAP_ROLE"},
	"no_color":                   {"FLYTRAP_NO_COLOR"},
	"ollama.base_url":            {"OLLAMA_BASE_URL"},
	"ollama.model":               {"OLLAMA_MODEL"},
	"ollama.api_key":             {"OLLAMA_API_KEY"},
	"openai.base_url":            {"OPENAI_BASE_URL"},
	"openai.model":               {"OPENAI_MODEL"},
	"openai.api_key":             {"OPENAI_API_KEY"},
	"openai.api_key_file":        {"OPENAI_API_KEY_FILE"},
	"cohere.model":               {"COHERE_MODEL"},
	"cohere.api_key":             {"COHERE_API_KEY", "CO_API_KEY"},
	"embed.url":                  {"DEEPSEEK_API_URL"},
	"embed.api_key":              {"DEEPSEEK_API_KEY"},
	"embed.model":                {"DEEPSEEK_MODEL"},
	"embed.timeout":              {"EMBED_TIMEOUT"},
	"agent.auto":                 {"FLYTRAP_AUTO"},
	"agent.shell_timeout":        {"SHELL_TIMEOUT"},
	"agent.work_dir":             {"FLYTRAP_WORK_DIR"},
	"agent.destructive_keywords": {"FLYTRAP_DESTRUCTIVE_KEYWORDS"},
	"agent.shell":                {"FLYTRAP_SHELL"},
}

func defaults() map[string]any {
	return map[string]any{
		"backend":                    defaultBackend,
		"model":                      "",
		"temperature":                defaultTemperature,
		"max_tokens":                 defaultMaxTokens,
		"timeout":                    defaultTimeout,
		"user_agent":                 defaultUserAgent,
		"skip_tls_verify":            false,
		"custom_headers":             map[string]string{},
		"command_prompt":             defaultCommandPrompt,
		"role":                       defaultRole,
		"no_color":                   false,
		"ollama.base_url":            defaultOllamaBaseURL,
		"ollama.model":               defaultOllamaModel,
		"ollama.api_key":             defaultOllamaAPIKey,
		"openai.base_url":            defaultOpenAIBaseURL,
		"openai.model":               defaultOpenAIModel,
		"openai.api_key":             "",
		"openai.api_key_file":        "",
		"cohere.model":               defaultCohereModel,
		"cohere.api_key":             "",
		"embed.url":                  "",
		"embed.api_key":              "",
		"embed.model":                defaultEmbedModel,
		"embed.timeout":              defaultEmbedTimeout,
		"agent.auto":                 false,
		"agent.shell_timeout":        defaultShellTimeout,
		"agent.work_dir":             "",
		"agent.destructive_keywords": []string{},
		"agent.shell":                []string{},
	}
}
