package config

import (
	"time"
)

const (
	BackendOllama     = "ollama"
	BackendOllamaChat = "ollama-chat"
	BackendOpenAI     = "openai"
	BackendCohere     = "cohere"
)

// Backends lists the model backends the factory knows how to build.
var Backends = []string{BackendOllama, BackendOllamaChat, BackendOpenAI, BackendCohere}

type Config struct {
	Backend       string            `yaml:"backend" mapstructure:"backend"`
	Model         string            `yaml:"model" mapstructure:"model"`
	Temperature   float64           `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens     int               `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout       time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string            `yaml:"user_agent" mapstructure:"user_agent"`
	SkipTLSVerify bool              `yaml:"skip_tls_verify" mapstructure:"skip_tls_verify"`
	CustomHeaders map[string]string `yaml:"custom_headers" mapstructure:"custom_headers"`
	CommandPrompt string            `yaml:"command_prompt" mapstructure:"command_prompt"`
	Role          string            `yaml:"role" mapstructure:"role"`
	NoColor       bool              `yaml:"no_color" mapstructure:"no_color"`

	Ollama OllamaConfig `yaml:"ollama" mapstructure:"ollama"`
	OpenAI OpenAIConfig `yaml:"openai" mapstructure:"openai"`
	Cohere CohereConfig `yaml:"cohere" mapstructure:"cohere"`
	Embed  EmbedConfig  `yaml:"embed" mapstructure:"embed"`
	Agent  AgentConfig  `yaml:"agent" mapstructure:"agent"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
}

type OpenAIConfig struct {
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	APIKeyFile string `yaml:"api_key_file" mapstructure:"api_key_file"`
}

type CohereConfig struct {
	Model  string `yaml:"model" mapstructure:"model"`
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

type EmbedConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type AgentConfig struct {
	Auto         bool          `yaml:"auto" mapstructure:"auto"`
	ShellTimeout time.Duration `yaml:"shell_timeout" mapstructure:"shell_timeout"`
	WorkDir      string        `yaml:"work_dir" mapstructure:"work_dir"`

	// Empty means the platform default list.
	DestructiveKeywords []string `yaml:"destructive_keywords" mapstructure:"destructive_keywords"`
	// Empty means the platform default shell.
	Shell []string `yaml:"shell" mapstructure:"shell"`
}

// ModelFor returns the model for the selected backend; a top-level Model wins.
func (c Config) ModelFor(backend string) string {
	if c.Model != "" {
		return c.Model
	}

	switch backend {
	case BackendOpenAI:
		return c.OpenAI.Model
	case BackendCohere:
		return c.Cohere.Model
	default:
		return c.Ollama.Model
	}
}
