package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mimosa-flytrap/flytrap/internal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "config.yaml"
	DefaultDotEnvFile = ".env"
	maskedSecret      = "********"
)

// Manager layers defaults < config file < environment < flags.
type Manager struct {
	v          *viper.Viper
	configFile string
	Config     Config
}

type Option func(*Manager)

// WithConfigFile pins the config file. Without it the file is looked up in
// the config home and silently skipped when absent.
func WithConfigFile(path string) Option {
	return func(m *Manager) {
		if p := strings.TrimSpace(path); p != "" {
			m.configFile = p
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{v: viper.New()}
	for _, o := range opts {
		o(m)
	}

	for key, value := range defaults() {
		m.v.SetDefault(key, value)
	}
	for key, envs := range envBindings {
		_ = m.v.BindEnv(append([]string{key}, envs...)...)
	}

	return m
}

// BindFlags lets explicitly set CLI flags win over every other source.
// Each entry maps a config key to a flag name in fs.
func (m *Manager) BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q for config key %q", name, key)
		}
		if err := m.v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the config file if there is one, decodes every source into
// Config and validates the result.
func (m *Manager) Load() (Config, error) {
	path, explicit, err := m.configPath()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		m.v.SetConfigFile(path)
		m.v.SetConfigType("yaml")
		if err := m.v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg, err = resolveSecrets(cfg)
	if err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	m.Config = cfg
	return cfg, nil
}

// ShowConfig serializes the current configuration to YAML with secrets masked.
func (m *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(Masked(m.Config))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (m *Manager) configPath() (string, bool, error) {
	if m.configFile != "" {
		return m.configFile, true, nil
	}

	home, err := internal.GetConfigHome()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(home, DefaultConfigFile), false, nil
}

// LoadDotEnv exports the variables of a dotenv file. Variables that are
// already set keep their value. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func Validate(cfg Config) error {
	if !slices.Contains(Backends, cfg.Backend) {
		return ConfigurationError{
			Setting: "backend",
			Reason:  fmt.Sprintf("unknown backend %q (want one of %s)", cfg.Backend, strings.Join(Backends, ", ")),
		}
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return ConfigurationError{Setting: "temperature", Reason: fmt.Sprintf("%v is outside [0, 2]", cfg.Temperature)}
	}
	if cfg.Timeout <= 0 {
		return ConfigurationError{Setting: "timeout", Reason: "must be positive"}
	}
	if cfg.Agent.ShellTimeout <= 0 {
		return ConfigurationError{Setting: "agent.shell_timeout", Reason: "must be positive"}
	}
	return nil
}

func Masked(cfg Config) Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return maskedSecret
	}

	cfg.Ollama.APIKey = mask(cfg.Ollama.APIKey)
	cfg.OpenAI.APIKey = mask(cfg.OpenAI.APIKey)
	cfg.Cohere.APIKey = mask(cfg.Cohere.APIKey)
	cfg.Embed.APIKey = mask(cfg.Embed.APIKey)
	return cfg
}

func resolveSecrets(cfg Config) (Config, error) {
	if cfg.OpenAI.APIKey == "" && cfg.OpenAI.APIKeyFile != "" {
		key, err := ReadAPIKeyFile(cfg.OpenAI.APIKeyFile)
		if err != nil {
			return Config{}, err
		}
		cfg.OpenAI.APIKey = key
	}
	return cfg, nil
}
