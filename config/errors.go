package config

import "fmt"

// ConfigurationError reports a missing or invalid setting. It is raised when
// a component is built or first used, never swallowed.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

func Missing(setting, env string) ConfigurationError {
	return ConfigurationError{Setting: setting, Reason: fmt.Sprintf("not set (use %s)", env)}
}
