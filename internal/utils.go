package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ConfigHomeEnv     = "FLYTRAP_CONFIG_HOME"
	CacheHomeEnv      = "FLYTRAP_CACHE_HOME"
	DefaultConfigDir  = ".flytrap"
	DefaultCacheDir   = "cache"
	SlugPostfixLength = 8
)

func GenerateUniqueSlug(prefix string) string {
	guid := uuid.New()
	return prefix + guid.String()[:SlugPostfixLength]
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

func GetCacheHome() (string, error) {
	if tmp := os.Getenv(CacheHomeEnv); tmp != "" {
		return tmp, nil
	}

	configHome, err := GetConfigHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(configHome, DefaultCacheDir), nil
}
