package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const maxAPIKeyFileBytes int64 = 10 * 1024 // 10KB

// ReadAPIKeyFile reads a credential kept outside the environment. The file
// must be a small regular file; surrounding whitespace is dropped.
func ReadAPIKeyFile(path string) (string, error) {
	return ReadAPIKeyFileFs(afero.NewOsFs(), path)
}

func ReadAPIKeyFileFs(fsys afero.Fs, path string) (string, error) {
	clean := filepath.Clean(path)

	st, err := fsys.Stat(clean)
	if err != nil {
		return "", fmt.Errorf("failed to open api key file: %w", err)
	}
	if !st.Mode().IsRegular() {
		return "", errors.New("api key file must be a regular file")
	}
	if st.Size() > maxAPIKeyFileBytes {
		return "", fmt.Errorf("api key file too large (max %d bytes)", maxAPIKeyFileBytes)
	}

	f, err := fsys.Open(clean)
	if err != nil {
		return "", fmt.Errorf("failed to open api key file: %w", err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxAPIKeyFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read api key file: %w", err)
	}
	if int64(len(b)) > maxAPIKeyFileBytes {
		return "", fmt.Errorf("api key file too large (max %d bytes)", maxAPIKeyFileBytes)
	}

	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", errors.New("api key file is empty")
	}
	return key, nil
}

func MaxAPIKeyFileBytesForTest() int64 { return maxAPIKeyFileBytes }
