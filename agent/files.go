package agent

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/mimosa-flytrap/flytrap/internal/fsio"
)

var errNotUTF8 = errors.New("file is not valid UTF-8 text")

// FSIOFileOps implements Files on top of the fsio seam. Relative paths are
// resolved against workDir when one is set.
type FSIOFileOps struct {
	r       fsio.Reader
	w       fsio.Writer
	workDir string
}

var _ Files = FSIOFileOps{}

func NewFSIOFileOps(r fsio.Reader, w fsio.Writer, workDir string) FSIOFileOps {
	return FSIOFileOps{r: r, w: w, workDir: workDir}
}

func (f FSIOFileOps) ReadFile(path string) (string, error) {
	data, err := f.r.ReadFile(f.resolve(path))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, errNotUTF8)
	}
	return string(data), nil
}

// WriteFile creates missing parent directories, then overwrites path.
func (f FSIOFileOps) WriteFile(path string, content string) error {
	full := f.resolve(path)

	if err := f.w.MkdirAll(filepath.Dir(full)); err != nil {
		return err
	}
	return f.w.WriteFile(full, []byte(content))
}

func (f FSIOFileOps) resolve(path string) string {
	if f.workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.workDir, path)
}
