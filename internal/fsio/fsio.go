package fsio

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

type Reader interface {
	ReadFile(name string) ([]byte, error)
}

type Writer interface {
	MkdirAll(dir string) error
	WriteFile(name string, data []byte) error
}

// FS is the afero-backed implementation of Reader and Writer.
type FS struct {
	fs afero.Fs
}

var (
	_ Reader = (*FS)(nil)
	_ Writer = (*FS)(nil)
)

func New(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

func NewOS() *FS {
	return New(afero.NewOsFs())
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(f.fs, filepath.Clean(name))
}

func (f *FS) MkdirAll(dir string) error {
	return f.fs.MkdirAll(dir, DirPerm)
}

// WriteFile truncates and overwrites name. No temp file, no rename.
func (f *FS) WriteFile(name string, data []byte) error {
	return afero.WriteFile(f.fs, filepath.Clean(name), data, FilePerm)
}
