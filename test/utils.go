package test

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir is the fixture directory next to this file.
func DataDir() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "data")
}

// FileToBytes reads a canned backend response from test/data.
func FileToBytes(fileName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(DataDir(), fileName))
}
