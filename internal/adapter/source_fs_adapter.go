// Package adapter contains the infrastructure adapters of the shellmorph CLI.
package adapter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SourceFSAdapter hides file and stdin access from the domain so the
// workflow can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a script from disk.
	ReadFile(path string) ([]byte, error)

	// ReadStdin reads standard input to EOF.
	ReadStdin() ([]byte, error)

	// WriteFile writes content, creating parent directories when needed.
	WriteFile(path string, content []byte, perm os.FileMode) error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct {
	stdin io.Reader
}

// NewLocalSourceFSAdapter reads from os.Stdin.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{stdin: os.Stdin}
}

// NewLocalSourceFSAdapterWithStdin reads standard input from r.
func NewLocalSourceFSAdapterWithStdin(r io.Reader) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{stdin: r}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

// ReadStdin reads all of standard input.
func (a *LocalSourceFSAdapter) ReadStdin() ([]byte, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	return data, nil
}

// WriteFile writes content to path with perm. The mode is applied even when
// the file already exists.
func (a *LocalSourceFSAdapter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, content, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	return nil
}
