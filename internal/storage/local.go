package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalDisk stores files under a root directory and serves them below a
// URL prefix (MEDIA_URL).
type LocalDisk struct {
	root    string
	baseURL string
}

// NewLocalDisk creates a disk rooted at root. A relative root is resolved
// against the working directory.
func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("storage/local: resolve root: %w", err)
		}
		root = abs
	}
	return &LocalDisk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the absolute directory files are written to.
func (d *LocalDisk) Root() string {
	return d.root
}

// abs maps path onto the filesystem, refusing to escape the root.
func (d *LocalDisk) abs(path string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(d.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage/local: invalid path %q", path)
	}
	return full, nil
}

func (d *LocalDisk) Put(_ context.Context, path string, r io.Reader, _ string) error {
	full, err := d.abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

func (d *LocalDisk) Delete(_ context.Context, path string) error {
	full, err := d.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (d *LocalDisk) Exists(_ context.Context, path string) (bool, error) {
	full, err := d.abs(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("storage/local: stat %s: %w", path, err)
}

func (d *LocalDisk) URL(_ context.Context, path string) (string, error) {
	return d.baseURL + "/" + strings.TrimLeft(path, "/"), nil
}
