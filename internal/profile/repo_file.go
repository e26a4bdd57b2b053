package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileRepo persists the profile as one JSON file, read-modify-write under a
// mutex. Concurrent processes are not supported; the last writer wins.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo constructs a FileRepo storing the profile at path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) Get(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("read profile file: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile file: %w", err)
	}
	return p, nil
}

func (r *FileRepo) Save(ctx context.Context, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRepo) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove profile file: %w", err)
	}
	return nil
}
