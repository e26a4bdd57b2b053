package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileRepo persists the whole applications collection as one JSON file,
// read-modify-write under a mutex. Concurrent processes are not supported;
// the last writer wins.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo constructs a FileRepo storing its collection at path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) load() ([]Application, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read applications file: %w", err)
	}
	var apps []Application
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("decode applications file: %w", err)
	}
	for i := range apps {
		apps[i] = migrate(apps[i])
	}
	return apps, nil
}

func (r *FileRepo) save(apps []Application) error {
	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write applications file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// List returns all applications, newest first.
func (r *FileRepo) List(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

// Get returns an application by its ID.
func (r *FileRepo) Get(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, err := r.load()
	if err != nil {
		return Application{}, err
	}
	for _, app := range apps {
		if app.ID == id {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

// Create appends a new application to the collection.
func (r *FileRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, err := r.load()
	if err != nil {
		return err
	}
	return r.save(append(apps, app))
}

// Update replaces an existing application in the collection.
func (r *FileRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, err := r.load()
	if err != nil {
		return err
	}
	for i := range apps {
		if apps[i].ID == app.ID {
			apps[i] = app
			return r.save(apps)
		}
	}
	return ErrNotFound
}

// Delete removes an application from the collection.
func (r *FileRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps, err := r.load()
	if err != nil {
		return err
	}
	for i := range apps {
		if apps[i].ID == id {
			return r.save(append(apps[:i], apps[i+1:]...))
		}
	}
	return ErrNotFound
}
