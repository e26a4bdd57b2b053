package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores applications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Application)}
}

// List returns all applications, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	apps := make([]Application, 0, len(r.byID))
	for _, app := range r.byID {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

// Get returns an application by its ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// Create stores a new application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[app.ID] = app
	return nil
}

// Update replaces an existing application.
func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[app.ID]; !ok {
		return ErrNotFound
	}
	r.byID[app.ID] = app
	return nil
}

// Delete removes an application.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
