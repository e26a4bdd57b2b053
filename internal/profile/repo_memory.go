package profile

import (
	"context"
	"sync"
)

// MemoryRepo keeps the profile in memory.
type MemoryRepo struct {
	mu      sync.Mutex
	profile *Profile
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Get(ctx context.Context) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil {
		return Profile{}, ErrNotFound
	}
	return *r.profile, nil
}

func (r *MemoryRepo) Save(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := p
	r.profile = &cp
	return nil
}

func (r *MemoryRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = nil
	return nil
}
