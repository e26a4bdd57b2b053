package profile

import "context"

// Repo persists the single profile record.
type Repo interface {
	Get(ctx context.Context) (Profile, error)
	Save(ctx context.Context, p Profile) error
	Clear(ctx context.Context) error
}
