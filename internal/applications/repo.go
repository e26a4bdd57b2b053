package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	List(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id string) (Application, error)
	Create(ctx context.Context, app Application) error
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, id string) error
}
