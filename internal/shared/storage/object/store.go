package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Objects are grouped by category ("exports", "postings", ...).
type ObjectStore interface {
	Save(ctx context.Context, category string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
