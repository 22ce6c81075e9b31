package bank

import (
	"context"
	"errors"
)

// ErrStoreNotFound marks a configured store location that does not exist.
// Nothing has been mutated when it is returned.
var ErrStoreNotFound = errors.New("question store not found")

// Store is the persistent question bank. Load reads the full row set once;
// Save rewrites the full row set. Single writer, last writer wins.
type Store interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}
