// Package docstore is the document-store surface the rest of the
// application is written against. The production implementation is
// backed by Firestore; an in-memory implementation backs tests and
// local development.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in the
// addressed collection.
var ErrNotFound = errors.New("document not found")

// MaxBatchOps is the largest number of writes a single atomic batch
// commit may carry. Larger write sets are chunked; atomicity then only
// holds per chunk.
const MaxBatchOps = 500

type deleteSentinel struct{}

// DeleteField marks a field for removal from a stored document. It is
// distinct from nil: writing nil stores a null value, writing
// DeleteField removes the field entirely.
var DeleteField any = deleteSentinel{}

// Document is a raw stored document: its id and its field map.
type Document struct {
	ID   string
	Data map[string]any
}

// Gateway is the minimal document-store contract the services and the
// migration pipeline consume.
type Gateway interface {
	// List returns a finite snapshot of every document in the collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Create writes a new document. An empty id lets the store mint one;
	// the minted id is returned either way.
	Create(ctx context.Context, collection, id string, data map[string]any) (string, error)

	// UpdateFields merges the given fields into an existing document.
	// A DeleteField value removes that field. Returns ErrNotFound when
	// the document does not exist.
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes the document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Batch starts an empty write batch.
	Batch() Batch
}

// Batch accumulates writes and commits them in chunks of at most
// MaxBatchOps operations.
type Batch interface {
	Create(collection, id string, data map[string]any)
	Delete(collection, id string)
	Commit(ctx context.Context) error
}
