package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Gateway on a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]Document, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", collection, err)
		}

		docs = append(docs, Document{ID: doc.Ref.ID, Data: doc.Data()})
	}

	return docs, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("getting %s/%s: %w", collection, id, err)
	}

	return &Document{ID: doc.Ref.ID, Data: doc.Data()}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection, id string, data map[string]any) (string, error) {
	if id == "" {
		ref, _, err := s.client.Collection(collection).Add(ctx, data)
		if err != nil {
			return "", fmt.Errorf("creating in %s: %w", collection, err)
		}

		return ref.ID, nil
	}

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return "", fmt.Errorf("creating %s/%s: %w", collection, id, err)
	}

	return id, nil
}

func (s *FirestoreStore) UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))

	for k, v := range fields {
		if v == DeleteField {
			v = firestore.Delete
		}

		updates = append(updates, firestore.Update{Path: k, Value: v})
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}

		return fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *FirestoreStore) Batch() Batch {
	return &firestoreBatch{store: s}
}

type batchOpKind int

const (
	batchOpCreate batchOpKind = iota
	batchOpDelete
)

type batchOp struct {
	kind       batchOpKind
	collection string
	id         string
	data       map[string]any
}

type firestoreBatch struct {
	store *FirestoreStore
	ops   []batchOp
}

func (b *firestoreBatch) Create(collection, id string, data map[string]any) {
	b.ops = append(b.ops, batchOp{kind: batchOpCreate, collection: collection, id: id, data: data})
}

func (b *firestoreBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{kind: batchOpDelete, collection: collection, id: id})
}

// Commit flushes the queued writes in chunks of MaxBatchOps. Each chunk
// commits atomically; the whole set does not.
func (b *firestoreBatch) Commit(ctx context.Context) error {
	for start := 0; start < len(b.ops); start += MaxBatchOps {
		end := min(start+MaxBatchOps, len(b.ops))

		wb := b.store.client.Batch()

		for _, op := range b.ops[start:end] {
			ref := b.store.client.Collection(op.collection).Doc(op.id)
			if op.kind == batchOpDelete {
				wb.Delete(ref)
			} else {
				wb.Set(ref, op.data)
			}
		}

		if _, err := wb.Commit(ctx); err != nil {
			return fmt.Errorf("committing batch chunk: %w", err)
		}
	}

	b.ops = nil

	return nil
}
