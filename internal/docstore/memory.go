package docstore

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Gateway used by tests and local
// development. List returns documents in insertion order, which keeps
// migration runs deterministic.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	order       map[string][]string

	// Writes counts every mutating call, so tests can assert that a
	// dry run touched nothing.
	Writes int
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]Document, 0, len(s.order[collection]))
	for _, id := range s.order[collection] {
		docs = append(docs, Document{ID: id, Data: maps.Clone(s.collections[collection][id])})
	}

	return docs, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}

	return &Document{ID: id, Data: maps.Clone(data)}, nil
}

func (s *MemoryStore) Create(_ context.Context, collection, id string, data map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}

	s.put(collection, id, maps.Clone(data))
	s.Writes++

	return id, nil
}

func (s *MemoryStore) UpdateFields(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	for k, v := range fields {
		if v == DeleteField {
			delete(data, k)
			continue
		}

		data[k] = v
	}

	s.Writes++

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return nil
	}

	delete(s.collections[collection], id)

	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}

	s.Writes++

	return nil
}

func (s *MemoryStore) Batch() Batch {
	return &memoryBatch{store: s}
}

// put assumes the lock is held.
func (s *MemoryStore) put(collection, id string, data map[string]any) {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}

	if _, exists := s.collections[collection][id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}

	s.collections[collection][id] = data
}

type memoryBatch struct {
	store *MemoryStore
	ops   []batchOp
}

func (b *memoryBatch) Create(collection, id string, data map[string]any) {
	b.ops = append(b.ops, batchOp{kind: batchOpCreate, collection: collection, id: id, data: data})
}

func (b *memoryBatch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{kind: batchOpDelete, collection: collection, id: id})
}

func (b *memoryBatch) Commit(ctx context.Context) error {
	for _, op := range b.ops {
		if op.kind == batchOpDelete {
			if err := b.store.Delete(ctx, op.collection, op.id); err != nil {
				return err
			}

			continue
		}

		if _, err := b.store.Create(ctx, op.collection, op.id, op.data); err != nil {
			return err
		}
	}

	b.ops = nil

	return nil
}
