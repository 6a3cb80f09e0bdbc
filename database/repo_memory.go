package database

import (
	"context"
	"sort"
	"sync"

	"sgi-panel/database/model"
	"sgi-panel/util/json_util"

	"gorm.io/gorm"
)

// MemoryRepository is the in-memory stand-in for the sqlite backend. It
// implements the same contract, including idempotent deletes and not-found
// errors, so the rest of the panel cannot tell the two apart.
type MemoryRepository struct {
	mu     sync.RWMutex
	schema model.EntitySchema
	rows   map[string]model.Record
}

func NewMemoryRepository(schema model.EntitySchema) *MemoryRepository {
	return &MemoryRepository{
		schema: schema,
		rows:   make(map[string]model.Record),
	}
}

func (r *MemoryRepository) Schema() model.EntitySchema {
	return r.schema
}

func (r *MemoryRepository) filter(rec model.Record) model.Record {
	out := make(model.Record, len(rec))
	for key, value := range rec {
		if r.schema.HasColumn(key) {
			out[key] = value
		}
	}
	return out
}

// clone round-trips through JSON so callers never share backing maps with
// the store. This also normalizes scalars the way the sqlite driver does.
func (r *MemoryRepository) clone(rec model.Record) (model.Record, error) {
	return json_util.Clone(rec)
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]model.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := r.clone(r.rows[id])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *MemoryRepository) Find(_ context.Context, id string) (model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clone(rec)
}

func (r *MemoryRepository) Create(_ context.Context, rec model.Record) (model.Record, error) {
	rec = r.filter(rec)
	id, ok := rec[r.schema.IDField].(string)
	if !ok || id == "" {
		return nil, ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; exists {
		return nil, ErrExists
	}
	stored, err := r.clone(rec)
	if err != nil {
		return nil, err
	}
	r.rows[id] = stored
	return r.clone(stored)
}

func (r *MemoryRepository) Update(_ context.Context, id string, patch model.Record) error {
	patch = r.filter(patch)
	delete(patch, r.schema.IDField)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	merged, err := r.clone(rec)
	if err != nil {
		return err
	}
	for key, value := range patch {
		merged[key] = value
	}
	r.rows[id] = merged
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}
