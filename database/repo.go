package database

import (
	"context"
	"errors"

	"sgi-panel/database/model"
)

var (
	// ErrMissingID is returned when a create arrives without the schema's
	// identity attribute. The repositories never synthesize identity values
	// for the business catalogs.
	ErrMissingID = errors.New("missing identity value")

	// ErrExists is returned when a create collides with a stored identity.
	ErrExists = errors.New("record already exists")
)

// Repository is the generic per-entity persistence contract. Delete is
// idempotent; Update is a partial merge against the stored record. Every
// call is a single synchronous round trip.
type Repository interface {
	Schema() model.EntitySchema
	FindAll(ctx context.Context) ([]model.Record, error)
	Find(ctx context.Context, id string) (model.Record, error)
	Create(ctx context.Context, rec model.Record) (model.Record, error)
	Update(ctx context.Context, id string, patch model.Record) error
	Delete(ctx context.Context, id string) error
}

var repos map[string]Repository

// InitStores builds one repository per schema, backed either by the live
// sqlite database or by the in-memory store. The choice is made once at
// startup; call sites never switch between the two.
func InitStores(kind string) {
	repos = make(map[string]Repository, len(model.AllSchemas()))
	for _, schema := range model.AllSchemas() {
		if kind == "memory" {
			repos[schema.Name] = NewMemoryRepository(schema)
		} else {
			repos[schema.Name] = NewSQLRepository(db, schema)
		}
	}
}

// GetRepo returns the repository for a schema name registered by InitStores.
func GetRepo(name string) Repository {
	return repos[name]
}
