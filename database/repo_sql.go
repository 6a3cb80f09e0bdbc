package database

import (
	"context"
	"fmt"

	"sgi-panel/database/model"

	"gorm.io/gorm"
)

// SQLRepository serves one entity table through gorm. Records travel as
// attribute maps; only attributes declared by the schema ever reach the
// database.
type SQLRepository struct {
	db     *gorm.DB
	schema model.EntitySchema
}

func NewSQLRepository(db *gorm.DB, schema model.EntitySchema) *SQLRepository {
	return &SQLRepository{db: db, schema: schema}
}

func (r *SQLRepository) Schema() model.EntitySchema {
	return r.schema
}

func (r *SQLRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.schema.Table)
}

// filter drops attributes the schema does not declare.
func (r *SQLRepository) filter(rec model.Record) model.Record {
	out := make(model.Record, len(rec))
	for key, value := range rec {
		if r.schema.HasColumn(key) {
			out[key] = value
		}
	}
	return out
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]model.Record, error) {
	var rows []map[string]any
	err := r.table(ctx).
		Order(fmt.Sprintf("%q ASC", r.schema.IDField)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Record(row))
	}
	return out, nil
}

func (r *SQLRepository) Find(ctx context.Context, id string) (model.Record, error) {
	var row map[string]any
	err := r.table(ctx).
		Where(fmt.Sprintf("%q = ?", r.schema.IDField), id).
		Take(&row).
		Error
	if err != nil {
		return nil, err
	}
	return model.Record(row), nil
}

func (r *SQLRepository) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	rec = r.filter(rec)
	id, ok := rec[r.schema.IDField].(string)
	if !ok || id == "" {
		return nil, ErrMissingID
	}

	_, err := r.Find(ctx, id)
	if err == nil {
		return nil, ErrExists
	} else if !IsNotFound(err) {
		return nil, err
	}

	if err := r.table(ctx).Create(map[string]any(rec)).Error; err != nil {
		return nil, err
	}
	return r.Find(ctx, id)
}

func (r *SQLRepository) Update(ctx context.Context, id string, patch model.Record) error {
	patch = r.filter(patch)
	// identity is immutable once persisted
	delete(patch, r.schema.IDField)
	if len(patch) == 0 {
		return nil
	}
	tx := r.table(ctx).
		Where(fmt.Sprintf("%q = ?", r.schema.IDField), id).
		Updates(map[string]any(patch))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %q WHERE %q = ?", r.schema.Table, r.schema.IDField), id).
		Error
}
