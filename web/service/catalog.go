package service

import (
	"context"
	"errors"

	"sgi-panel/database"
	"sgi-panel/database/model"
)

// ErrUnknownEntity rejects resource names outside the catalog registry.
var ErrUnknownEntity = errors.New("Entidad desconocida")

// CatalogService exposes the generic per-entity persistence operations to
// the controllers. It resolves the resource name once and delegates to the
// repository selected at startup.
type CatalogService struct{}

func (s *CatalogService) repo(name string) (database.Repository, error) {
	if _, ok := model.LookupCatalog(name); !ok {
		return nil, ErrUnknownEntity
	}
	return database.GetRepo(name), nil
}

func (s *CatalogService) List(ctx context.Context, name string) ([]model.Record, error) {
	repo, err := s.repo(name)
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx)
}

func (s *CatalogService) Find(ctx context.Context, name, id string) (model.Record, error) {
	repo, err := s.repo(name)
	if err != nil {
		return nil, err
	}
	return repo.Find(ctx, id)
}

// Create persists a new record and returns the stored form.
func (s *CatalogService) Create(ctx context.Context, name string, rec model.Record) (model.Record, error) {
	repo, err := s.repo(name)
	if err != nil {
		return nil, err
	}
	return repo.Create(ctx, rec)
}

// Update merges the patch into the stored record and returns the result.
func (s *CatalogService) Update(ctx context.Context, name, id string, patch model.Record) (model.Record, error) {
	repo, err := s.repo(name)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return repo.Find(ctx, id)
}

// Remove deletes by identity; unknown identities are not an error.
func (s *CatalogService) Remove(ctx context.Context, name, id string) error {
	repo, err := s.repo(name)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
