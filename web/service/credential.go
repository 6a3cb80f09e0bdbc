// Package service implements the backend logic of the panel: the credential
// lifecycle and the generic catalog operations the controllers expose.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"sgi-panel/database"
	"sgi-panel/database/model"
	"sgi-panel/logger"
	"sgi-panel/util/crypto"

	"github.com/google/uuid"
)

var (
	// ErrBadCredentials is the uniform authentication failure. It never
	// distinguishes an unknown user from a wrong password.
	ErrBadCredentials = errors.New("Usuario o contraseña incorrectos")

	// ErrDuplicateUsername signals a conflict on the normalized username.
	ErrDuplicateUsername = errors.New("Usuario ya existe")

	// ErrMissingFields rejects account creation without both credentials.
	ErrMissingFields = errors.New("Usuario y contraseña son requeridos")
)

const seedPassword = "admin123"

// CredentialService owns account creation, normalization, hashing and login
// validation. It sits on the usuarios repository; plaintext passwords never
// leave it and hashes never leave the backend boundary.
type CredentialService struct {
	repo database.Repository
}

func NewCredentialService() *CredentialService {
	return &CredentialService{repo: database.GetRepo(model.Usuarios.Name)}
}

// ValidateCredential checks a username/password pair. On success it returns
// the record with the hash stripped; any failure, including lookup errors,
// collapses into ErrBadCredentials.
func (s *CredentialService) ValidateCredential(ctx context.Context, username, plaintext string) (model.CredentialRecord, error) {
	normalized := model.NormalizeUsername(username)

	rec, err := s.findByUsername(ctx, normalized)
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("credential lookup failed:", err)
		}
		return model.CredentialRecord{}, ErrBadCredentials
	}
	if !crypto.CheckPasswordHash(rec.PasswordHash, plaintext) {
		return model.CredentialRecord{}, ErrBadCredentials
	}
	return rec.Sanitized(), nil
}

// CreateCredential normalizes and persists a new account. The input record
// may carry either upper- or lower-cased attribute names; it is collapsed
// into the canonical shape here and never carried onward dual-cased.
func (s *CredentialService) CreateCredential(ctx context.Context, input model.Record) (model.CredentialRecord, error) {
	username := model.NormalizeUsername(pick(input, "USERNAME", "username"))
	password := pick(input, "PASSWORD", "password")
	if username == "" || password == "" {
		return model.CredentialRecord{}, ErrMissingFields
	}

	if _, err := s.findByUsername(ctx, username); err == nil {
		return model.CredentialRecord{}, ErrDuplicateUsername
	} else if !database.IsNotFound(err) {
		return model.CredentialRecord{}, err
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return model.CredentialRecord{}, err
	}

	rec := model.CredentialRecord{
		Id:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         model.NormalizeRole(pick(input, "ROLE", "role", "ROL")),
		Status:       model.NormalizeStatus(pick(input, "ESTADO", "estado", "status")),
		Notes:        pick(input, "NOTAS", "notas", "notes"),
		CreatedAt:    time.Now(),
	}
	if _, err := s.repo.Create(ctx, toRecord(rec)); err != nil {
		return model.CredentialRecord{}, err
	}
	return rec.Sanitized(), nil
}

// SeedCredential creates the master account. It reports created=false when
// any credential already exists; the reconciler is the normal caller, the
// /auth/seed route the explicit one.
func (s *CredentialService) SeedCredential(ctx context.Context) (model.CredentialRecord, bool, error) {
	existing, err := s.ListCredentials(ctx)
	if err != nil {
		return model.CredentialRecord{}, false, err
	}
	if len(existing) > 0 {
		for _, rec := range existing {
			if rec.Username == model.AdminUsername {
				return rec, false, nil
			}
		}
		return model.CredentialRecord{}, false, nil
	}

	rec, err := s.CreateCredential(ctx, model.Record{
		"USERNAME": model.AdminUsername,
		"PASSWORD": seedPassword,
		"ROLE":     model.RoleAdmin,
		"NOTAS":    "Administrador inicial maestro",
	})
	if err != nil {
		return model.CredentialRecord{}, false, err
	}
	logger.Infof("seeded master account %q", rec.Username)
	return rec, true, nil
}

// ListCredentials returns every account ordered by creation time descending,
// hashes stripped.
func (s *CredentialService) ListCredentials(ctx context.Context) ([]model.CredentialRecord, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CredentialRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRecord(row).Sanitized())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RemoveCredential deletes by identity. Deleting an unknown id is not an
// error; the master-account guard is the caller's responsibility.
func (s *CredentialService) RemoveCredential(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ResetMasterPassword rehashes the seeded master account's password.
func (s *CredentialService) ResetMasterPassword(ctx context.Context, plaintext string) error {
	if plaintext == "" {
		return ErrMissingFields
	}
	rec, err := s.findByUsername(ctx, model.AdminUsername)
	if err != nil {
		return err
	}
	hash, err := crypto.HashPasswordAsBcrypt(plaintext)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, rec.Id, model.Record{"PASSWORD": hash})
}

// FindCredential returns one account, hash stripped.
func (s *CredentialService) FindCredential(ctx context.Context, id string) (model.CredentialRecord, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return model.CredentialRecord{}, err
	}
	return fromRecord(row).Sanitized(), nil
}

func (s *CredentialService) findByUsername(ctx context.Context, normalized string) (model.CredentialRecord, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return model.CredentialRecord{}, err
	}
	for _, row := range rows {
		rec := fromRecord(row)
		if rec.Username == normalized {
			return rec, nil
		}
	}
	return model.CredentialRecord{}, database.ErrRecordNotFound
}

func pick(rec model.Record, keys ...string) string {
	for _, key := range keys {
		if value, ok := rec[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func toRecord(c model.CredentialRecord) model.Record {
	return model.Record{
		"IDUSUARIO":      c.Id,
		"USERNAME":       c.Username,
		"PASSWORD":       c.PasswordHash,
		"ROLE":           c.Role,
		"ESTADO":         c.Status,
		"NOTAS":          c.Notes,
		"FECHA_CREACION": c.CreatedAt.Format(time.RFC3339),
	}
}

func fromRecord(rec model.Record) model.CredentialRecord {
	return model.CredentialRecord{
		Id:           pick(rec, "IDUSUARIO", "ID", "id"),
		Username:     pick(rec, "USERNAME", "username"),
		PasswordHash: pick(rec, "PASSWORD", "PASSWORD_HASH"),
		Role:         model.NormalizeRole(pick(rec, "ROLE", "ROL", "role")),
		Status:       model.NormalizeStatus(pick(rec, "ESTADO", "estado", "status")),
		Notes:        pick(rec, "NOTAS", "notas", "notes"),
		CreatedAt:    parseCreatedAt(rec["FECHA_CREACION"]),
	}
}

func parseCreatedAt(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
