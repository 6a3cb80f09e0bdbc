package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"sgi-panel/database/model"
	"sgi-panel/logger"
	"sgi-panel/util/crypto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultAdminPassword = "admin123"
	adminSeedNote        = "Administrador inicial maestro"
)

// SchemaReconciler aligns the live storage structure with the declared
// entity schemas. It only ever adds: missing tables are created, missing
// columns are appended, nothing is dropped or renamed. Structural failures
// are logged and skipped so a partially reconciled schema still serves.
type SchemaReconciler struct {
	db   *gorm.DB
	once sync.Once
}

func NewSchemaReconciler(db *gorm.DB) *SchemaReconciler {
	return &SchemaReconciler{db: db}
}

// Run executes the three reconciliation steps exactly once per instance:
// ensure tables, ensure optional columns, seed the master account. Running
// against an already reconciled store is a structural no-op.
func (r *SchemaReconciler) Run() {
	r.once.Do(func() {
		for _, schema := range model.AllSchemas() {
			r.ensureTable(schema)
			r.ensureColumns(schema)
		}
		r.seedAdmin()
	})
}

// ensureTable probes the table with a trivial read and creates it from the
// schema's full column set when the backend reports it missing.
func (r *SchemaReconciler) ensureTable(schema model.EntitySchema) {
	var one int
	err := r.db.Raw(fmt.Sprintf("SELECT 1 FROM %q LIMIT 1", schema.Table)).Scan(&one).Error
	if err == nil {
		return
	}
	if !strings.Contains(err.Error(), "no such table") {
		logger.Warningf("probe of table %s failed: %v", schema.Table, err)
		return
	}

	logger.Infof("creating table %s", schema.Table)
	if err := r.db.Exec(schema.CreateDDL()).Error; err != nil {
		logger.Errorf("create table %s failed: %v", schema.Table, err)
	}
}

// ensureColumns checks each optional column against the sqlite catalog and
// appends the missing ones. Each column is independent; a failure is logged
// and the next one is still attempted.
func (r *SchemaReconciler) ensureColumns(schema model.EntitySchema) {
	for _, col := range schema.OptionalColumns() {
		exists, err := r.hasColumn(schema.Table, col.Name)
		if err != nil {
			logger.Warningf("column check %s.%s failed: %v", schema.Table, col.Name, err)
			continue
		}
		if exists {
			continue
		}
		logger.Infof("adding missing column %s to %s", col.Name, schema.Table)
		ddl := fmt.Sprintf("ALTER TABLE %q ADD COLUMN %q %s", schema.Table, col.Name, col.StorageType)
		if err := r.db.Exec(ddl).Error; err != nil {
			logger.Warningf("add column %s.%s failed: %v", schema.Table, col.Name, err)
		}
	}
}

func (r *SchemaReconciler) hasColumn(table, column string) (bool, error) {
	var count int64
	err := r.db.Raw(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, column,
	).Scan(&count).Error
	return count > 0, err
}

// seedAdmin creates the master account when no credentials exist at all. A
// failing count check skips seeding for this startup rather than aborting.
func (r *SchemaReconciler) seedAdmin() {
	var count int64
	if err := r.db.Table(model.Usuarios.Table).Count(&count).Error; err != nil {
		logger.Errorf("credential count check failed, skipping seed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		logger.Errorf("hashing seed password failed: %v", err)
		return
	}
	admin := map[string]any{
		"IDUSUARIO":      uuid.NewString(),
		"USERNAME":       model.AdminUsername,
		"PASSWORD":       hash,
		"ROLE":           model.RoleAdmin,
		"ESTADO":         model.StatusActive,
		"NOTAS":          adminSeedNote,
		"FECHA_CREACION": time.Now(),
	}
	if err := r.db.Table(model.Usuarios.Table).Create(admin).Error; err != nil {
		logger.Errorf("seeding master account failed: %v", err)
		return
	}
	logger.Infof("seeded master account %q", model.AdminUsername)
}
