package model

import (
	"fmt"
	"strings"
)

// ColumnSpec describes one storage column. Optional columns are the ones the
// reconciler adds to pre-existing tables; additions are the only structural
// change ever applied.
type ColumnSpec struct {
	Name        string
	StorageType string // sqlite column type, may carry a DEFAULT clause
	PrimaryKey  bool
	Optional    bool
}

// EntitySchema describes one stored entity: its resource name on the wire,
// its table, its identity column and the full ordered column set.
type EntitySchema struct {
	Name    string // resource path segment, e.g. "clientes"
	Table   string
	IDField string
	Columns []ColumnSpec
}

// HasColumn reports whether name is a declared attribute of the schema.
func (s EntitySchema) HasColumn(name string) bool {
	for _, col := range s.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// OptionalColumns returns the ordered additive column list for the
// reconciler.
func (s EntitySchema) OptionalColumns() []ColumnSpec {
	var out []ColumnSpec
	for _, col := range s.Columns {
		if col.Optional {
			out = append(out, col)
		}
	}
	return out
}

// CreateDDL builds the CREATE TABLE statement for the full column set.
func (s EntitySchema) CreateDDL() string {
	defs := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		def := fmt.Sprintf("%q %s", col.Name, col.StorageType)
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %q (%s)", s.Table, strings.Join(defs, ", "))
}

var (
	// Usuarios uses a service-generated uuid string key, a textual status
	// and a single ROLE column. The four trailing columns arrived after the
	// table shipped, so the reconciler treats them as additive.
	Usuarios = EntitySchema{
		Name:    "usuarios",
		Table:   "SGI_USUARIOS",
		IDField: "IDUSUARIO",
		Columns: []ColumnSpec{
			{Name: "IDUSUARIO", StorageType: "TEXT", PrimaryKey: true},
			{Name: "USERNAME", StorageType: "TEXT UNIQUE NOT NULL"},
			{Name: "PASSWORD", StorageType: "TEXT NOT NULL"},
			{Name: "ESTADO", StorageType: "TEXT DEFAULT 'ACTIVO'", Optional: true},
			{Name: "NOTAS", StorageType: "TEXT", Optional: true},
			{Name: "FECHA_CREACION", StorageType: "DATETIME DEFAULT CURRENT_TIMESTAMP", Optional: true},
			{Name: "ROLE", StorageType: "TEXT DEFAULT 'USER'", Optional: true},
		},
	}

	// The business catalogs carry caller-supplied printed codes as primary
	// keys, written on create and never reassigned.
	Clientes = EntitySchema{
		Name:    "clientes",
		Table:   "SGI_CLIENTES",
		IDField: "IDCLIENTE",
		Columns: []ColumnSpec{
			{Name: "IDCLIENTE", StorageType: "TEXT", PrimaryKey: true},
			{Name: "NOM_CLIEN", StorageType: "TEXT"},
			{Name: "APEL_CLIEN", StorageType: "TEXT"},
			{Name: "DIR_CLIEN", StorageType: "TEXT"},
			{Name: "TEL_CLIEN", StorageType: "NUMERIC"},
		},
	}

	Proveedores = EntitySchema{
		Name:    "proveedores",
		Table:   "SGI_PROVEEDORES",
		IDField: "IDPROVEEDORES",
		Columns: []ColumnSpec{
			{Name: "IDPROVEEDORES", StorageType: "TEXT", PrimaryKey: true},
			{Name: "NOM_PROVEEDOR", StorageType: "TEXT"},
			{Name: "DIR_PROVEEDOR", StorageType: "TEXT"},
			{Name: "TEL_PROVEEDOR", StorageType: "NUMERIC"},
		},
	}

	Productos = EntitySchema{
		Name:    "productos",
		Table:   "SGI_PRODUCTOS",
		IDField: "IDPRODUCTOS",
		Columns: []ColumnSpec{
			{Name: "IDPRODUCTOS", StorageType: "TEXT", PrimaryKey: true},
			{Name: "NOM_PROD", StorageType: "TEXT"},
			{Name: "DESC_PROD", StorageType: "TEXT"},
			{Name: "PROVEEDORES_IDPROVEEDORES", StorageType: "TEXT"},
		},
	}

	Facturas = EntitySchema{
		Name:    "facturas",
		Table:   "SGI_FACTURAS",
		IDField: "IDFACTURAS",
		Columns: []ColumnSpec{
			{Name: "IDFACTURAS", StorageType: "TEXT", PrimaryKey: true},
			{Name: "FECHA_FACT", StorageType: "TEXT"},
			{Name: "CANT_FACT", StorageType: "NUMERIC"},
			{Name: "PROD_FACT", StorageType: "TEXT"},
			{Name: "VALOR_UNI", StorageType: "NUMERIC"},
			{Name: "VALOR_TOTAL", StorageType: "NUMERIC"},
			{Name: "VALOR_PAGR", StorageType: "NUMERIC", Optional: true},
		},
	}

	Pedidos = EntitySchema{
		Name:    "pedidos",
		Table:   "SGI_PEDIDOS",
		IDField: "IDPEDIDOS",
		Columns: []ColumnSpec{
			{Name: "IDPEDIDOS", StorageType: "TEXT", PrimaryKey: true},
			{Name: "FECHA_PED", StorageType: "TEXT"},
			{Name: "PRODUCTO_PED", StorageType: "TEXT"},
			{Name: "CANT_PED", StorageType: "NUMERIC"},
			{Name: "VALOR_PED", StorageType: "NUMERIC"},
		},
	}
)

// Catalogs lists the business entities served under the generic CRUD routes.
// Usuarios stays off this list; accounts go through their own routes.
func Catalogs() []EntitySchema {
	return []EntitySchema{Clientes, Proveedores, Productos, Facturas, Pedidos}
}

// AllSchemas is every table the reconciler maintains.
func AllSchemas() []EntitySchema {
	return append(Catalogs(), Usuarios)
}

// LookupCatalog resolves a resource path segment to its catalog schema.
func LookupCatalog(name string) (EntitySchema, bool) {
	for _, s := range Catalogs() {
		if s.Name == name {
			return s, true
		}
	}
	return EntitySchema{}, false
}
