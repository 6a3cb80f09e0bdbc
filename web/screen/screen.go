// Package screen wires the generic UI engines to the concrete SGI entities:
// per-catalog field and column schemas, reference lookups and submit
// derivations. The engines themselves stay entity-agnostic.
package screen

import (
	"context"
	"fmt"

	"sgi-panel/database"
	"sgi-panel/database/model"
	"sgi-panel/web/ui"
)

// Screen is one entity's list/edit configuration. Build assembles the
// descriptors, loading reference data (e.g. the supplier catalog) when the
// screen needs it. Transform, when set, post-processes a submitted record
// before it is persisted.
type Screen struct {
	Schema    model.EntitySchema
	Title     string
	Subtitle  string
	Transform func(model.Record) model.Record

	build func(ctx context.Context) ([]ui.FieldDescriptor, []ui.ColumnDescriptor, error)
}

// Build returns the field and column descriptors for the screen.
func (s *Screen) Build(ctx context.Context) ([]ui.FieldDescriptor, []ui.ColumnDescriptor, error) {
	return s.build(ctx)
}

// Lookup resolves a catalog resource name to its screen.
func Lookup(name string) (*Screen, bool) {
	switch name {
	case model.Clientes.Name:
		return Clientes(), true
	case model.Proveedores.Name:
		return Proveedores(), true
	case model.Productos.Name:
		return Productos(), true
	case model.Facturas.Name:
		return Facturas(), true
	case model.Pedidos.Name:
		return Pedidos(), true
	}
	return nil, false
}

func static(fields []ui.FieldDescriptor, columns []ui.ColumnDescriptor) func(context.Context) ([]ui.FieldDescriptor, []ui.ColumnDescriptor, error) {
	return func(context.Context) ([]ui.FieldDescriptor, []ui.ColumnDescriptor, error) {
		return fields, columns, nil
	}
}

func money(key string) func(model.Record) string {
	return func(rec model.Record) string {
		return "$" + ui.Stringify(rec[key])
	}
}

func Clientes() *Screen {
	return &Screen{
		Schema:   model.Clientes,
		Title:    "Maestro de Clientes",
		Subtitle: "Catálogo SGI_CLIENTES",
		build: static(
			[]ui.FieldDescriptor{
				{Name: "IDCLIENTE", Label: "ID Cliente", Kind: ui.KindText, Required: true},
				{Name: "NOM_CLIEN", Label: "Nombre Cliente", Kind: ui.KindText, Required: true},
				{Name: "APEL_CLIEN", Label: "Apellido Cliente", Kind: ui.KindText, Required: true},
				{Name: "DIR_CLIEN", Label: "Dirección Residencia", Kind: ui.KindTextarea},
				{Name: "TEL_CLIEN", Label: "Teléfono", Kind: ui.KindNumber, Required: true},
			},
			[]ui.ColumnDescriptor{
				{Key: "IDCLIENTE", Header: "ID CLIENTE"},
				{Key: "NOM_CLIEN", Header: "NOMBRE"},
				{Key: "APEL_CLIEN", Header: "APELLIDO"},
				{Key: "DIR_CLIEN", Header: "DIRECCIÓN"},
				{Key: "TEL_CLIEN", Header: "TELÉFONO"},
			},
		),
	}
}

func Proveedores() *Screen {
	return &Screen{
		Schema:   model.Proveedores,
		Title:    "Maestro de Proveedores",
		Subtitle: "Catálogo SGI_PROVEEDORES",
		build: static(
			[]ui.FieldDescriptor{
				{Name: "IDPROVEEDORES", Label: "ID Proveedor", Kind: ui.KindText, Required: true},
				{Name: "NOM_PROVEEDOR", Label: "Nombre Comercial", Kind: ui.KindText, Required: true},
				{Name: "DIR_PROVEEDOR", Label: "Dirección Principal", Kind: ui.KindText},
				{Name: "TEL_PROVEEDOR", Label: "Teléfono Contacto", Kind: ui.KindNumber, Required: true},
			},
			[]ui.ColumnDescriptor{
				{Key: "IDPROVEEDORES", Header: "ID PROVEEDOR"},
				{Key: "NOM_PROVEEDOR", Header: "RAZÓN SOCIAL"},
				{Key: "DIR_PROVEEDOR", Header: "DIRECCIÓN"},
				{Key: "TEL_PROVEEDOR", Header: "TELÉFONO"},
			},
		),
	}
}

// Productos links each product to its supplier: the form offers a select
// over the supplier catalog and the table resolves the stored supplier id
// to its name, falling back to the raw id when the reference is dangling.
func Productos() *Screen {
	return &Screen{
		Schema:   model.Productos,
		Title:    "Maestro de Productos",
		Subtitle: "Catálogo SGI_PRODUCTOS",
		build: func(ctx context.Context) ([]ui.FieldDescriptor, []ui.ColumnDescriptor, error) {
			proveedores, err := database.GetRepo(model.Proveedores.Name).FindAll(ctx)
			if err != nil {
				return nil, nil, err
			}

			options := make([]ui.Option, 0, len(proveedores))
			names := make(map[string]string, len(proveedores))
			for _, p := range proveedores {
				id := ui.Stringify(p["IDPROVEEDORES"])
				name := ui.Stringify(p["NOM_PROVEEDOR"])
				options = append(options, ui.Option{Label: name, Value: id})
				names[id] = name
			}

			fields := []ui.FieldDescriptor{
				{Name: "IDPRODUCTOS", Label: "ID Producto", Kind: ui.KindText, Required: true},
				{Name: "NOM_PROD", Label: "Nombre Comercial", Kind: ui.KindText, Required: true},
				{Name: "DESC_PROD", Label: "Descripción Técnica", Kind: ui.KindTextarea},
				{Name: "PROVEEDORES_IDPROVEEDORES", Label: "Proveedor", Kind: ui.KindSelect, Options: options, Required: true},
			}
			columns := []ui.ColumnDescriptor{
				{Key: "IDPRODUCTOS", Header: "ID PRODUCTO"},
				{Key: "NOM_PROD", Header: "NOMBRE"},
				{Key: "DESC_PROD", Header: "DESCRIPCIÓN"},
				{Key: "PROVEEDORES_IDPROVEEDORES", Header: "PROVEEDOR", Render: func(rec model.Record) string {
					id := ui.Stringify(rec["PROVEEDORES_IDPROVEEDORES"])
					if name, ok := names[id]; ok {
						return name
					}
					return id
				}},
			}
			return fields, columns, nil
		},
	}
}

// Facturas derives the gross total from quantity and unit price when the
// submit leaves it empty, and shows the outstanding balance per row.
func Facturas() *Screen {
	return &Screen{
		Schema:   model.Facturas,
		Title:    "Módulo Transaccional: Facturación",
		Subtitle: "Registro de ventas SGI_FACTURAS",
		Transform: func(rec model.Record) model.Record {
			total, _ := rec["VALOR_TOTAL"].(float64)
			if total == 0 {
				cant, _ := rec["CANT_FACT"].(float64)
				uni, _ := rec["VALOR_UNI"].(float64)
				rec["VALOR_TOTAL"] = cant * uni
			}
			return rec
		},
		build: static(
			[]ui.FieldDescriptor{
				{Name: "IDFACTURAS", Label: "ID Factura", Kind: ui.KindText, Required: true},
				{Name: "FECHA_FACT", Label: "Fecha Emisión", Kind: ui.KindDate, Required: true},
				{Name: "CANT_FACT", Label: "Cantidad", Kind: ui.KindNumber, Required: true},
				{Name: "PROD_FACT", Label: "Producto", Kind: ui.KindText, Required: true},
				{Name: "VALOR_UNI", Label: "Precio Unitario", Kind: ui.KindNumber, Required: true},
				{Name: "VALOR_TOTAL", Label: "Total Bruto", Kind: ui.KindNumber},
				{Name: "VALOR_PAGR", Label: "Neto a Pagar", Kind: ui.KindNumber, Required: true},
			},
			[]ui.ColumnDescriptor{
				{Key: "IDFACTURAS", Header: "ID FACTURA"},
				{Key: "FECHA_FACT", Header: "FECHA"},
				{Key: "PROD_FACT", Header: "PRODUCTO"},
				{Key: "VALOR_UNI", Header: "VALOR UNI."},
				{Key: "VALOR_PAGR", Header: "A PAGAR", Render: money("VALOR_PAGR")},
				{Key: "VALOR_TOTAL", Header: "SALDO", Render: func(rec model.Record) string {
					total, _ := rec["VALOR_TOTAL"].(float64)
					pagr, _ := rec["VALOR_PAGR"].(float64)
					return fmt.Sprintf("$%s", ui.Stringify(total-pagr))
				}},
			},
		),
	}
}

func Pedidos() *Screen {
	return &Screen{
		Schema:   model.Pedidos,
		Title:    "Transacciones: Pedidos",
		Subtitle: "Administración SGI_PEDIDOS",
		build: static(
			[]ui.FieldDescriptor{
				{Name: "IDPEDIDOS", Label: "Código Pedido", Kind: ui.KindText, Required: true},
				{Name: "FECHA_PED", Label: "Fecha de Requerimiento", Kind: ui.KindDate, Required: true},
				{Name: "PRODUCTO_PED", Label: "Nombre Producto Solicitado", Kind: ui.KindText, Required: true},
				{Name: "CANT_PED", Label: "Cantidad a Pedir", Kind: ui.KindNumber, Required: true},
				{Name: "VALOR_PED", Label: "Valor Presupuestado", Kind: ui.KindNumber, Required: true},
			},
			[]ui.ColumnDescriptor{
				{Key: "IDPEDIDOS", Header: "ID PEDIDO"},
				{Key: "FECHA_PED", Header: "FECHA"},
				{Key: "PRODUCTO_PED", Header: "PRODUCTO"},
				{Key: "CANT_PED", Header: "CANTIDAD"},
				{Key: "VALOR_PED", Header: "VALOR EST.", Render: money("VALOR_PED")},
			},
		),
	}
}

// Usuarios is the account form the panel offers; the table side of the
// users screen goes through the credential service, never the generic
// repositories, so only the form schema lives here.
func Usuarios() []ui.FieldDescriptor {
	return []ui.FieldDescriptor{
		{Name: "USERNAME", Label: "Nombre de Acceso", Kind: ui.KindText, Required: true, Placeholder: "ej. juan.perez"},
		{Name: "PASSWORD", Label: "Contraseña de Seguridad", Kind: ui.KindPassword, Required: true, Placeholder: "Mínimo 8 caracteres"},
		{Name: "ROLE", Label: "Nivel de Acceso", Kind: ui.KindRadio, Required: true, Options: []ui.Option{
			{Label: "Administrador del Sistema", Value: model.RoleAdmin},
			{Label: "Operador de Ventas/Inventario", Value: model.RoleUser},
		}},
		{Name: "ESTADO", Label: "Estado de Cuenta", Kind: ui.KindSelect, Required: true, Options: []ui.Option{
			{Label: "Usuario Activo", Value: model.StatusActive},
			{Label: "Usuario Suspendido", Value: model.StatusInactive},
		}},
		{Name: "NOTAS", Label: "Descripción o Perfil del Usuario", Kind: ui.KindTextarea},
	}
}
