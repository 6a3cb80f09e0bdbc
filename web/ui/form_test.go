package ui

import (
	"errors"
	"strings"
	"testing"
)

func sampleFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "IDCLIENTE", Label: "ID Cliente", Kind: KindText, Required: true},
		{Name: "NOM_CLIEN", Label: "Nombre Cliente", Kind: KindText, Required: true},
		{Name: "DIR_CLIEN", Label: "Dirección", Kind: KindTextarea},
		{Name: "TEL_CLIEN", Label: "Teléfono", Kind: KindNumber, Required: true},
	}
}

func TestFormSubmitValidation(t *testing.T) {
	engine := FormEngine{}

	tests := []struct {
		name    string
		values  map[string]string
		missing []string
	}{
		{
			name:    "all empty",
			values:  map[string]string{},
			missing: []string{"ID Cliente", "Nombre Cliente", "Teléfono"},
		},
		{
			name: "one required empty",
			values: map[string]string{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "",
				"TEL_CLIEN": "3104448877",
			},
			missing: []string{"Nombre Cliente"},
		},
		{
			name: "whitespace counts as empty",
			values: map[string]string{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "   ",
				"TEL_CLIEN": "3104448877",
			},
			missing: []string{"Nombre Cliente"},
		},
		{
			name: "zero is empty for numbers",
			values: map[string]string{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "Ana",
				"TEL_CLIEN": "0",
			},
			missing: []string{"Teléfono"},
		},
		{
			name: "complete",
			values: map[string]string{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "Ana",
				"TEL_CLIEN": "3104448877",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := engine.Submit(sampleFields(), tt.values)
			if len(tt.missing) == 0 {
				if err != nil {
					t.Fatalf("Submit() unexpected error: %v", err)
				}
				// the assembled record carries every declared field
				for _, f := range sampleFields() {
					if _, ok := rec[f.Name]; !ok {
						t.Errorf("record missing declared field %s", f.Name)
					}
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() err = %v, want ValidationError", err)
			}
			if rec != nil {
				t.Error("Submit() emitted a record alongside a validation error")
			}
			if len(verr.Missing) != len(tt.missing) {
				t.Fatalf("Missing = %v, want %v", verr.Missing, tt.missing)
			}
			for i, label := range tt.missing {
				if verr.Missing[i] != label {
					t.Errorf("Missing[%d] = %q, want %q", i, verr.Missing[i], label)
				}
			}
			for _, label := range tt.missing {
				if !strings.Contains(verr.Error(), label) {
					t.Errorf("error message %q does not name %q", verr.Error(), label)
				}
			}
		})
	}
}

func TestFormSubmitCoercion(t *testing.T) {
	engine := FormEngine{}

	rec, err := engine.Submit(sampleFields(), map[string]string{
		"IDCLIENTE": "C001",
		"NOM_CLIEN": "Ana",
		"TEL_CLIEN": "3104448877",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := rec["TEL_CLIEN"].(float64); !ok || got != 3104448877 {
		t.Errorf("TEL_CLIEN = %#v, want float64 3104448877", rec["TEL_CLIEN"])
	}
	if got, ok := rec["IDCLIENTE"].(string); !ok || got != "C001" {
		t.Errorf("IDCLIENTE = %#v, want string C001", rec["IDCLIENTE"])
	}

	_, err = engine.Submit(sampleFields(), map[string]string{
		"IDCLIENTE": "C001",
		"NOM_CLIEN": "Ana",
		"TEL_CLIEN": "no-es-numero",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("unparsable number: err = %v, want ValidationError", err)
	}
}

func TestFormSubmitSkipsHiddenRequired(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "VISIBLE", Label: "Visible", Kind: KindText, Required: true},
		{Name: "OCULTO", Label: "Oculto", Kind: KindText, Required: true, Hidden: true},
	}
	rec, err := FormEngine{}.Submit(fields, map[string]string{"VISIBLE": "x"})
	if err != nil {
		t.Fatalf("hidden required field blocked submit: %v", err)
	}
	if rec["OCULTO"] != "" {
		t.Errorf("OCULTO = %#v, want empty passthrough", rec["OCULTO"])
	}
}

func TestFormRenderDefaults(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "NOM", Label: "Nombre", Kind: KindText},
		{Name: "ROLE", Label: "Rol", Kind: KindRadio, Options: []Option{
			{Label: "Administrador", Value: "ADMIN"},
			{Label: "Operador", Value: "USER"},
		}},
		{Name: "ESTADO", Label: "Estado", Kind: KindSelect, Options: []Option{
			{Label: "Activo", Value: "ACTIVO"},
			{Label: "Suspendido", Value: "INACTIVO"},
		}},
		{Name: "PASSWORD", Label: "Contraseña", Kind: KindPassword},
	}

	view := FormEngine{}.Render(fields, nil)
	want := map[string]string{"NOM": "", "ROLE": "ADMIN", "ESTADO": "ACTIVO", "PASSWORD": ""}
	for _, fv := range view.Fields {
		if fv.Value != want[fv.Name] {
			t.Errorf("default for %s = %q, want %q", fv.Name, fv.Value, want[fv.Name])
		}
	}
}

func TestFormRenderInitialVerbatim(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "NOM", Label: "Nombre", Kind: KindText},
		{Name: "TEL", Label: "Teléfono", Kind: KindNumber},
		{Name: "PASSWORD", Label: "Contraseña", Kind: KindPassword},
	}
	initial := Record{"NOM": "Ana", "TEL": float64(310), "PASSWORD": "$2a$10$hash"}

	view := FormEngine{}.Render(fields, initial)
	got := map[string]string{}
	for _, fv := range view.Fields {
		got[fv.Name] = fv.Value
	}
	if got["NOM"] != "Ana" || got["TEL"] != "310" {
		t.Errorf("initial values not used verbatim: %v", got)
	}
	if got["PASSWORD"] != "" {
		t.Error("password value echoed back into the form view")
	}
}
