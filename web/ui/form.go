// Package ui holds the metadata-driven rendering engines of the panel: a
// form engine, a table engine and a paginator. They operate on schema
// descriptors and open records and know nothing about specific entities.
package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is an open mapping from attribute name to scalar value.
type Record = map[string]any

// Kind enumerates the supported input controls.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindTextarea Kind = "textarea"
	KindRadio    Kind = "radio"
	KindSelect   Kind = "select"
	KindPassword Kind = "password"
)

// Option is one selectable choice for radio and select fields.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDescriptor declares one editable attribute. Name must be unique
// within a schema; radio and select fields must carry options.
type FieldDescriptor struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"kind"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
}

// ValidationError names the labels of required fields the submit left
// empty. Its message is what the user sees, verbatim.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Los siguientes campos son requeridos: " + strings.Join(e.Missing, ", ")
}

// FieldView is a field descriptor paired with its current value.
type FieldView struct {
	FieldDescriptor
	Value string `json:"value"`
}

// FormView is the assembled editable view of a schema.
type FormView struct {
	Fields []FieldView `json:"fields"`
}

// FormEngine renders editable forms from field descriptors and validates
// and assembles submitted values into records.
type FormEngine struct{}

// Render builds the form view. When initial is supplied its values are used
// verbatim; otherwise select and radio fields default to their first option
// and every other kind to an empty value. Password values are never echoed.
func (FormEngine) Render(fields []FieldDescriptor, initial Record) FormView {
	view := FormView{Fields: make([]FieldView, 0, len(fields))}
	for _, field := range fields {
		value := ""
		switch {
		case field.Kind == KindPassword:
			// stays empty even on edit
		case initial != nil:
			value = Stringify(initial[field.Name])
		case field.Kind == KindSelect || field.Kind == KindRadio:
			if len(field.Options) > 0 {
				value = field.Options[0].Value
			}
		}
		view.Fields = append(view.Fields, FieldView{FieldDescriptor: field, Value: value})
	}
	return view
}

// Submit validates the entered values against the schema and assembles the
// record. Required, non-hidden fields with an empty value fail with a
// ValidationError naming their labels; nothing is emitted in that case.
// Number kinds are coerced to float64, all other kinds pass through as
// entered.
func (FormEngine) Submit(fields []FieldDescriptor, values map[string]string) (Record, error) {
	var missing []string
	for _, field := range fields {
		if !field.Required || field.Hidden {
			continue
		}
		if isEmptyValue(field, values[field.Name]) {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	record := make(Record, len(fields))
	for _, field := range fields {
		raw := strings.TrimSpace(values[field.Name])
		if field.Kind == KindNumber {
			if raw == "" {
				record[field.Name] = float64(0)
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ValidationError{Missing: []string{field.Label}}
			}
			record[field.Name] = n
			continue
		}
		record[field.Name] = raw
	}
	return record, nil
}

// isEmptyValue mirrors the falsy check of the original form: empty strings
// are always empty, and a zero is empty for number fields.
func isEmptyValue(field FieldDescriptor, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	if field.Kind == KindNumber {
		n, err := strconv.ParseFloat(value, 64)
		return err == nil && n == 0
	}
	return false
}

// Stringify renders a record scalar for display. Integral floats print
// without a fraction so numeric attributes round-trip cleanly.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return Stringify(float64(v))
	default:
		return fmt.Sprint(v)
	}
}
