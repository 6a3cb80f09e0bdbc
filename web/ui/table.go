package ui

import (
	"strings"
)

// emptyMessage is the neutral affordance rendered instead of an empty body.
const emptyMessage = "No se encontraron registros"

// ColumnDescriptor declares one displayed attribute. Render, when set, is a
// pure function from record to display value; otherwise the raw attribute
// at Key is shown.
type ColumnDescriptor struct {
	Key    string
	Header string
	Render func(Record) string
}

// RowView is one rendered table row, keyed by the record's identity.
type RowView struct {
	Key   string   `json:"key"`
	Cells []string `json:"cells"`
}

// TableView is the assembled list view of a record sequence.
type TableView struct {
	Headers  []string  `json:"headers"`
	Rows     []RowView `json:"rows"`
	Empty    bool      `json:"empty"`
	Message  string    `json:"message,omitempty"`
	Total    int       `json:"total"`
	Filtered int       `json:"filtered"`
}

// TableEngine renders searchable list views from column descriptors.
type TableEngine struct{}

// Filter keeps the rows where the case-insensitive string form of any
// attribute contains the query. The match runs across all attributes, not
// just displayed columns. An empty query keeps everything.
func (TableEngine) Filter(data []Record, query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return data
	}
	var out []Record
	for _, rec := range data {
		for _, value := range rec {
			if strings.Contains(strings.ToLower(Stringify(value)), query) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// BuildView filters data by query and renders it against the columns. Row
// identity comes from record[idField] and must be unique across data. An
// empty filtered set yields the neutral no-records view.
func (e TableEngine) BuildView(columns []ColumnDescriptor, data []Record, idField, query string) TableView {
	filtered := e.Filter(data, query)

	view := TableView{
		Headers:  make([]string, 0, len(columns)),
		Total:    len(data),
		Filtered: len(filtered),
	}
	for _, col := range columns {
		view.Headers = append(view.Headers, col.Header)
	}

	if len(filtered) == 0 {
		view.Empty = true
		view.Message = emptyMessage
		return view
	}

	view.Rows = make([]RowView, 0, len(filtered))
	for _, rec := range filtered {
		row := RowView{
			Key:   Stringify(rec[idField]),
			Cells: make([]string, 0, len(columns)),
		}
		for _, col := range columns {
			if col.Render != nil {
				row.Cells = append(row.Cells, col.Render(rec))
			} else {
				row.Cells = append(row.Cells, Stringify(rec[col.Key]))
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
