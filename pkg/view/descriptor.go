// Package view holds the per-tab view models of the console: a generic CRUD
// view driven by a resource descriptor, the vehicle tracking view built on top
// of it, and the dashboard.
package view

type FieldKind int

const (
	Text FieldKind = iota
	Number
	Enum
	Date
)

// InputType is the HTML input type the field renders as.
func (k FieldKind) InputType() string {
	switch k {
	case Number:
		return "number"
	case Date:
		return "date"
	case Enum:
		return "select"
	}
	return "text"
}

type Option struct {
	Value string
	Label string
}

// Field describes one form input and how it maps to the JSON body.
type Field struct {
	Key         string
	Label       string
	Kind        FieldKind
	Required    bool
	Options     []Option
	Default     string
	Placeholder string
	Min         *float64
	Max         *float64
	// MinExclusive makes Min a strict lower bound (area > 0).
	MinExclusive bool
	Step         string
}

// Column renders one table cell from a record.
type Column[T any] struct {
	Header string
	Cell   func(T) string
}

// Descriptor declares everything a CRUD view needs to know about one resource kind.
type Descriptor[T any] struct {
	Kind      string // crops, equipment, ...
	Title     string
	Singular  string
	ListTitle string
	Empty     string
	Fields    []Field
	Columns   []Column[T]
	Updatable bool
	ID        func(T) string
}

// Bound is a small helper for declaring Min/Max.
func Bound(v float64) *float64 { return &v }
