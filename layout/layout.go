// Package layout declares how a collected resource is displayed in the console.
//
// A layout is one of three kinds: an item (a flat list of fields), a table (a
// list of fields applied to every element of a list) or a list (an ordered set
// of nested layouts). Layouts are built once and never change afterwards, so a
// single layout tree can be shared by every resource of a type.
package layout

import "encoding/json"

// Kind is the discriminator of a Layout on the wire
type Kind string

const (
	KindItem  Kind = "item"
	KindTable Kind = "table"
	KindList  Kind = "list"
)

// Layout is implemented by *ItemLayout, *TableLayout and *ListLayout only
type Layout interface {
	json.Marshaler
	Name() string
	Kind() Kind
	layout()
}

// ItemLayout shows its fields one per row
type ItemLayout struct {
	name     string
	rootPath string
	fields   []Field
}

// Item builds an item layout, rootPath may be empty
func Item(name, rootPath string, fields ...Field) *ItemLayout {
	return &ItemLayout{name: name, rootPath: rootPath, fields: append([]Field(nil), fields...)}
}

func (l *ItemLayout) Name() string     { return l.name }
func (l *ItemLayout) Kind() Kind       { return KindItem }
func (l *ItemLayout) RootPath() string { return l.rootPath }
func (l *ItemLayout) Fields() []Field  { return append([]Field(nil), l.fields...) }
func (l *ItemLayout) layout()          {}

func (l *ItemLayout) MarshalJSON() ([]byte, error) {
	return marshalFields(l.name, KindItem, l.rootPath, l.fields)
}

// TableLayout shows one row per element of the list found at its root path
type TableLayout struct {
	name     string
	rootPath string
	fields   []Field
}

// Table builds a table layout, field keys are relative to each element
func Table(name, rootPath string, fields ...Field) *TableLayout {
	return &TableLayout{name: name, rootPath: rootPath, fields: append([]Field(nil), fields...)}
}

func (l *TableLayout) Name() string     { return l.name }
func (l *TableLayout) Kind() Kind       { return KindTable }
func (l *TableLayout) RootPath() string { return l.rootPath }
func (l *TableLayout) Fields() []Field  { return append([]Field(nil), l.fields...) }
func (l *TableLayout) layout()          {}

func (l *TableLayout) MarshalJSON() ([]byte, error) {
	return marshalFields(l.name, KindTable, l.rootPath, l.fields)
}

// ListLayout groups nested layouts under one tab
type ListLayout struct {
	name    string
	layouts []Layout
}

// List builds a list layout, nesting depth is not limited
func List(name string, layouts ...Layout) *ListLayout {
	return &ListLayout{name: name, layouts: append([]Layout(nil), layouts...)}
}

func (l *ListLayout) Name() string      { return l.name }
func (l *ListLayout) Kind() Kind        { return KindList }
func (l *ListLayout) Layouts() []Layout { return append([]Layout(nil), l.layouts...) }
func (l *ListLayout) layout()           {}

func (l *ListLayout) MarshalJSON() ([]byte, error) {
	layouts := l.layouts
	if layouts == nil {
		layouts = []Layout{}
	}

	return json.Marshal(struct {
		Name    string `json:"name"`
		Type    Kind   `json:"type"`
		Options struct {
			Layouts []Layout `json:"layouts"`
		} `json:"options"`
	}{
		Name: l.name,
		Type: KindList,
		Options: struct {
			Layouts []Layout `json:"layouts"`
		}{Layouts: layouts},
	})
}

type fieldOptions struct {
	RootPath string  `json:"root_path,omitempty"`
	Fields   []Field `json:"fields"`
}

func marshalFields(name string, kind Kind, rootPath string, fields []Field) ([]byte, error) {
	if fields == nil {
		fields = []Field{}
	}

	return json.Marshal(struct {
		Name    string       `json:"name"`
		Type    Kind         `json:"type"`
		Options fieldOptions `json:"options"`
	}{
		Name:    name,
		Type:    kind,
		Options: fieldOptions{RootPath: rootPath, Fields: fields},
	})
}
