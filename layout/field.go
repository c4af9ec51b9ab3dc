package layout

import "encoding/json"

// FieldType is how the console renders the value found at a field key
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeDateTime FieldType = "datetime"
)

// Field is a labeled value in a layout.
// Key is a dot separated path, relative to the root path of the owning layout.
type Field struct {
	name    string
	key     string
	typ     FieldType
	options map[string]string
}

// TextField renders the value at key as plain text
func TextField(name, key string) Field {
	return Field{name: name, key: key, typ: TypeText}
}

// DateTimeField renders the value at key as a timestamp, the value is expected to be iso8601
func DateTimeField(name, key string) Field {
	return Field{
		name: name,
		key:  key,
		typ:  TypeDateTime,
		options: map[string]string{
			"source_type": "iso8601",
		},
	}
}

func (f Field) Name() string    { return f.name }
func (f Field) Key() string     { return f.key }
func (f Field) Type() FieldType { return f.typ }

// Option returns the rendering option stored under name
func (f Field) Option(name string) (string, bool) {
	v, ok := f.options[name]
	return v, ok
}

func (f Field) MarshalJSON() ([]byte, error) {
	options := f.options
	if options == nil {
		options = map[string]string{}
	}

	return json.Marshal(struct {
		Name    string            `json:"name"`
		Key     string            `json:"key"`
		Type    FieldType         `json:"type"`
		Options map[string]string `json:"options"`
	}{
		Name:    f.name,
		Key:     f.key,
		Type:    f.typ,
		Options: options,
	})
}
