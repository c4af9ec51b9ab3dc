package layout

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// WalkFunc is called for every field, path is the root path of the owner joined with the field key
type WalkFunc func(owner Layout, field Field, path string) error

// Walk visits the fields of l depth first, in the order they were declared.
// It stops at the first error returned by fn.
func Walk(l Layout, fn WalkFunc) error {
	switch v := l.(type) {
	case *ItemLayout:
		return walkFields(v, v.rootPath, v.fields, fn)
	case *TableLayout:
		return walkFields(v, v.rootPath, v.fields, fn)
	case *ListLayout:
		for _, nested := range v.layouts {
			if err := Walk(nested, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func walkFields(owner Layout, rootPath string, fields []Field, fn WalkFunc) error {
	for _, f := range fields {
		if err := fn(owner, f, JoinPath(rootPath, f.key)); err != nil {
			return err
		}
	}

	return nil
}

// JoinPath joins dot separated path segments, empty segments are skipped
func JoinPath(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, ".")
}

// Lookup resolves a dot separated path in a JSON document.
// Numeric segments index into arrays. A path that does not exist yields an
// Any with jsoniter.InvalidValue as its ValueType.
func Lookup(doc []byte, path string) jsoniter.Any {
	return jsoniter.Get(doc, pathKeys(path)...)
}

// Unresolved returns the field paths of l that do not exist in doc.
// For a table the root path must be a list, and every field key is checked
// against each element of it.
func Unresolved(doc []byte, l Layout) []string {
	var (
		missing []string
		seen    = map[string]bool{}
	)

	report := func(path string) {
		if !seen[path] {
			seen[path] = true
			missing = append(missing, path)
		}
	}

	_ = Walk(l, func(owner Layout, f Field, path string) error {
		table, ok := owner.(*TableLayout)
		if !ok {
			if Lookup(doc, path).ValueType() == jsoniter.InvalidValue {
				report(path)
			}
			return nil
		}

		rows := Lookup(doc, table.rootPath)
		if rows.ValueType() != jsoniter.ArrayValue {
			report(table.rootPath)
			return nil
		}
		for i := 0; i < rows.Size(); i++ {
			if rows.Get(i).Get(pathKeys(f.key)...).ValueType() == jsoniter.InvalidValue {
				report(path)
			}
		}

		return nil
	})

	return missing
}

func pathKeys(path string) []interface{} {
	if path == "" {
		return nil
	}

	segments := strings.Split(path, ".")
	keys := make([]interface{}, len(segments))
	for i, s := range segments {
		if n, err := strconv.Atoi(s); err == nil {
			keys[i] = n
			continue
		}
		keys[i] = s
	}

	return keys
}
