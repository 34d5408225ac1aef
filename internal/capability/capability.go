// Package capability describes the named attributes a resource category
// exposes and validates caller-supplied capability maps against that
// description. Validation always reports every violation it finds, never
// just the first one.
package capability

import "fmt"

// Kind is the declared value kind of a single capability field.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindList   Kind = "list"
	KindMap    Kind = "map"
	KindAny    Kind = "any"
)

// ParseKind resolves a manifest-level kind name.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindString, KindNumber, KindBool, KindList, KindMap, KindAny:
		return Kind(name), nil
	}
	return "", fmt.Errorf("unknown capability kind '%s'", name)
}

// Accepts reports whether a native Go value conforms to the kind. Numbers
// arrive as float64 from the HCL layer, but Go-native callers may hand in
// any integer or float type.
func (k Kind) Accepts(v any) bool {
	switch k {
	case KindAny:
		return true
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	case KindList:
		_, ok := v.([]any)
		return ok
	case KindMap:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

// AsNumber coerces a native numeric value to float64. It admits exactly the
// types Accepts admits for KindNumber, so any value that validated as a
// number can be read back through it regardless of whether it came from the
// HCL layer (always float64) or from a Go-native caller (any integer or
// float type).
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// KindOf names the kind of a native value, for diagnostics.
func KindOf(v any) string {
	switch v.(type) {
	case string:
		return string(KindString)
	case bool:
		return string(KindBool)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return string(KindNumber)
	case []any:
		return string(KindList)
	case map[string]any:
		return string(KindMap)
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

// Field declares a single capability a category exposes.
type Field struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool
}

// Schema is the ordered capability field list of one category.
type Schema []Field

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
