package capability

import "fmt"

// Validate checks a capability map against a schema and returns one message
// per violation. An empty slice means the map is valid. All violations are
// collected so a caller can surface the complete report at once.
func Validate(s Schema, caps map[string]any) []string {
	var violations []string

	for _, field := range s {
		val, ok := caps[field.Name]
		if !ok {
			if field.Required {
				violations = append(violations, fmt.Sprintf("missing required capability '%s'", field.Name))
			}
			continue
		}
		if !field.Kind.Accepts(val) {
			violations = append(violations, fmt.Sprintf(
				"capability '%s': expected %s, got %s", field.Name, field.Kind, KindOf(val)))
		}
	}

	for name := range caps {
		if _, ok := s.Field(name); !ok {
			violations = append(violations, fmt.Sprintf("capability '%s' is not declared in the schema", name))
		}
	}

	return violations
}
