package resource

// Requirement is one declarative constraint: a value paired with the
// comparator that relates it to an instance's capability of the same name.
type Requirement struct {
	Value      any
	Comparator Comparator
}

// Requirements maps capability names to constraints. A nil map is the
// "no requirements" case and matches every instance.
type Requirements map[string]Requirement

// Equal builds the implicit-equality requirement used for bare values.
func Equal(value any) Requirement {
	return Requirement{Value: value, Comparator: Equals}
}

// NewRequirement resolves the comparator name eagerly, so an unknown name
// fails at construction time rather than mid-match.
func NewRequirement(value any, comparatorName string) (Requirement, error) {
	c, err := ParseComparator(comparatorName)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{Value: value, Comparator: c}, nil
}

// NewRequirements builds a Requirements map from loosely-typed wire data.
// Each entry is either a bare value (implying equality), an explicit
// Requirement, or a two-element [value, comparator-name] pair as produced by
// declarative front ends. Comparator names resolve immediately; the first
// unknown one aborts construction.
func NewRequirements(spec map[string]any) (Requirements, error) {
	if spec == nil {
		return nil, nil
	}
	reqs := make(Requirements, len(spec))
	for key, raw := range spec {
		switch v := raw.(type) {
		case Requirement:
			if _, ok := comparators[v.Comparator]; !ok {
				return nil, newPreconditionError("unknown comparator '%s' for requirement '%s'", v.Comparator, key)
			}
			reqs[key] = v
		case []any:
			if len(v) == 2 {
				if name, ok := v[1].(string); ok {
					req, err := NewRequirement(v[0], name)
					if err != nil {
						return nil, err
					}
					reqs[key] = req
					continue
				}
			}
			// A slice that is not a (value, comparator) pair is a plain
			// collection value matched by equality.
			reqs[key] = Equal(v)
		default:
			reqs[key] = Equal(raw)
		}
	}
	return reqs, nil
}
