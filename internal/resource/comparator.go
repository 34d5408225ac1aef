package resource

// Comparator is one matching operator of the requirement language. The set
// is closed; wire-level names resolve through ParseComparator.
type Comparator string

const (
	Equals             Comparator = "equals"
	NotEquals          Comparator = "not_equals"
	GreaterThan        Comparator = "greater_than"
	GreaterThanOrEqual Comparator = "greater_than_or_equal"
	LessThan           Comparator = "less_than"
	LessThanOrEqual    Comparator = "less_than_or_equal"
	StartsWith         Comparator = "starts_with"
	Includes           Comparator = "includes"
	HasAny             Comparator = "has_any"
	HasAll             Comparator = "has_all"
	NotPresent         Comparator = "not_present"
	Custom             Comparator = "custom"
)

// comparators is the closed enumeration ParseComparator resolves against.
var comparators = map[Comparator]struct{}{
	Equals:             {},
	NotEquals:          {},
	GreaterThan:        {},
	GreaterThanOrEqual: {},
	LessThan:           {},
	LessThanOrEqual:    {},
	StartsWith:         {},
	Includes:           {},
	HasAny:             {},
	HasAll:             {},
	NotPresent:         {},
	Custom:             {},
}

// ParseComparator resolves a wire-level comparator name. An unrecognized
// name is a PreconditionError, surfaced before any instance is examined.
func ParseComparator(name string) (Comparator, error) {
	c := Comparator(name)
	if _, ok := comparators[c]; !ok {
		return "", newPreconditionError("unknown comparator '%s'", name)
	}
	return c, nil
}
