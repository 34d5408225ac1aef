package resource

import (
	"fmt"
	"reflect"
	"strings"
)

// matchRequirement evaluates a single (key, requirement) pair against a
// capability map on behalf of the given category.
func matchRequirement(t Type, caps map[string]any, key string, req Requirement) (bool, error) {
	actual, present := caps[key]

	// NotPresent is the one comparator defined over absence: it matches iff
	// the key is missing, independent of the paired value.
	if req.Comparator == NotPresent {
		return !present, nil
	}
	if !present {
		return false, nil
	}

	switch req.Comparator {
	case Equals:
		return valuesEqual(actual, req.Value), nil
	case NotEquals:
		return !valuesEqual(actual, req.Value), nil

	case GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		cmp, err := orderedCompare(key, actual, req.Value)
		if err != nil {
			return false, err
		}
		switch req.Comparator {
		case GreaterThan:
			return cmp > 0, nil
		case GreaterThanOrEqual:
			return cmp >= 0, nil
		case LessThan:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}

	case StartsWith:
		return strings.HasPrefix(textOf(actual), textOf(req.Value)), nil
	case Includes:
		return strings.Contains(textOf(actual), textOf(req.Value)), nil

	case HasAny, HasAll:
		have, err := elementsOf(key, "actual value", actual)
		if err != nil {
			return false, err
		}
		want, err := elementsOf(key, "required value", req.Value)
		if err != nil {
			return false, err
		}
		if req.Comparator == HasAny {
			for _, w := range want {
				if containsElement(have, w) {
					return true, nil
				}
			}
			return false, nil
		}
		for _, w := range want {
			if !containsElement(have, w) {
				return false, nil
			}
		}
		return true, nil

	case Custom:
		return t.HandleCustomRequirement(key, req.Value, actual, caps)
	}

	// Unreachable for requirements built through ParseComparator.
	return false, newPreconditionError("unknown comparator '%s' for requirement '%s'", req.Comparator, key)
}

// textOf renders a value as text, so the textual comparators are defined
// even for non-string operands.
func textOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// orderedCompare relates two values that must be mutually ordered: both
// numeric, or both strings. Anything else fails loudly.
func orderedCompare(key string, a, b any) (int, error) {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		}
		return 0, nil
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs), nil
	}

	return 0, newTypeMismatchError(
		"requirement '%s': cannot order %T against %T", key, a, b)
}

// asFloat widens any native numeric value to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// elementsOf flattens a value into its elements for the container
// comparators. Strings are deliberately excluded even though they are
// technically iterable; a textual operand on either side is a
// TypeMismatchError naming that side.
func elementsOf(key, side string, v any) ([]any, error) {
	if _, ok := v.(string); ok {
		return nil, newTypeMismatchError(
			"requirement '%s': %s is textual, container comparators need a collection", key, side)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, newTypeMismatchError(
			"requirement '%s': %s of type %T is not a collection", key, side, v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// containsElement reports whether elem occurs in the collection.
func containsElement(coll []any, elem any) bool {
	for _, c := range coll {
		if valuesEqual(c, elem) {
			return true
		}
	}
	return false
}

// valuesEqual is deep equality with numeric widening, so an int capability
// equals the float64 the HCL layer produces for the same number.
func valuesEqual(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}
