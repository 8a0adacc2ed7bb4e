// File: envgrove/config/validate.go
package config

import "fmt"

// validateValue applies declarative and custom rules to a cast value, in
// fixed order: choices, numeric bounds, custom predicate. An absent optional
// value (nil) is exempt.
func validateValue(key string, value any, spec *FieldSpec) error {
	if value == nil {
		return nil
	}

	if len(spec.Choices) > 0 && scalarComparable(value) {
		if !inChoices(value, spec.Choices) {
			return &ValidationError{Key: key, Value: value,
				Reason: fmt.Sprintf("value %v not in choices %v", value, spec.Choices)}
		}
	}

	if num, ok := asFloat(value); ok {
		if spec.Min != nil && num < *spec.Min {
			return &ValidationError{Key: key, Value: value,
				Reason: fmt.Sprintf("%v below minimum %v", value, *spec.Min)}
		}
		if spec.Max != nil && num > *spec.Max {
			return &ValidationError{Key: key, Value: value,
				Reason: fmt.Sprintf("%v above maximum %v", value, *spec.Max)}
		}
	}

	if spec.Validator != nil && !spec.Validator(value) {
		return &ValidationError{Key: key, Value: value, Reason: "custom validation failed"}
	}

	return nil
}

// scalarComparable reports whether the value supports equality against
// choices. Sequences are skipped; choices apply to scalars only.
func scalarComparable(value any) bool {
	switch value.(type) {
	case []string, []int64, []float64, []bool:
		return false
	}
	return true
}

func inChoices(value any, choices []any) bool {
	v := normalizeScalar(value)
	for _, choice := range choices {
		if normalizeScalar(choice) == v {
			return true
		}
	}
	return false
}

// normalizeScalar widens numeric kinds and unwraps Path so declared choices
// match values regardless of the source format's native type.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	case Path:
		return string(n)
	}
	return v
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
