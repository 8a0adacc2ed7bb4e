// File: envgrove/config/cast.go
package config

import (
	"encoding/json"
	"strconv"
	"strings"
)

// castValue converts a raw source value into the field's declared type.
// Raw strings are parsed; native values from structured sources
// short-circuit when the kind already matches.
func castValue(key string, raw any, t TypeSpec) (any, error) {
	if t.Optional {
		if raw == nil {
			return nil, nil
		}
		if s, ok := raw.(string); ok && s == "" {
			return nil, nil
		}
	}

	switch t.Kind {
	case KindString, KindInt, KindFloat, KindBool, KindPath:
		return castScalar(key, raw, t.Kind)
	case KindSequence:
		return castSequence(key, raw, t)
	default:
		return nil, &UnsupportedTypeError{Key: key, Type: t.String()}
	}
}

// normalizeDefault widens native Go literals used as defaults so typed
// getters, bounds, and choices see the resolver's canonical kinds.
func normalizeDefault(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}

func castScalar(key string, raw any, kind Kind) (any, error) {
	switch kind {
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}

	case KindInt:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return i, nil
			}
		case string:
			if i, err := strconv.ParseInt(v, 10, 64); err == nil {
				return i, nil
			}
		}

	case KindFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, nil
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		}

	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(v) {
			case "true", "1", "yes", "on":
				return true, nil
			case "false", "0", "no", "off":
				return false, nil
			}
		}

	case KindPath:
		switch v := raw.(type) {
		case Path:
			return v, nil
		case string:
			return Path(v), nil
		}
	}

	return nil, &CastError{Key: key, Value: raw, Target: kind.String()}
}

// castSequence accepts a native sequence from a structured source or a
// comma-separated string, trimming surrounding whitespace per element.
func castSequence(key string, raw any, t TypeSpec) (any, error) {
	var elems []any

	switch v := raw.(type) {
	case []any:
		elems = v
	case string:
		for _, part := range strings.Split(v, ",") {
			elems = append(elems, strings.TrimSpace(part))
		}
	default:
		return nil, &CastError{Key: key, Value: raw, Target: t.String()}
	}

	if t.Tuple && t.Arity > 0 && len(elems) != t.Arity {
		return nil, &CastError{Key: key, Value: raw, Target: t.String(),
			Reason: "expected exactly " + strconv.Itoa(t.Arity) + " elements"}
	}

	switch t.Elem {
	case KindString:
		out := make([]string, len(elems))
		for i, e := range elems {
			v, err := castScalar(key, e, KindString)
			if err != nil {
				return nil, err
			}
			out[i] = v.(string)
		}
		return out, nil

	case KindInt:
		out := make([]int64, len(elems))
		for i, e := range elems {
			v, err := castScalar(key, e, KindInt)
			if err != nil {
				return nil, err
			}
			out[i] = v.(int64)
		}
		return out, nil

	case KindFloat:
		out := make([]float64, len(elems))
		for i, e := range elems {
			v, err := castScalar(key, e, KindFloat)
			if err != nil {
				return nil, err
			}
			out[i] = v.(float64)
		}
		return out, nil

	case KindBool:
		out := make([]bool, len(elems))
		for i, e := range elems {
			v, err := castScalar(key, e, KindBool)
			if err != nil {
				return nil, err
			}
			out[i] = v.(bool)
		}
		return out, nil
	}

	return nil, &UnsupportedTypeError{Key: key, Type: t.String()}
}
