// File: envgrove/config/type.go
package config

import (
	"fmt"
	"strconv"
)

// StringValue retrieves a string field value using the path. An absent
// optional value reads as an empty string for convenience.
func (c *Config) StringValue(path string) (string, error) {
	val, found := c.Get(path)
	if !found {
		return "", fmt.Errorf("not a registered field: %s", path)
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case Path:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for path %s", val, path)
	}
}

// Int64 retrieves an integer field value using the path.
func (c *Config) Int64(path string) (int64, error) {
	val, found := c.Get(path)
	if !found {
		return 0, fmt.Errorf("not a registered field: %s", path)
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil // Truncate
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for path %s", val, path)
}

// Float64 retrieves a floating-point field value using the path.
func (c *Config) Float64(path string) (float64, error) {
	val, found := c.Get(path)
	if !found {
		return 0, fmt.Errorf("not a registered field: %s", path)
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for path %s", val, path)
}

// Bool retrieves a boolean field value using the path.
func (c *Config) Bool(path string) (bool, error) {
	val, found := c.Get(path)
	if !found {
		return false, fmt.Errorf("not a registered field: %s", path)
	}

	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for path %s", val, path)
}

// PathValue retrieves a path field value using the path.
func (c *Config) PathValue(path string) (Path, error) {
	val, found := c.Get(path)
	if !found {
		return "", fmt.Errorf("not a registered field: %s", path)
	}

	switch v := val.(type) {
	case Path:
		return v, nil
	case string:
		return Path(v), nil
	}
	return "", fmt.Errorf("cannot convert type %T to path for path %s", val, path)
}

// Strings retrieves a string sequence field value using the path.
func (c *Config) Strings(path string) ([]string, error) {
	val, found := c.Get(path)
	if !found {
		return nil, fmt.Errorf("not a registered field: %s", path)
	}
	if val == nil {
		return nil, nil
	}

	if s, ok := val.([]string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []string for path %s", val, path)
}

// Int64s retrieves an integer sequence field value using the path.
func (c *Config) Int64s(path string) ([]int64, error) {
	val, found := c.Get(path)
	if !found {
		return nil, fmt.Errorf("not a registered field: %s", path)
	}
	if val == nil {
		return nil, nil
	}

	if s, ok := val.([]int64); ok {
		return s, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []int64 for path %s", val, path)
}

// Float64s retrieves a float sequence field value using the path.
func (c *Config) Float64s(path string) ([]float64, error) {
	val, found := c.Get(path)
	if !found {
		return nil, fmt.Errorf("not a registered field: %s", path)
	}
	if val == nil {
		return nil, nil
	}

	if s, ok := val.([]float64); ok {
		return s, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []float64 for path %s", val, path)
}
