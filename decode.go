// File: envgrove/config/decode.go
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the resolved values under basePath into the target struct or
// map. An empty basePath decodes the whole tree; a dotted path selects a
// nested configuration. Secret values are decoded unmasked. The target must
// be a non-nil pointer; fields map via the "config" struct tag.
func (c *Config) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	node := c
	basePath = strings.TrimSuffix(basePath, ".")
	if basePath != "" {
		val, ok := c.Get(basePath)
		if !ok {
			return fmt.Errorf("not a registered field: %s", basePath)
		}
		child, ok := val.(*Config)
		if !ok {
			return fmt.Errorf("path %q does not refer to a nested configuration (got %T)", basePath, val)
		}
		node = child
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
			pathToStringHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(node.ToMap(ShowSecrets())); err != nil {
		return fmt.Errorf("failed to scan %q into %T: %w", basePath, target, err)
	}
	return nil
}

// pathToStringHookFunc lets Path values decode into plain string fields.
func pathToStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f == reflect.TypeOf(Path("")) && t.Kind() == reflect.String {
			return string(data.(Path)), nil
		}
		return data, nil
	}
}
