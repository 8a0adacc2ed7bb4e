// File: envgrove/config/resolve.go
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// snapshot is one complete, immutable value set for a Config node. A new
// snapshot replaces the previous one in a single atomic store; values are
// never mutated in place.
type snapshot struct {
	values map[string]any
}

// Config is a resolved configuration instance. Field values are read through
// an atomic snapshot pointer, so readers never block and always observe one
// complete resolution pass. Instances are frozen on construction; only the
// reload path replaces values, and it replaces all of them together.
type Config struct {
	schema   *Schema
	prefix   string
	children map[string]*Config

	state  atomic.Pointer[snapshot]
	frozen atomic.Bool

	// Root resolution inputs; nil on nested instances.
	files      []string
	environ    func() map[string]string
	validators []ValidatorFunc
	logger     *slog.Logger

	watchMu sync.Mutex
	watcher *watcher
}

// newConfigTree builds the node tree for a schema before any values exist.
// Nested instances are created once and keep their identity across reloads.
func newConfigTree(s *Schema, prefix string) *Config {
	c := &Config{
		schema:   s,
		prefix:   prefix,
		children: make(map[string]*Config),
	}
	for _, f := range s.fields {
		if f.Type.Kind == KindNested {
			c.children[f.Name] = newConfigTree(f.Nested, prefix+f.Prefix)
		}
	}
	return c
}

// build runs the full pipeline: compile schema, merge sources, resolve every
// field in declaration order, run cross-field validators, freeze. The first
// error aborts construction entirely.
func build(s *Schema, files []string, environ func() map[string]string, validators []ValidatorFunc, logger *slog.Logger) (*Config, error) {
	if err := s.compile(); err != nil {
		return nil, err
	}

	src, err := MergeSources(files, environ())
	if err != nil {
		return nil, err
	}

	root := newConfigTree(s, "")
	if err := root.resolve(src); err != nil {
		return nil, err
	}
	for _, v := range validators {
		if err := v(root); err != nil {
			return nil, err
		}
	}

	root.files = files
	root.environ = environ
	root.validators = validators
	root.logger = logger
	return root, nil
}

// resolve builds and stores a complete snapshot for this node and all of its
// children from an already-merged source mapping.
func (c *Config) resolve(src SourceMapping) error {
	values := make(map[string]any, len(c.schema.fields))

	for _, f := range c.schema.fields {
		if f.Type.Kind == KindNested {
			child := c.children[f.Name]
			if err := child.resolve(src); err != nil {
				return err
			}
			values[f.Name] = child
			continue
		}

		key := c.prefix + f.Prefix + f.Name
		var value any
		raw, found := src[key]
		switch {
		case found:
			cast, err := castValue(key, raw, f.Type)
			if err != nil {
				return err
			}
			value = cast
		case f.HasDefault:
			value = normalizeDefault(f.Default)
		default:
			return &MissingFieldError{Key: key}
		}

		if err := validateValue(key, value, f); err != nil {
			return err
		}
		values[f.Name] = value
	}

	c.state.Store(&snapshot{values: values})
	c.frozen.Store(true)
	return nil
}

// reload re-runs the merge and resolution pipeline with a fresh environment
// snapshot. The new value set is built and validated on a detached tree
// first; only on full success is it adopted into the live tree, one atomic
// snapshot swap per node. Any failure leaves the prior state untouched.
func (c *Config) reload() error {
	src, err := MergeSources(c.files, c.environ())
	if err != nil {
		return err
	}

	fresh := newConfigTree(c.schema, c.prefix)
	if err := fresh.resolve(src); err != nil {
		return err
	}
	for _, v := range c.validators {
		if err := v(fresh); err != nil {
			return err
		}
	}

	c.adopt(fresh)
	return nil
}

// adopt publishes a detached tree's snapshots into the live tree, children
// before root, rebinding nested values to the live child instances so
// held references keep working.
func (c *Config) adopt(fresh *Config) {
	for name, child := range c.children {
		child.adopt(fresh.children[name])
	}

	snap := fresh.state.Load()
	values := make(map[string]any, len(snap.values))
	for name, value := range snap.values {
		if _, nested := value.(*Config); nested {
			values[name] = c.children[name]
			continue
		}
		values[name] = value
	}
	c.state.Store(&snapshot{values: values})
}

// Get retrieves a field value. Dotted paths traverse nested configurations
// ("DB.HOST"). The second return value reports whether the field exists.
func (c *Config) Get(path string) (any, bool) {
	snap := c.state.Load()
	if snap == nil {
		return nil, false
	}

	name, rest := path, ""
	if i := strings.IndexByte(path, '.'); i >= 0 {
		name, rest = path[:i], path[i+1:]
	}

	value, ok := snap.values[name]
	if !ok {
		return nil, false
	}
	if rest == "" {
		return value, true
	}

	child, ok := value.(*Config)
	if !ok {
		return nil, false
	}
	return child.Get(rest)
}

// Nested returns the child configuration for a nested field.
func (c *Config) Nested(name string) (*Config, bool) {
	child, ok := c.children[name]
	return child, ok
}

// Frozen reports whether the instance has been published. Always true for
// instances obtained from Build; only the resolution pipeline ever sees an
// unfrozen node.
func (c *Config) Frozen() bool {
	return c.frozen.Load()
}

// Set rejects external mutation. Values change only through the reload
// pipeline, which swaps complete snapshots. The returned error names the
// field's fully-prefixed key.
func (c *Config) Set(path string, _ any) error {
	name, rest := path, ""
	if i := strings.IndexByte(path, '.'); i >= 0 {
		name, rest = path[:i], path[i+1:]
	}
	if rest != "" {
		if child, ok := c.children[name]; ok {
			return child.Set(rest, nil)
		}
	}

	key := c.prefix + name
	if f, ok := c.schema.byName[name]; ok {
		key = c.prefix + f.Prefix + f.Name
	}
	return &MutationError{Key: key}
}

// MapOption adjusts ToMap output.
type MapOption func(*mapOptions)

type mapOptions struct {
	showSecrets  bool
	showComputed bool
}

// ShowSecrets includes literal secret values instead of the mask.
func ShowSecrets() MapOption {
	return func(o *mapOptions) { o.showSecrets = true }
}

// ShowComputed includes derived values registered with Schema.Computed.
func ShowComputed() MapOption {
	return func(o *mapOptions) { o.showComputed = true }
}

// ToMap returns a nested mapping of current values in one consistent
// snapshot per node. Secret values are masked unless ShowSecrets is given,
// at every nesting depth.
func (c *Config) ToMap(opts ...MapOption) map[string]any {
	var o mapOptions
	for _, opt := range opts {
		opt(&o)
	}
	return c.toMap(o)
}

func (c *Config) toMap(o mapOptions) map[string]any {
	snap := c.state.Load()
	if snap == nil {
		return nil
	}

	out := make(map[string]any, len(c.schema.fields))
	for _, f := range c.schema.fields {
		value := snap.values[f.Name]
		if child, nested := value.(*Config); nested {
			out[f.Name] = child.toMap(o)
			continue
		}
		if f.Secret && !o.showSecrets {
			out[f.Name] = MaskedValue
			continue
		}
		out[f.Name] = value
	}

	if o.showComputed {
		for _, cf := range c.schema.computed {
			out[cf.name] = cf.fn(c)
		}
	}
	return out
}

// secretValues collects the literal values of secret fields at every depth,
// for wiring log redaction.
func (c *Config) secretValues(out []string) []string {
	snap := c.state.Load()
	if snap == nil {
		return out
	}
	for _, f := range c.schema.fields {
		value := snap.values[f.Name]
		if child, nested := value.(*Config); nested {
			out = child.secretValues(out)
			continue
		}
		if f.Secret && value != nil {
			out = append(out, fmt.Sprintf("%v", value))
		}
	}
	return out
}

// SecretValues returns the literal values of all secret fields, including
// nested ones. Intended for wiring a RedactHandler.
func (c *Config) SecretValues() []string {
	return c.secretValues(nil)
}

// String renders the schema name and current values with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("<%s %v>", c.schema.name, c.ToMap())
}
