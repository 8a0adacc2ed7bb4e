// File: envgrove/config/builder.go
package config

import (
	"fmt"
	"log/slog"
)

// ValidatorFunc validates a fully resolved Config. Validators run after the
// initial build and after every reload attempt, against the staged result;
// a failing validator aborts construction or discards the reload.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations.
type Builder struct {
	schema     *Schema
	files      []string
	environ    func() map[string]string
	validators []ValidatorFunc
	logger     *slog.Logger
	discovery  *DiscoveryOptions
	err        error
}

// NewBuilder creates a configuration builder for the given schema.
func NewBuilder(schema *Schema) *Builder {
	b := &Builder{
		schema:  schema,
		environ: environSnapshot,
	}
	if schema == nil {
		b.err = &SchemaError{Schema: "", Reason: "builder requires a schema"}
	}
	return b
}

// WithFiles appends file sources, merged in listed order before the
// environment overlay. Missing files contribute nothing.
func (b *Builder) WithFiles(paths ...string) *Builder {
	b.files = append(b.files, paths...)
	return b
}

// WithEnvironment replaces the process environment with a fixed snapshot.
// The same snapshot is reused on reload; primarily for tests.
func (b *Builder) WithEnvironment(env map[string]string) *Builder {
	snap := make(map[string]string, len(env))
	for k, v := range env {
		snap[k] = v
	}
	b.environ = func() map[string]string { return snap }
	return b
}

// WithDiscovery enables mode-based default file discovery, used only when
// no files were given explicitly.
func (b *Builder) WithDiscovery(opts DiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithValidator adds a cross-field validation function. Multiple validators
// run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// WithLogger sets the logger used by the reload watcher for failure
// reporting. Defaults to slog.Default().
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build merges sources, resolves every field in declaration order, runs
// validators, and returns the frozen result. The first error aborts the
// whole construction; no partially-resolved instance is ever returned.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	files := b.files
	if len(files) == 0 && b.discovery != nil {
		files = discoverFiles(*b.discovery, b.environ())
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return build(b.schema, files, b.environ, b.validators, logger)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// Load is the convenience entry point: resolve the schema from the given
// files plus the process environment. With no files, mode-based discovery
// of the default base file applies.
func Load(schema *Schema, files ...string) (*Config, error) {
	b := NewBuilder(schema).WithFiles(files...)
	if len(files) == 0 {
		b.WithDiscovery(DefaultDiscoveryOptions())
	}
	return b.Build()
}
