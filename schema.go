// File: envgrove/config/schema.go
package config

import (
	"fmt"
	"strings"
)

// Kind identifies a field's semantic type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindPath
	KindSequence
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindPath:
		return "path"
	case KindSequence:
		return "sequence"
	case KindNested:
		return "nested"
	default:
		return "invalid"
	}
}

// Path is a filesystem path value. No existence check is performed.
type Path string

func (p Path) String() string { return string(p) }

// TypeSpec is a field's declared type, decided once at registration time.
type TypeSpec struct {
	Kind     Kind
	Elem     Kind // element kind when Kind == KindSequence
	Optional bool // empty raw input resolves to absence (nil)
	Tuple    bool // sequence with fixed semantics
	Arity    int  // required element count when Tuple and > 0
}

func (t TypeSpec) String() string {
	var base string
	switch t.Kind {
	case KindSequence:
		if t.Tuple {
			if t.Arity > 0 {
				base = fmt.Sprintf("tuple[%s,%d]", t.Elem, t.Arity)
			} else {
				base = fmt.Sprintf("tuple[%s]", t.Elem)
			}
		} else {
			base = "[]" + t.Elem.String()
		}
	default:
		base = t.Kind.String()
	}
	if t.Optional {
		return "optional[" + base + "]"
	}
	return base
}

// FieldValidator is a user-supplied predicate applied to the final value.
type FieldValidator func(value any) bool

// FieldSpec describes one configuration field. Built once per schema via
// registration and immutable thereafter.
type FieldSpec struct {
	Name       string
	Type       TypeSpec
	Default    any
	HasDefault bool
	Secret     bool
	Min        *float64
	Max        *float64
	Choices    []any
	Validator  FieldValidator
	Prefix     string
	Nested     *Schema
}

// FieldOption configures a FieldSpec during registration.
type FieldOption func(*FieldSpec)

// Default sets the value used when no source provides one. A field without
// a default is required.
func Default(v any) FieldOption {
	return func(f *FieldSpec) {
		f.Default = v
		f.HasDefault = true
	}
}

// Secret marks the field for masking in textual and mapping output.
func Secret() FieldOption {
	return func(f *FieldSpec) { f.Secret = true }
}

// Min sets the inclusive lower bound for numeric fields.
func Min(v float64) FieldOption {
	return func(f *FieldSpec) { f.Min = &v }
}

// Max sets the inclusive upper bound for numeric fields.
func Max(v float64) FieldOption {
	return func(f *FieldSpec) { f.Max = &v }
}

// Choices restricts the final value to the given set.
func Choices(vals ...any) FieldOption {
	return func(f *FieldSpec) { f.Choices = vals }
}

// Validate attaches a custom predicate, applied after cast and built-in
// validation.
func Validate(fn FieldValidator) FieldOption {
	return func(f *FieldSpec) { f.Validator = fn }
}

// Prefix prepends to the field's source key. For nested fields it composes
// the child prefix; for plain fields it extends the lookup key.
func Prefix(p string) FieldOption {
	return func(f *FieldSpec) { f.Prefix = p }
}

// Optional makes an empty raw input resolve to absence (nil) regardless of
// the element type, including string. There is no way to represent an
// explicitly empty string through an optional field. Optional does not make
// the field itself skippable: a field no source mentions still needs a
// default, so a fully absent-able field pairs Optional with Default(nil).
func Optional() FieldOption {
	return func(f *FieldSpec) { f.Type.Optional = true }
}

// ComputedFunc derives a read-only value from a resolved configuration.
type ComputedFunc func(c *Config) any

type computedField struct {
	name string
	fn   ComputedFunc
}

// Schema is the ordered field table for one configuration definition.
// Registration errors accumulate and surface when the schema is compiled
// at Build. A schema must not reference itself, directly or indirectly;
// a cyclic definition is a programming error and is not runtime-checked.
type Schema struct {
	name     string
	fields   []*FieldSpec
	byName   map[string]*FieldSpec
	computed []computedField
	err      error
}

// NewSchema creates an empty schema. The name appears in errors and in the
// textual representation of resolved instances.
func NewSchema(name string) *Schema {
	return &Schema{
		name:   name,
		byName: make(map[string]*FieldSpec),
	}
}

// Name returns the schema's name.
func (s *Schema) Name() string { return s.name }

// Err returns the first registration error, if any.
func (s *Schema) Err() error { return s.err }

// Fields returns the field specs in declaration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	for i, f := range s.fields {
		out[i] = *f
	}
	return out
}

// Field registers a field with an explicit type spec. Most callers use the
// typed declarators below instead.
func (s *Schema) Field(name string, t TypeSpec, opts ...FieldOption) *Schema {
	spec := &FieldSpec{Name: name, Type: t}
	for _, opt := range opts {
		opt(spec)
	}
	if err := s.checkField(spec); err != nil {
		s.fail(err)
		return s
	}
	s.fields = append(s.fields, spec)
	s.byName[spec.Name] = spec
	return s
}

// String registers a string field.
func (s *Schema) String(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindString}, opts...)
}

// Int registers an integer field.
func (s *Schema) Int(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindInt}, opts...)
}

// Float registers a floating-point field.
func (s *Schema) Float(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindFloat}, opts...)
}

// Bool registers a boolean field.
func (s *Schema) Bool(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindBool}, opts...)
}

// Path registers a filesystem path field.
func (s *Schema) Path(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindPath}, opts...)
}

// Strings registers a comma-separated sequence of strings.
func (s *Schema) Strings(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindSequence, Elem: KindString}, opts...)
}

// Ints registers a comma-separated sequence of integers.
func (s *Schema) Ints(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindSequence, Elem: KindInt}, opts...)
}

// Floats registers a comma-separated sequence of floats.
func (s *Schema) Floats(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindSequence, Elem: KindFloat}, opts...)
}

// Bools registers a comma-separated sequence of booleans.
func (s *Schema) Bools(name string, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindSequence, Elem: KindBool}, opts...)
}

// Tuple registers an ordered sequence with fixed element count. Arity 0
// leaves the element count open.
func (s *Schema) Tuple(name string, elem Kind, arity int, opts ...FieldOption) *Schema {
	return s.Field(name, TypeSpec{Kind: KindSequence, Elem: elem, Tuple: true, Arity: arity}, opts...)
}

// Nested registers a field whose value is a child configuration resolved
// from the same merged sources, with the field's Prefix composed onto the
// parent's.
func (s *Schema) Nested(name string, child *Schema, opts ...FieldOption) *Schema {
	opts = append(opts, func(f *FieldSpec) { f.Nested = child })
	return s.Field(name, TypeSpec{Kind: KindNested}, opts...)
}

// Computed registers a derived, read-only value included in ToMap output on
// request. Computed values are not resolved from sources and never secret.
func (s *Schema) Computed(name string, fn ComputedFunc) *Schema {
	if name == "" || fn == nil {
		s.fail(&SchemaError{Schema: s.name, Field: name, Reason: "computed value requires a name and a function"})
		return s
	}
	s.computed = append(s.computed, computedField{name: name, fn: fn})
	return s
}

func (s *Schema) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Schema) checkField(f *FieldSpec) error {
	switch {
	case f.Name == "":
		return &SchemaError{Schema: s.name, Reason: "field name cannot be empty"}
	case strings.HasPrefix(f.Name, "_"):
		return &SchemaError{Schema: s.name, Field: f.Name, Reason: "names beginning with '_' are reserved"}
	case strings.Contains(f.Name, "."):
		return &SchemaError{Schema: s.name, Field: f.Name, Reason: "field name cannot contain '.'"}
	}
	if _, dup := s.byName[f.Name]; dup {
		return &SchemaError{Schema: s.name, Field: f.Name, Reason: "duplicate field"}
	}

	switch f.Type.Kind {
	case KindString, KindInt, KindFloat, KindBool, KindPath:
	case KindSequence:
		switch f.Type.Elem {
		case KindString, KindInt, KindFloat, KindBool:
		default:
			return &SchemaError{Schema: s.name, Field: f.Name,
				Reason: fmt.Sprintf("sequence element type %s is not supported", f.Type.Elem)}
		}
	case KindNested:
		if f.Nested == nil {
			return &SchemaError{Schema: s.name, Field: f.Name, Reason: "nested field requires a child schema"}
		}
	default:
		return &SchemaError{Schema: s.name, Field: f.Name,
			Reason: fmt.Sprintf("unknown type %s", f.Type.Kind)}
	}
	return nil
}

// compile surfaces registration errors for this schema and every nested
// schema reachable from it.
func (s *Schema) compile() error {
	if s.err != nil {
		return s.err
	}
	for _, f := range s.fields {
		if f.Type.Kind == KindNested {
			if err := f.Nested.compile(); err != nil {
				return err
			}
		}
	}
	return nil
}
