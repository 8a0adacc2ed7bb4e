// File: envgrove/config/schema_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDeclarationOrder(t *testing.T) {
	s := NewSchema("Ordered").
		String("B").
		Int("A").
		Bool("C")

	require.NoError(t, s.Err())

	fields := s.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "B", fields[0].Name)
	assert.Equal(t, "A", fields[1].Name)
	assert.Equal(t, "C", fields[2].Name)
}

func TestSchemaRegistrationErrors(t *testing.T) {
	cases := []struct {
		name   string
		build  func() *Schema
		reason string
	}{
		{
			name:   "empty field name",
			build:  func() *Schema { return NewSchema("S").String("") },
			reason: "field name cannot be empty",
		},
		{
			name:   "reserved underscore prefix",
			build:  func() *Schema { return NewSchema("S").String("_INTERNAL") },
			reason: "reserved",
		},
		{
			name:   "dot in name",
			build:  func() *Schema { return NewSchema("S").String("A.B") },
			reason: "cannot contain '.'",
		},
		{
			name:   "duplicate field",
			build:  func() *Schema { return NewSchema("S").String("A").Int("A") },
			reason: "duplicate field",
		},
		{
			name:   "nil nested schema",
			build:  func() *Schema { return NewSchema("S").Nested("DB", nil) },
			reason: "requires a child schema",
		},
		{
			name: "unsupported sequence element",
			build: func() *Schema {
				return NewSchema("S").Field("X", TypeSpec{Kind: KindSequence, Elem: KindPath})
			},
			reason: "not supported",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.build()
			require.Error(t, s.Err())

			var se *SchemaError
			require.ErrorAs(t, s.Err(), &se)
			assert.Contains(t, se.Error(), tc.reason)
		})
	}
}

func TestSchemaErrorSurfacesAtBuild(t *testing.T) {
	s := NewSchema("Broken").String("_BAD")

	_, err := NewBuilder(s).WithEnvironment(nil).Build()
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Broken", se.Schema)
}

func TestSchemaNestedErrorSurfacesAtBuild(t *testing.T) {
	child := NewSchema("Child").String("A.B")
	parent := NewSchema("Parent").Nested("SUB", child)

	_, err := NewBuilder(parent).WithEnvironment(nil).Build()
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Child", se.Schema)
}

func TestSchemaFirstErrorWins(t *testing.T) {
	s := NewSchema("S").String("_FIRST").String("A.B")

	var se *SchemaError
	require.ErrorAs(t, s.Err(), &se)
	assert.Equal(t, "_FIRST", se.Field)
}

func TestSchemaComputedRequiresNameAndFunc(t *testing.T) {
	s := NewSchema("S").Computed("", func(c *Config) any { return nil })
	require.Error(t, s.Err())

	s2 := NewSchema("S").Computed("X", nil)
	require.Error(t, s2.Err())
}

func TestTypeSpecString(t *testing.T) {
	assert.Equal(t, "int", TypeSpec{Kind: KindInt}.String())
	assert.Equal(t, "optional[string]", TypeSpec{Kind: KindString, Optional: true}.String())
	assert.Equal(t, "[]float", TypeSpec{Kind: KindSequence, Elem: KindFloat}.String())
	assert.Equal(t, "tuple[int,3]", TypeSpec{Kind: KindSequence, Elem: KindInt, Tuple: true, Arity: 3}.String())
	assert.Equal(t, "tuple[bool]", TypeSpec{Kind: KindSequence, Elem: KindBool, Tuple: true}.String())
}
