// File: envgrove/config/validate_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValueOrder(t *testing.T) {
	min := 0.0
	spec := &FieldSpec{
		Name:    "N",
		Type:    TypeSpec{Kind: KindInt},
		Choices: []any{5, 50},
		Min:     &min,
		Validator: func(v any) bool {
			t.Fatal("predicate must not run after a choices failure")
			return true
		},
	}

	err := validateValue("N", int64(7), spec)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "not in choices")
}

func TestValidateNilExempt(t *testing.T) {
	spec := &FieldSpec{
		Name:      "N",
		Type:      TypeSpec{Kind: KindInt, Optional: true},
		Choices:   []any{1},
		Validator: func(v any) bool { return false },
	}
	assert.NoError(t, validateValue("N", nil, spec))
}

func TestValidateChoicesNormalization(t *testing.T) {
	t.Run("path against string choices", func(t *testing.T) {
		spec := &FieldSpec{Name: "P", Choices: []any{"/a", "/b"}}
		assert.NoError(t, validateValue("P", Path("/a"), spec))
	})

	t.Run("int64 against int choices", func(t *testing.T) {
		spec := &FieldSpec{Name: "N", Choices: []any{1, 2}}
		assert.NoError(t, validateValue("N", int64(2), spec))
		require.Error(t, validateValue("N", int64(3), spec))
	})

	t.Run("sequences skip choices", func(t *testing.T) {
		spec := &FieldSpec{Name: "S", Choices: []any{"a"}}
		assert.NoError(t, validateValue("S", []string{"x"}, spec))
	})
}

func TestValidateBounds(t *testing.T) {
	min, max := 1.0, 10.0
	spec := &FieldSpec{Name: "N", Min: &min, Max: &max}

	assert.NoError(t, validateValue("N", int64(1), spec))
	assert.NoError(t, validateValue("N", int64(10), spec))
	assert.NoError(t, validateValue("N", 5.5, spec))

	require.Error(t, validateValue("N", int64(0), spec))
	require.Error(t, validateValue("N", 10.5, spec))

	// Bounds apply to numeric kinds only.
	assert.NoError(t, validateValue("N", "text", spec))
}
