// File: envgrove/config/cast_test.go
package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastBool(t *testing.T) {
	t.Run("truthy literals", func(t *testing.T) {
		for _, raw := range []string{"true", "TRUE", "True", "1", "yes", "YES", "on", "On"} {
			v, err := castValue("FLAG", raw, TypeSpec{Kind: KindBool})
			require.NoError(t, err, "raw %q", raw)
			assert.Equal(t, true, v, "raw %q", raw)
		}
	})

	t.Run("falsy literals", func(t *testing.T) {
		for _, raw := range []string{"false", "FALSE", "0", "no", "NO", "off", "Off"} {
			v, err := castValue("FLAG", raw, TypeSpec{Kind: KindBool})
			require.NoError(t, err, "raw %q", raw)
			assert.Equal(t, false, v, "raw %q", raw)
		}
	})

	t.Run("native bool", func(t *testing.T) {
		v, err := castValue("FLAG", true, TypeSpec{Kind: KindBool})
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []any{"maybe", "2", "", "tru", 1.5} {
			_, err := castValue("FLAG", raw, TypeSpec{Kind: KindBool})
			require.Error(t, err, "raw %v", raw)
			var ce *CastError
			assert.ErrorAs(t, err, &ce)
			assert.Equal(t, "FLAG", ce.Key)
		}
	})
}

func TestCastInt(t *testing.T) {
	t.Run("from string", func(t *testing.T) {
		v, err := castValue("N", "42", TypeSpec{Kind: KindInt})
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("from json number", func(t *testing.T) {
		v, err := castValue("N", json.Number("9007199254740993"), TypeSpec{Kind: KindInt})
		require.NoError(t, err)
		assert.Equal(t, int64(9007199254740993), v)
	})

	t.Run("native int64", func(t *testing.T) {
		v, err := castValue("N", int64(7), TypeSpec{Kind: KindInt})
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)
	})

	t.Run("rejects non-integer", func(t *testing.T) {
		for _, raw := range []any{"4.5", "abc", "", 4.5} {
			_, err := castValue("N", raw, TypeSpec{Kind: KindInt})
			var ce *CastError
			require.ErrorAs(t, err, &ce, "raw %v", raw)
		}
	})
}

func TestCastFloat(t *testing.T) {
	t.Run("from string", func(t *testing.T) {
		v, err := castValue("F", "3.25", TypeSpec{Kind: KindFloat})
		require.NoError(t, err)
		assert.Equal(t, 3.25, v)
	})

	t.Run("widens integer input", func(t *testing.T) {
		v, err := castValue("F", int64(3), TypeSpec{Kind: KindFloat})
		require.NoError(t, err)
		assert.Equal(t, 3.0, v)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := castValue("F", "not-a-number", TypeSpec{Kind: KindFloat})
		var ce *CastError
		require.ErrorAs(t, err, &ce)
	})
}

func TestCastString(t *testing.T) {
	v, err := castValue("S", "hello", TypeSpec{Kind: KindString})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = castValue("S", int64(1), TypeSpec{Kind: KindString})
	var ce *CastError
	require.ErrorAs(t, err, &ce)
}

func TestCastPath(t *testing.T) {
	v, err := castValue("P", "/var/data", TypeSpec{Kind: KindPath})
	require.NoError(t, err)
	assert.Equal(t, Path("/var/data"), v)
}

func TestCastOptional(t *testing.T) {
	t.Run("empty string is absence", func(t *testing.T) {
		for _, kind := range []Kind{KindString, KindInt, KindFloat, KindBool, KindPath} {
			v, err := castValue("OPT", "", TypeSpec{Kind: kind, Optional: true})
			require.NoError(t, err, "kind %s", kind)
			assert.Nil(t, v, "kind %s", kind)
		}
	})

	t.Run("nil raw is absence", func(t *testing.T) {
		v, err := castValue("OPT", nil, TypeSpec{Kind: KindInt, Optional: true})
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("non-empty value still casts", func(t *testing.T) {
		v, err := castValue("OPT", "8", TypeSpec{Kind: KindInt, Optional: true})
		require.NoError(t, err)
		assert.Equal(t, int64(8), v)
	})
}

func TestCastSequence(t *testing.T) {
	t.Run("comma split with per-element trim", func(t *testing.T) {
		v, err := castValue("RATES", " 1.1, 2.2 , 3.3 ", TypeSpec{Kind: KindSequence, Elem: KindFloat})
		require.NoError(t, err)
		assert.Equal(t, []float64{1.1, 2.2, 3.3}, v)
	})

	t.Run("string elements keep inner spacing", func(t *testing.T) {
		v, err := castValue("HOSTS", "a , b b ,c", TypeSpec{Kind: KindSequence, Elem: KindString})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b b", "c"}, v)
	})

	t.Run("native sequence from structured source", func(t *testing.T) {
		v, err := castValue("IDS", []any{int64(1), "2", json.Number("3")}, TypeSpec{Kind: KindSequence, Elem: KindInt})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, v)
	})

	t.Run("bad element fails the whole cast", func(t *testing.T) {
		_, err := castValue("IDS", "1,x,3", TypeSpec{Kind: KindSequence, Elem: KindInt})
		var ce *CastError
		require.ErrorAs(t, err, &ce)
	})

	t.Run("tuple arity enforced", func(t *testing.T) {
		spec := TypeSpec{Kind: KindSequence, Elem: KindFloat, Tuple: true, Arity: 3}

		v, err := castValue("POINT", "1,2,3", spec)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, v)

		_, err = castValue("POINT", "1,2", spec)
		var ce *CastError
		require.ErrorAs(t, err, &ce)
		assert.Contains(t, ce.Error(), "expected exactly 3 elements")
	})

	t.Run("open tuple accepts any length", func(t *testing.T) {
		spec := TypeSpec{Kind: KindSequence, Elem: KindInt, Tuple: true}
		v, err := castValue("T", "1,2,3,4", spec)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, v)
	})
}

func TestNormalizeDefault(t *testing.T) {
	assert.Equal(t, int64(5), normalizeDefault(5))
	assert.Equal(t, float64(2.5), normalizeDefault(float32(2.5)))
	assert.Equal(t, "x", normalizeDefault("x"))
	assert.Equal(t, Path("/p"), normalizeDefault(Path("/p")))
}
