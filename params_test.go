package docdex_test

import (
	"encoding/json"
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	t.Parallel()

	t.Run("accepts integers in range", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(42)

		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("truncates floats toward zero", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(3.7)

		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("clamps negative values to minimum", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(-5)

		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("clamps oversized values to maximum", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(500)

		require.NoError(t, err)
		assert.Equal(t, 100, got)
	})

	t.Run("accepts numeric strings", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit("25")

		require.NoError(t, err)
		assert.Equal(t, 25, got)
	})

	t.Run("truncates float strings", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit("5.9")

		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("accepts json numbers", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(json.Number("7"))

		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("rejects non-numeric strings", func(t *testing.T) {
		t.Parallel()

		_, err := docdex.ParseLimit("abc")

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
		assert.Equal(t, "limit must be an integer", docdex.ErrorMessage(err))
	})

	t.Run("rejects non-numeric types", func(t *testing.T) {
		t.Parallel()

		_, err := docdex.ParseLimit(true)

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("nil selects the default", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(nil)

		require.NoError(t, err)
		assert.Equal(t, docdex.DefaultLimit, got)
	})

	t.Run("zero clamps to minimum rather than defaulting", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseLimit(0)

		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})
}

func TestParseThreshold(t *testing.T) {
	t.Parallel()

	t.Run("nil selects the default", func(t *testing.T) {
		t.Parallel()

		got, err := docdex.ParseThreshold(nil)

		require.NoError(t, err)
		assert.Equal(t, 60, got)
	})

	t.Run("clamps to score range", func(t *testing.T) {
		t.Parallel()

		low, err := docdex.ParseThreshold(-10)
		require.NoError(t, err)
		assert.Equal(t, 0, low)

		high, err := docdex.ParseThreshold(150)
		require.NoError(t, err)
		assert.Equal(t, 100, high)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		t.Parallel()

		_, err := docdex.ParseThreshold("strict")

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}

func TestValidateTerm(t *testing.T) {
	t.Parallel()

	t.Run("accepts ordinary terms", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, docdex.ValidateTerm("useState"))
	})

	t.Run("rejects empty terms", func(t *testing.T) {
		t.Parallel()

		err := docdex.ValidateTerm("")

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects whitespace-only terms", func(t *testing.T) {
		t.Parallel()

		err := docdex.ValidateTerm("   \t")

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects oversized terms", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 501)
		for i := range long {
			long[i] = 'a'
		}

		err := docdex.ValidateTerm(string(long))

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
