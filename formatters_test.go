package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func TestTextFormatters(t *testing.T) {
	s := "MiXeD"

	assert.Nil(t, Lowercase(nil))
	assert.Nil(t, Uppercase(nil))
	assert.Equal(t, "mixed", Lowercase("MiXeD"))
	assert.Equal(t, "MIXED", Uppercase(&s))
	assert.Equal(t, "ABC", Uppercase(label("abc")))
	assert.Equal(t, 42, Uppercase(42))

	var missing *string
	assert.Nil(t, Lowercase(missing))
}

func TestToJSON(t *testing.T) {
	got, err := ToJSON(map[string]any{"a": 1, "b": []int{2}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}", got)

	got, err = ToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", got)

	_, err = ToJSON(func() {})
	assert.Error(t, err)
}
