package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[]", formatVector(nil))
	assert.Equal(t, "[0.500000]", formatVector([]float32{0.5}))
	assert.Equal(t, "[0.100000,-0.250000,1.000000]", formatVector([]float32{0.1, -0.25, 1}))
}

func TestParseVector(t *testing.T) {
	vec, err := parseVector("[0.1,-0.25,1]")
	require.NoError(t, err)
	require.Len(t, vec, 3)
	assert.InDelta(t, 0.1, vec[0], 1e-6)
	assert.InDelta(t, -0.25, vec[1], 1e-6)
	assert.InDelta(t, 1.0, vec[2], 1e-6)
}

func TestParseVector_AcceptsSpacesAndEmpty(t *testing.T) {
	vec, err := parseVector(" [ 0.5 , 0.25 ] ")
	require.NoError(t, err)
	require.Len(t, vec, 2)
	assert.InDelta(t, 0.5, vec[0], 1e-6)

	vec, err = parseVector("[]")
	require.NoError(t, err)
	assert.Nil(t, vec)
}

func TestParseVector_RejectsMalformedLiterals(t *testing.T) {
	for _, in := range []string{"", "0.1,0.2", "[0.1,0.2", "0.1,0.2]", "[0.1,abc]"} {
		_, err := parseVector(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	original := []float32{0.123456, -0.654321, 0, 1}

	parsed, err := parseVector(formatVector(original))
	require.NoError(t, err)
	require.Len(t, parsed, len(original))
	for i := range original {
		assert.InDelta(t, original[i], parsed[i], 1e-5)
	}
}
