package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	got, err := marshalCanonical(map[string]any{
		"zebra": 1,
		"apple": 2,
		"mango": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":3,"zebra":1}`, string(got))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	got, err := marshalCanonical(map[string]any{"html": "<a href>&"})
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<a href>&"}`, string(got))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "é" composed (U+00E9) vs decomposed (e + U+0301) must serialize
	// identically.
	composed, err := marshalCanonical("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := marshalCanonical("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, string(composed), string(decomposed))
}

func TestMarshalCanonicalRejectsFloatsAndNil(t *testing.T) {
	_, err := marshalCanonical(3.14)
	assert.Error(t, err)

	_, err = marshalCanonical(map[string]any{"v": nil})
	assert.Error(t, err)
}

func TestMarshalCanonicalArraysAndBools(t *testing.T) {
	got, err := marshalCanonical(map[string]any{
		"tags": []string{"booking", "cta"},
		"ok":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"tags":["booking","cta"]}`, string(got))
}
