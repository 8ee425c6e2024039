package ctxparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, `{"a": "b"}`, Clean(`"{""a"": ""b""}"`))
	assert.Equal(t, `{"a": 1}`, Clean(`  {"a": 1} `))
}

func TestRepair(t *testing.T) {
	got := Repair(`{"dob": 1990-05-01, "status": active, "ok": true, "x": null}`)
	assert.Equal(t, `{"dob": "1990-05-01", "status": "active", "ok": true, "x": null}`, got)
}

func TestParseKeepsOrder(t *testing.T) {
	root, err := Parse(`{"zeta": 1, "alpha": "two", "mid": {"b": 1, "a": 2}}`)
	require.NoError(t, err)

	var keys []string
	for _, l := range Leaves(root) {
		keys = append(keys, l.Path)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid.b", "mid.a"}, keys)
}

func TestParseRepairsBareValues(t *testing.T) {
	root, err := Parse(`{"name": "Asha", "dob": 1992-11-30, "state": pending}`)
	require.NoError(t, err)
	out, err := EncodeJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Asha", "dob": "1992-11-30", "state": "pending"}`, out)
}

func TestParseFallsBackToUnrepaired(t *testing.T) {
	// Quoting only "John" would break the value; yaml reads the original.
	root, err := Parse(`{"name": John Doe}`)
	require.NoError(t, err)
	leaves := Leaves(root)
	require.Len(t, leaves, 1)
	assert.Equal(t, "John Doe", leaves[0].Node.Value)
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{"", `""`, `[1, 2]`, `{"a": [1, 2}`, `plain text`} {
		_, err := Parse(raw)
		var me *MalformedInputError
		require.Error(t, err, raw)
		assert.True(t, errors.As(err, &me), "%q: want MalformedInputError, got %T", raw, err)
	}
}
