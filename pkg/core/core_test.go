package core

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessJSON(t *testing.T) {
	res, err := ProcessJSON(`{"name": "John Doe", "phone": "9876543210"}`, Options{})
	require.NoError(t, err)
	assert.True(t, res.Sensitive)
	assert.Equal(t, `{"name": "John Doe", "phone": "98XXXXXX10"}`, res.Data)

	res, err = ProcessJSON(`{"name": "John Doe", "phone": "9876543210"}`, Options{Policy: PolicyMaskOnSensitive})
	require.NoError(t, err)
	assert.Equal(t, `{"name": "JXXX DXXX", "phone": "98XXXXXX10"}`, res.Data)
	assert.Len(t, res.Redactions, 2)

	_, err = ProcessJSON(`[1, 2]`, Options{})
	assert.Error(t, err)
}

func TestProcessJSON_Disable(t *testing.T) {
	res, err := ProcessJSON(`{"phone": "9876543210"}`, Options{Disable: []string{"phone_number"}})
	require.NoError(t, err)
	assert.False(t, res.Sensitive)
	assert.Equal(t, `{"phone": "9876543210"}`, res.Data)
}

func TestProcessBatch(t *testing.T) {
	rows := []Row{
		{ID: "1", Data: `{"aadhaar": "2345 6789 0123"}`},
		{ID: "2", Data: `{"note": "nothing here"}`},
		{ID: "3", Data: `{broken`},
	}
	got, err := Process(context.Background(), rows, Options{}, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "1", got[0].ID)
	assert.True(t, got[0].Sensitive)
	assert.Equal(t, `{"aadhaar": "23XXXXXXXX23"}`, got[0].Data)

	assert.False(t, got[1].Sensitive)
	assert.Equal(t, `{"note": "nothing here"}`, got[1].Data)

	assert.True(t, got[2].Malformed)
	assert.False(t, got[2].Sensitive)
	assert.Equal(t, `{broken`, got[2].Data)
	assert.NotEmpty(t, got[2].Error)
}

func TestResultsJSONRoundTrip(t *testing.T) {
	in := []Result{{ID: "1", Data: `{"email": "joXXX@example.com"}`, Sensitive: true}}
	var buf bytes.Buffer
	require.NoError(t, MarshalResults(&buf, in))
	assert.Contains(t, buf.String(), `"is_pii": true`)
	out, err := UnmarshalResults(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestIdentifierIDs(t *testing.T) {
	ids := IdentifierIDs()
	assert.Contains(t, ids, "phone_number")
	assert.Contains(t, ids, "split_name")
}
