package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime(t *testing.T) {
	c := DateTime()
	when := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)

	lit, err := c.Encode(when)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05.0000006Z"`, lit)

	got, err := c.Decode("2024-01-02T03:04:05.0000006Z")
	require.NoError(t, err)
	assert.True(t, when.Equal(got.(time.Time)))

	_, err = c.Encode(42)
	assert.EqualError(t, err, "DateTime: cannot encode int")

	lit, err = c.Encode("2024-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05Z"`, lit)

	_, err = c.Encode("yesterday")
	assert.Error(t, err)

	_, err = c.Decode(42.0)
	assert.EqualError(t, err, "DateTime: expected string, got float64")
}

func TestUUID(t *testing.T) {
	c := UUID()
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

	lit, err := c.Encode(id)
	require.NoError(t, err)
	assert.Equal(t, `"7c9e6679-7425-40de-944b-e07fc1f90ae7"`, lit)

	lit, err = c.Encode(id.String())
	require.NoError(t, err)
	assert.Equal(t, `"7c9e6679-7425-40de-944b-e07fc1f90ae7"`, lit)

	_, err = c.Encode("nope")
	assert.Error(t, err)

	got, err := c.Decode(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJSONLiteral(t *testing.T) {
	lit, err := jsonLiteral("<a & b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, lit)

	_, err = jsonLiteral(make(chan int))
	assert.Error(t, err)
}
