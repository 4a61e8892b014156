package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	ts := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)
	cursor := Cursor{Timestamp: ts, ID: "8c1f0b0e-sale"}

	token := EncodeCursor(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.True(t, ts.Equal(decoded.Timestamp), "Timestamp should match after decode")
	assert.Equal(t, cursor.ID, decoded.ID)

	// Ids containing the separator survive because only the first one splits.
	odd := Cursor{Timestamp: ts, ID: "a|b"}
	decoded, err = DecodeCursor(EncodeCursor(odd))
	assert.NoError(t, err)
	assert.Equal(t, "a|b", decoded.ID)
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeCursor(base64.RawURLEncoding.EncodeToString([]byte("2026-05-15T00:00:00Z")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeCursor(base64.RawURLEncoding.EncodeToString([]byte("notadate|sale-1")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(1000))
}

func TestCursorAfter(t *testing.T) {
	ts := time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)
	c := Cursor{Timestamp: ts, ID: "m"}

	assert.True(t, c.After(ts.Add(-time.Second), "z"))
	assert.False(t, c.After(ts.Add(time.Second), "a"))
	assert.True(t, c.After(ts, "a"))
	assert.False(t, c.After(ts, "m"))
	assert.False(t, c.After(ts, "z"))
}
