package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTod_ParseAndString(t *testing.T) {
	tod, err := ParseTod("09:05:00")
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", tod.String())

	_, err = ParseTod("25:00:00")
	assert.Error(t, err)
}

func TestTod_ScanVariants(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan("17:30:00"))
	assert.Equal(t, "17:30:00", tod.String())

	require.NoError(t, tod.Scan([]byte("08:15:30")))
	assert.Equal(t, "08:15:30", tod.String())
}

func TestTod_Value(t *testing.T) {
	tod := TodFrom(time.Date(2024, 1, 10, 17, 30, 0, 0, time.UTC))
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "17:30:00", v)
}

func TestTod_JSONRoundTrip(t *testing.T) {
	tod, err := ParseTod("09:00:00")
	require.NoError(t, err)

	b, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"09:00:00"`, string(b))

	var back Tod
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, tod.String(), back.String())
}

func TestDay_ParseAndString(t *testing.T) {
	d, err := ParseDay("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", d.String())

	_, err = ParseDay("10/01/2024")
	assert.Error(t, err)
}

func TestDay_ScanTruncatesTimestamp(t *testing.T) {
	var d Day
	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-01-10", d.String())
}

func TestDay_Equal(t *testing.T) {
	a, err := ParseDay("2024-01-10")
	require.NoError(t, err)
	b := DayFrom(time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC))

	assert.True(t, a.Equal(b))

	c, err := ParseDay("2024-01-11")
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestDay_JSONRoundTrip(t *testing.T) {
	d, err := ParseDay("2024-01-10")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10"`, string(b))

	var back Day
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))
}
