package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode_Insert(t *testing.T) {
	d := NewDecoder()

	ev, err := d.Decode([]byte(`{
		"kind": "INSERT",
		"table": "attendance",
		"row": {
			"id": "7b0c4b1e-93f2-4fb4-9f53-2f4a2a1c9f01",
			"user_id": "1e7c9a2b-5d44-4f1a-8a1e-aa0b6a3d2c10",
			"date": "2024-01-10",
			"check_in": "09:00:00",
			"check_out": null,
			"work_done": null
		}
	}`))
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, KindInsert, ev.Kind)
	require.NotNil(t, ev.Row.ID)
	assert.Equal(t, "7b0c4b1e-93f2-4fb4-9f53-2f4a2a1c9f01", ev.Row.ID.String())
	require.NotNil(t, ev.Row.Date)
	assert.Equal(t, "2024-01-10", ev.Row.Date.String())
	require.NotNil(t, ev.Row.CheckIn)
	assert.Equal(t, "09:00:00", ev.Row.CheckIn.String())
	assert.Nil(t, ev.Row.CheckOut, "explicit null and absent both decode to nil")
}

func TestDecoder_Decode_PartialUpdate(t *testing.T) {
	d := NewDecoder()

	ev, err := d.Decode([]byte(`{
		"kind": "UPDATE",
		"table": "attendance",
		"row": {
			"id": "7b0c4b1e-93f2-4fb4-9f53-2f4a2a1c9f01",
			"check_out": "17:30:00",
			"work_done": "wrote report"
		}
	}`))
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, KindUpdate, ev.Kind)
	assert.Nil(t, ev.Row.UserID)
	assert.Nil(t, ev.Row.CheckIn)
	require.NotNil(t, ev.Row.CheckOut)
	assert.Equal(t, "17:30:00", ev.Row.CheckOut.String())
	assert.Equal(t, "wrote report", *ev.Row.WorkDone)
}

func TestDecoder_Decode_OtherTableSkipped(t *testing.T) {
	d := NewDecoder()

	ev, err := d.Decode([]byte(`{"kind":"INSERT","table":"profiles","row":{"id":"7b0c4b1e-93f2-4fb4-9f53-2f4a2a1c9f01"}}`))
	assert.NoError(t, err)
	assert.Nil(t, ev, "events for other tables are silently skipped")
}

func TestDecoder_Decode_Malformed(t *testing.T) {
	d := NewDecoder()

	cases := map[string]string{
		"bad json":     `{"kind": "INSERT",`,
		"unknown kind": `{"kind":"DELETE","table":"attendance","row":{"id":"7b0c4b1e-93f2-4fb4-9f53-2f4a2a1c9f01"}}`,
		"missing id":   `{"kind":"INSERT","table":"attendance","row":{"date":"2024-01-10"}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := d.Decode([]byte(payload))
			assert.Nil(t, ev)
			var de *ErrDecode
			assert.ErrorAs(t, err, &de, "malformed payloads surface a decode error")
		})
	}
}
