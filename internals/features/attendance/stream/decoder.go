// internals/features/attendance/stream/decoder.go
package stream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrDecode wraps malformed payloads. Callers log and drop; a decode failure
// must never reach the reconciliation engine or stop stream consumption.
type ErrDecode struct {
	Reason string
}

func (e *ErrDecode) Error() string {
	return "stream decode: " + e.Reason
}

// rawNotification is the NOTIFY payload shape produced by the
// attendance_notify() trigger (same fields the Supabase postgres_changes
// feed carries).
type rawNotification struct {
	Kind  string          `json:"kind"`
	Table string          `json:"table"`
	Row   json.RawMessage `json:"row"`
}

type Decoder struct {
	// Table this consumer cares about; everything else on the shared
	// stream is skipped without error.
	Table string
}

func NewDecoder() *Decoder {
	return &Decoder{Table: "attendance"}
}

// Decode normalizes one raw notification. Returns (nil, nil) for rows of
// other tables, (*ChangeEvent, nil) on success, (nil, *ErrDecode) for
// malformed payloads.
func (d *Decoder) Decode(payload []byte) (*ChangeEvent, error) {
	var raw rawNotification
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &ErrDecode{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if raw.Table != d.Table {
		return nil, nil
	}

	var kind Kind
	switch strings.ToUpper(strings.TrimSpace(raw.Kind)) {
	case string(KindInsert):
		kind = KindInsert
	case string(KindUpdate):
		kind = KindUpdate
	default:
		return nil, &ErrDecode{Reason: "unknown kind " + raw.Kind}
	}

	var row AttendanceRow
	if err := json.Unmarshal(raw.Row, &row); err != nil {
		return nil, &ErrDecode{Reason: fmt.Sprintf("invalid row payload: %v", err)}
	}
	if row.ID == nil {
		return nil, &ErrDecode{Reason: "row missing id"}
	}

	return &ChangeEvent{Kind: kind, Row: row}, nil
}
