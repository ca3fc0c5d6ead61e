// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

/* =========================================================
   Tod — time of day, maps to Postgres TIME
   ========================================================= */

type Tod struct{ time.Time }

// TodFrom takes HH:mm:ss from t, dropping date and zone.
func TodFrom(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// ParseTod builds a Tod from "HH:mm[:ss]".
func ParseTod(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// Scan accepts time.Time or string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = x
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

// Value sends "HH:MM:SS" so Postgres TIME understands it
func (t Tod) Value() (driver.Value, error) {
	if t.Time.IsZero() {
		return "00:00:00", nil
	}
	return t.Format("15:04:05"), nil
}

func (t Tod) String() string {
	return t.Format("15:04:05")
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("15:04:05"))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(*s)
}

/* =========================================================
   Day — calendar date, maps to Postgres DATE
   ========================================================= */

type Day struct{ time.Time }

// DayFrom takes the calendar date from t as seen by the server.
func DayFrom(t time.Time) Day {
	return Day{
		Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// ParseDay builds a Day from "YYYY-MM-DD".
func ParseDay(s string) (Day, error) {
	var d Day
	return d, d.parse(s)
}

func (d *Day) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		d.Time = time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.parse(string(x))
	case string:
		return d.parse(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("day: unsupported Scan type %T", v)
	}
}

func (d *Day) parse(s string) error {
	s = strings.TrimSpace(s)
	// drivers sometimes hand back a full timestamp for DATE columns
	if len(s) > 10 {
		s = s[:10]
	}
	tt, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = tt
	return nil
}

func (d Day) Value() (driver.Value, error) {
	return d.Format("2006-01-02"), nil
}

func (d Day) String() string {
	return d.Format("2006-01-02")
}

// Equal compares calendar dates only.
func (d Day) Equal(o Day) bool {
	return d.String() == o.String()
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		d.Time = time.Time{}
		return nil
	}
	return d.parse(*s)
}
