// internals/features/attendance/service/clock.go
package service

import (
	"time"

	"absenku_backend/internals/helpers/dbtime"
)

// Clock supplies the server-assigned calendar day and time of day for
// writes. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

func today(c Clock) dbtime.Day { return dbtime.DayFrom(c.Now()) }

func timeOfDay(c Clock) dbtime.Tod { return dbtime.TodFrom(c.Now()) }
