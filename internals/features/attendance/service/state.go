// internals/features/attendance/service/state.go
package service

import (
	attendanceModel "absenku_backend/internals/features/attendance/model"
)

// State is the position of one (subject, day) in the daily attendance
// lifecycle. CheckedOut is terminal.
type State int

const (
	StateAbsent State = iota
	StateCheckedIn
	StateCheckedOut
)

func (s State) String() string {
	switch s {
	case StateCheckedIn:
		return "checked_in"
	case StateCheckedOut:
		return "checked_out"
	default:
		return "absent"
	}
}

// StateOf derives the state from a record; nil means no record for the day.
func StateOf(rec *attendanceModel.AttendanceModel) State {
	switch {
	case rec == nil || rec.CheckIn == nil:
		return StateAbsent
	case rec.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// canCheckIn: legal only from Absent.
func canCheckIn(rec *attendanceModel.AttendanceModel) error {
	if StateOf(rec) != StateAbsent {
		return ErrAlreadyCheckedIn
	}
	return nil
}

// canCheckOut: legal only from CheckedIn.
func canCheckOut(rec *attendanceModel.AttendanceModel) error {
	switch StateOf(rec) {
	case StateCheckedIn:
		return nil
	case StateCheckedOut:
		return ErrAlreadyCheckedOut
	default:
		return ErrNotCheckedIn
	}
}
