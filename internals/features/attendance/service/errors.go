// internals/features/attendance/service/errors.go
package service

import "errors"

var (
	// validation — surfaced only to the failed operation's caller
	ErrWorkNoteRequired = errors.New("attendance: work details required")

	// state conflicts — user-visible, no retry
	ErrAlreadyCheckedIn  = errors.New("attendance: already checked in today")
	ErrNotCheckedIn      = errors.New("attendance: not checked in")
	ErrAlreadyCheckedOut = errors.New("attendance: already checked out")
)
