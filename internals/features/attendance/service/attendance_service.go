// internals/features/attendance/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/repository"
	"absenku_backend/internals/features/attendance/view"
	"absenku_backend/internals/helpers/dbtime"
)

// AttendanceService runs check-in/check-out against the authoritative
// store. A call succeeds only once the store acknowledged the write; the
// acknowledged record is then applied to the attached local view
// optimistically — the cache upsert is idempotent, so the stream's own
// event for the same write merges into the same state later.
type AttendanceService struct {
	Store repository.AttendanceStore
	Clock Clock

	// optional live cache fed with optimistic confirmations and used for
	// the local today-record guard
	LocalView *view.View
}

func NewAttendanceService(store repository.AttendanceStore) *AttendanceService {
	return &AttendanceService{
		Store: store,
		Clock: SystemClock(),
	}
}

func (s *AttendanceService) WithView(v *view.View) *AttendanceService {
	s.LocalView = v
	return s
}

// CheckIn creates today's record with the current server time of day.
// Legal only from Absent: the cached today-record rejects early, and the
// store's (user_id, date) uniqueness is the authoritative guard.
func (s *AttendanceService) CheckIn(ctx context.Context, userID uuid.UUID) (*attendanceModel.AttendanceModel, error) {
	day := today(s.Clock)

	if s.LocalView != nil {
		if cached := s.LocalView.Cache.GetByDay(userID, day); cached != nil {
			if err := canCheckIn(cached); err != nil {
				return nil, err
			}
		}
	}

	rec, err := s.Store.Insert(ctx, userID, day, timeOfDay(s.Clock))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDay) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	s.confirmLocally(rec)
	return rec, nil
}

// CheckOut sets check_out + work note on a checked-in record. The note is
// validated before anything is submitted; the store's conditional update
// decides races between duplicate submits.
func (s *AttendanceService) CheckOut(ctx context.Context, recordID uuid.UUID, workDone string) (*attendanceModel.AttendanceModel, error) {
	workDone = strings.TrimSpace(workDone)
	if workDone == "" {
		return nil, ErrWorkNoteRequired
	}

	// local guard, cheap rejection before an I/O round trip
	if s.LocalView != nil {
		if cached := s.LocalView.Cache.Get(recordID); cached != nil {
			if err := canCheckOut(cached); err != nil {
				return nil, err
			}
		}
	}

	rec, err := s.Store.UpdateCheckOut(ctx, recordID, timeOfDay(s.Clock), workDone)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, err
		case errors.Is(err, repository.ErrCheckOutConflict):
			return nil, s.classifyCheckOutConflict(ctx, recordID)
		default:
			return nil, err
		}
	}

	s.confirmLocally(rec)
	return rec, nil
}

// classifyCheckOutConflict re-reads the row the conditional update refused
// to touch and names the illegal transition.
func (s *AttendanceService) classifyCheckOutConflict(ctx context.Context, recordID uuid.UUID) error {
	rec, err := s.Store.FetchByID(ctx, recordID, false)
	if err != nil {
		return err
	}
	if err := canCheckOut(rec); err != nil {
		return err
	}
	// check_in/check_out are never cleared, so a refused update with a
	// still-legal row cannot happen; name it anyway
	return ErrAlreadyCheckedOut
}

// TodayRecord reads the subject's record for the current day: local cache
// first, store otherwise. No record is not an error — it returns nil.
func (s *AttendanceService) TodayRecord(ctx context.Context, userID uuid.UUID) (*attendanceModel.AttendanceModel, error) {
	day := today(s.Clock)

	if s.LocalView != nil {
		if cached := s.LocalView.Cache.GetByDay(userID, day); cached != nil {
			return cached, nil
		}
	}

	rec, err := s.Store.FetchByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// History lists the subject's records, date descending.
func (s *AttendanceService) History(ctx context.Context, userID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	return s.Store.ListByUser(ctx, userID)
}

// Today exposes the service's calendar day (for display alongside records).
func (s *AttendanceService) Today() dbtime.Day {
	return today(s.Clock)
}

func (s *AttendanceService) confirmLocally(rec *attendanceModel.AttendanceModel) {
	if s.LocalView == nil || rec == nil {
		return
	}
	s.LocalView.Cache.UpsertModel(rec)
}
