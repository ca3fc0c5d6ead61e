// internals/features/attendance/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/helpers/dbtime"
)

var (
	// ErrDuplicateDay: the (user_id, date) unique constraint fired — this
	// user already has a row for that day.
	ErrDuplicateDay = errors.New("attendance: duplicate day")

	// ErrRecordNotFound: the row vanished between cache and store.
	ErrRecordNotFound = errors.New("attendance: record not found")

	// ErrCheckOutConflict: the row exists but is not in a checked-in state,
	// so the conditional check-out update matched nothing. The caller
	// classifies it against the row's current state.
	ErrCheckOutConflict = errors.New("attendance: check-out conflict")
)

// AttendanceStore is the minimal contract this core needs from the
// authoritative store.
type AttendanceStore interface {
	Insert(ctx context.Context, userID uuid.UUID, date dbtime.Day, checkIn dbtime.Tod) (*attendanceModel.AttendanceModel, error)
	UpdateCheckOut(ctx context.Context, id uuid.UUID, checkOut dbtime.Tod, workDone string) (*attendanceModel.AttendanceModel, error)
	FetchByDay(ctx context.Context, userID uuid.UUID, date dbtime.Day) (*attendanceModel.AttendanceModel, error)
	FetchByID(ctx context.Context, id uuid.UUID, withJoin bool) (*attendanceModel.AttendanceModel, error)
	ListAll(ctx context.Context, withJoin bool) ([]attendanceModel.AttendanceModel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]attendanceModel.AttendanceModel, error)
}

type GormAttendanceStore struct {
	DB *gorm.DB
}

func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{DB: db}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

func (s *GormAttendanceStore) Insert(ctx context.Context, userID uuid.UUID, date dbtime.Day, checkIn dbtime.Tod) (*attendanceModel.AttendanceModel, error) {
	rec := &attendanceModel.AttendanceModel{
		UserID:  userID,
		Date:    date,
		CheckIn: &checkIn,
	}
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateDay
		}
		return nil, err
	}
	return rec, nil
}

// UpdateCheckOut writes check_out + work_done only when the row is still in
// the checked-in state. The WHERE guard is what makes a duplicate submit
// lose: the second update matches zero rows.
func (s *GormAttendanceStore) UpdateCheckOut(ctx context.Context, id uuid.UUID, checkOut dbtime.Tod, workDone string) (*attendanceModel.AttendanceModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&attendanceModel.AttendanceModel{}).
		Where("id = ? AND check_in IS NOT NULL AND check_out IS NULL", id).
		Updates(map[string]any{
			"check_out": checkOut,
			"work_done": workDone,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.WithContext(ctx).
			Model(&attendanceModel.AttendanceModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrRecordNotFound
		}
		return nil, ErrCheckOutConflict
	}
	return s.FetchByID(ctx, id, false)
}

func (s *GormAttendanceStore) FetchByDay(ctx context.Context, userID uuid.UUID, date dbtime.Day) (*attendanceModel.AttendanceModel, error) {
	var rec attendanceModel.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormAttendanceStore) FetchByID(ctx context.Context, id uuid.UUID, withJoin bool) (*attendanceModel.AttendanceModel, error) {
	tx := s.DB.WithContext(ctx)
	if withJoin {
		tx = tx.Preload("Profile")
	}
	var rec attendanceModel.AttendanceModel
	if err := tx.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormAttendanceStore) ListAll(ctx context.Context, withJoin bool) ([]attendanceModel.AttendanceModel, error) {
	tx := s.DB.WithContext(ctx).Order("date DESC, created_at ASC")
	if withJoin {
		tx = tx.Preload("Profile")
	}
	var recs []attendanceModel.AttendanceModel
	if err := tx.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormAttendanceStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	var recs []attendanceModel.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
