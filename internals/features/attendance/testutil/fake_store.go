// internals/features/attendance/testutil/fake_store.go
package testutil

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/repository"
	profileModel "absenku_backend/internals/features/employee/model"
	"absenku_backend/internals/helpers/dbtime"
)

// FakeStore is an in-memory authoritative store with the same semantics
// the Postgres-backed one surfaces: (user_id, date) uniqueness, the
// conditional check-out update and joined fetches.
type FakeStore struct {
	mu       sync.Mutex
	records  map[uuid.UUID]*attendanceModel.AttendanceModel
	profiles map[uuid.UUID]*profileModel.ProfileModel

	FetchByIDCalls atomic.Int32

	// when non-nil, FetchByID blocks until this channel closes (for
	// in-flight-lookup teardown tests)
	BlockFetchByID chan struct{}
}

var _ repository.AttendanceStore = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{
		records:  map[uuid.UUID]*attendanceModel.AttendanceModel{},
		profiles: map[uuid.UUID]*profileModel.ProfileModel{},
	}
}

// SeedProfile registers a profile so joined fetches can attach it.
func (s *FakeStore) SeedProfile(p *profileModel.ProfileModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// SeedRecord places a record directly (bypassing the state machine).
func (s *FakeStore) SeedRecord(rec *attendanceModel.AttendanceModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[cp.ID] = &cp
}

func (s *FakeStore) Insert(ctx context.Context, userID uuid.UUID, date dbtime.Day, checkIn dbtime.Tod) (*attendanceModel.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			return nil, repository.ErrDuplicateDay
		}
	}

	ci := checkIn
	rec := &attendanceModel.AttendanceModel{
		ID:      uuid.New(),
		UserID:  userID,
		Date:    date,
		CheckIn: &ci,
	}
	s.records[rec.ID] = rec
	out := *rec
	return &out, nil
}

func (s *FakeStore) UpdateCheckOut(ctx context.Context, id uuid.UUID, checkOut dbtime.Tod, workDone string) (*attendanceModel.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	if rec.CheckIn == nil || rec.CheckOut != nil {
		return nil, repository.ErrCheckOutConflict
	}
	co := checkOut
	wd := workDone
	rec.CheckOut = &co
	rec.WorkDone = &wd
	out := *rec
	return &out, nil
}

func (s *FakeStore) FetchByDay(ctx context.Context, userID uuid.UUID, date dbtime.Day) (*attendanceModel.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			out := *rec
			return &out, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (s *FakeStore) FetchByID(ctx context.Context, id uuid.UUID, withJoin bool) (*attendanceModel.AttendanceModel, error) {
	s.FetchByIDCalls.Add(1)

	if s.BlockFetchByID != nil {
		select {
		case <-s.BlockFetchByID:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	out := *rec
	if withJoin {
		if p, ok := s.profiles[rec.UserID]; ok {
			cp := *p
			out.Profile = &cp
		}
	}
	return &out, nil
}

func (s *FakeStore) ListAll(ctx context.Context, withJoin bool) ([]attendanceModel.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendanceModel.AttendanceModel, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		if withJoin {
			if p, ok := s.profiles[rec.UserID]; ok {
				pp := *p
				cp.Profile = &pp
			}
		}
		out = append(out, cp)
	}
	sortByDateDesc(out)
	return out, nil
}

func (s *FakeStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]attendanceModel.AttendanceModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []attendanceModel.AttendanceModel{}
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func sortByDateDesc(recs []attendanceModel.AttendanceModel) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date.String() > recs[j].Date.String()
	})
}
