// internals/features/attendance/view/cache.go
package view

import (
	"sync"

	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/stream"
	"absenku_backend/internals/helpers/dbtime"
)

type dayKey struct {
	userID uuid.UUID
	date   string
}

// ViewCache is one observer's reconciled copy of attendance records:
// indexed by id, by (user_id, date), and kept in display order (date
// descending, same-date rows in insertion order). All mutations are
// serialized on one mutex; upserts are merge-by-id and idempotent, and a
// closed cache silently drops them so nothing lands after teardown.
type ViewCache struct {
	mu     sync.Mutex
	closed bool
	byID   map[uuid.UUID]*attendanceModel.AttendanceModel
	byDay  map[dayKey]uuid.UUID
	order  []uuid.UUID
}

func NewViewCache() *ViewCache {
	return &ViewCache{
		byID:  map[uuid.UUID]*attendanceModel.AttendanceModel{},
		byDay: map[dayKey]uuid.UUID{},
	}
}

// Upsert merges a partial row into the cache. Fields present override,
// fields absent preserve. A row for an unknown id inserts fresh, which
// requires user_id and date (the index keys); rows without them are
// dropped and reported false.
func (c *ViewCache) Upsert(row stream.AttendanceRow) bool {
	if row.ID == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	if existing, ok := c.byID[*row.ID]; ok {
		mergeRow(existing, row)
		return true
	}

	if row.UserID == nil || row.Date == nil {
		return false
	}

	rec := &attendanceModel.AttendanceModel{
		ID:     *row.ID,
		UserID: *row.UserID,
		Date:   *row.Date,
	}
	mergeRow(rec, row)

	c.byID[rec.ID] = rec
	c.byDay[dayKey{userID: rec.UserID, date: rec.Date.String()}] = rec.ID
	c.insertOrdered(rec)
	return true
}

// UpsertModel feeds a full record (initial fetch, join lookup, acknowledged
// write) through the same merge path as stream rows.
func (c *ViewCache) UpsertModel(m *attendanceModel.AttendanceModel) bool {
	if m == nil {
		return false
	}
	return c.Upsert(stream.RowFromModel(m))
}

func mergeRow(dst *attendanceModel.AttendanceModel, row stream.AttendanceRow) {
	if row.CheckIn != nil {
		v := *row.CheckIn
		dst.CheckIn = &v
	}
	if row.CheckOut != nil {
		v := *row.CheckOut
		dst.CheckOut = &v
	}
	if row.WorkDone != nil {
		v := *row.WorkDone
		dst.WorkDone = &v
	}
	if row.Profile != nil {
		p := *row.Profile
		dst.Profile = &p
	}
}

// insertOrdered places id after every row with an equal or later date.
// "2006-01-02" strings compare correctly.
func (c *ViewCache) insertOrdered(rec *attendanceModel.AttendanceModel) {
	date := rec.Date.String()
	idx := len(c.order)
	for i, id := range c.order {
		if c.byID[id].Date.String() < date {
			idx = i
			break
		}
	}
	c.order = append(c.order, uuid.Nil)
	copy(c.order[idx+1:], c.order[idx:])
	c.order[idx] = rec.ID
}

// Get returns a copy, or nil when unknown.
func (c *ViewCache) Get(id uuid.UUID) *attendanceModel.AttendanceModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyRecord(c.byID[id])
}

// GetByDay is the O(1) "today's record" lookup.
func (c *ViewCache) GetByDay(userID uuid.UUID, date dbtime.Day) *attendanceModel.AttendanceModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.byDay[dayKey{userID: userID, date: date.String()}]
	if !ok {
		return nil
	}
	return copyRecord(c.byID[id])
}

// List returns a display-ordered snapshot of copies.
func (c *ViewCache) List() []attendanceModel.AttendanceModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]attendanceModel.AttendanceModel, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *copyRecord(c.byID[id]))
	}
	return out
}

func (c *ViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byID)
}

// KnownWithProfile reports whether id is cached with its join attached,
// i.e. an incoming event can merge directly without a point lookup.
func (c *ViewCache) KnownWithProfile(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byID[id]
	return ok && rec.Profile != nil
}

func (c *ViewCache) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func copyRecord(rec *attendanceModel.AttendanceModel) *attendanceModel.AttendanceModel {
	if rec == nil {
		return nil
	}
	out := *rec
	if rec.CheckIn != nil {
		v := *rec.CheckIn
		out.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := *rec.CheckOut
		out.CheckOut = &v
	}
	if rec.WorkDone != nil {
		v := *rec.WorkDone
		out.WorkDone = &v
	}
	if rec.Profile != nil {
		p := *rec.Profile
		out.Profile = &p
	}
	return &out
}
