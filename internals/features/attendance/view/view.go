// internals/features/attendance/view/view.go
package view

import (
	"context"
	"sync"

	"github.com/google/uuid"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/repository"
	"absenku_backend/internals/features/attendance/stream"
)

// View is one observer's live window onto the attendance table: a ViewCache
// plus the subscription and engine that keep it converged with the store.
// It is an explicitly owned resource — create it, use Cache, and Close it
// on teardown (Close is safe on every exit path and idempotent).
type View struct {
	Cache *ViewCache

	cancel      context.CancelFunc
	unsubscribe func()
	engine      *Engine
	closeOnce   sync.Once
}

// NewEmployeeView builds a view over one subject's records: it subscribes
// first (so nothing published during the seed fetch is missed — replayed
// rows merge idempotently), seeds from the store, then starts reconciling.
func NewEmployeeView(ctx context.Context, store repository.AttendanceStore, broker *stream.Broker, userID uuid.UUID) (*View, error) {
	return newView(ctx, store, broker, &userID, false)
}

// NewAdminView covers all subjects with the profile join attached; events
// for rows whose join is not yet cached trigger bounded point lookups.
func NewAdminView(ctx context.Context, store repository.AttendanceStore, broker *stream.Broker) (*View, error) {
	return newView(ctx, store, broker, nil, true)
}

func newView(ctx context.Context, store repository.AttendanceStore, broker *stream.Broker, subject *uuid.UUID, hydrate bool) (*View, error) {
	ctx, cancel := context.WithCancel(ctx)

	cache := NewViewCache()
	engine := newEngine(cache, store, subject, hydrate)
	events, unsubscribe := broker.Subscribe(0)

	v := &View{
		Cache:       cache,
		cancel:      cancel,
		unsubscribe: unsubscribe,
		engine:      engine,
	}

	if err := v.seed(ctx, store, subject, hydrate); err != nil {
		v.Close()
		return nil, err
	}

	go engine.run(ctx, events)
	return v, nil
}

func (v *View) seed(ctx context.Context, store repository.AttendanceStore, subject *uuid.UUID, hydrate bool) error {
	var (
		recs []attendanceModel.AttendanceModel
		err  error
	)
	if subject != nil {
		recs, err = store.ListByUser(ctx, *subject)
	} else {
		recs, err = store.ListAll(ctx, hydrate)
	}
	if err != nil {
		return err
	}
	for i := range recs {
		v.Cache.UpsertModel(&recs[i])
	}
	return nil
}

// Close unsubscribes from the stream, abandons in-flight lookups and seals
// the cache so no late upsert can land.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.cancel()
		v.unsubscribe()
		v.Cache.close()
		v.engine.shutdown()
	})
}
