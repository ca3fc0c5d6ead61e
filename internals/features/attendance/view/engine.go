// internals/features/attendance/view/engine.go
package view

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"absenku_backend/internals/features/attendance/repository"
	"absenku_backend/internals/features/attendance/stream"
)

// Lookup stampede guard: inserts for many distinct ids can arrive together
// (bulk backfill upstream), so joined point lookups run at most this many
// at a time.
const maxConcurrentLookups = 8

// Engine applies the decoded change-event stream to one ViewCache.
//
// Ordering contract: events for the same id apply in arrival order, and a
// join lookup plus its insert is atomic with respect to other events for
// that id. Across ids nothing is ordered; lookups for distinct ids run
// concurrently so one slow fetch never stalls the stream.
type Engine struct {
	cache *ViewCache
	store repository.AttendanceStore

	// non-nil: employee view, only this subject's events apply
	subject *uuid.UUID

	// admin view: hydrate rows whose join is missing via point lookup
	hydrate bool

	sem *semaphore.Weighted

	mu      sync.Mutex
	chain   map[uuid.UUID]chan struct{}
	closing bool
	wg      sync.WaitGroup
}

func newEngine(cache *ViewCache, store repository.AttendanceStore, subject *uuid.UUID, hydrate bool) *Engine {
	return &Engine{
		cache:   cache,
		store:   store,
		subject: subject,
		hydrate: hydrate,
		sem:     semaphore.NewWeighted(maxConcurrentLookups),
		chain:   map[uuid.UUID]chan struct{}{},
	}
}

// shutdown blocks new hydration work, then waits out what is in flight.
// The Add in applyHydrating and the flag flip here serialize on e.mu, so
// Wait never races a concurrent Add on a drained counter.
func (e *Engine) shutdown() {
	e.mu.Lock()
	e.closing = true
	e.mu.Unlock()
	e.wg.Wait()
}

// run consumes events until ctx is cancelled. It is the view's single
// stream consumer; request-driven cache access synchronizes only at the
// ViewCache mutex.
func (e *Engine) run(ctx context.Context, events <-chan stream.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			e.apply(ctx, ev)
		}
	}
}

func (e *Engine) apply(ctx context.Context, ev stream.ChangeEvent) {
	if ev.Row.ID == nil {
		return // decoder guarantees this, stay safe anyway
	}

	if e.subject != nil {
		switch {
		case ev.Row.UserID != nil:
			if *ev.Row.UserID != *e.subject {
				return
			}
		case e.cache.Get(*ev.Row.ID) == nil:
			// no user_id in the payload (transports may omit unchanged
			// columns) and not a row of ours either
			return
		}
		e.cache.Upsert(ev.Row)
		return
	}

	if !e.hydrate {
		e.cache.Upsert(ev.Row)
		return
	}

	e.applyHydrating(ctx, ev)
}

// applyHydrating chains work per id: each event waits for the previous
// event of the same id, then either merges directly (join already cached)
// or fetches the joined record first. A failed lookup discards the event —
// never a partial insert.
func (e *Engine) applyHydrating(ctx context.Context, ev stream.ChangeEvent) {
	id := *ev.Row.ID

	cur := make(chan struct{})
	e.mu.Lock()
	if e.closing {
		// shutdown already passed the gate; wg.Add after wg.Wait started
		// on a drained counter is a WaitGroup reuse violation
		e.mu.Unlock()
		return
	}
	prev := e.chain[id]
	e.chain[id] = cur
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		defer close(cur)
		defer func() {
			e.mu.Lock()
			if ch, ok := e.chain[id]; ok && ch == cur {
				delete(e.chain, id)
			}
			e.mu.Unlock()
		}()

		if prev != nil {
			select {
			case <-prev:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}

		if e.cache.KnownWithProfile(id) {
			e.cache.Upsert(ev.Row)
			return
		}

		if err := e.sem.Acquire(ctx, 1); err != nil {
			return
		}
		full, err := e.store.FetchByID(ctx, id, true)
		e.sem.Release(1)
		if err != nil {
			// row may have vanished upstream between event and lookup;
			// recoverable, the cache stays as it was
			log.Printf("[WARN] view: join lookup for %s failed: %v", id, err)
			return
		}
		if ctx.Err() != nil {
			return
		}
		e.cache.UpsertModel(full)
	}()
}
