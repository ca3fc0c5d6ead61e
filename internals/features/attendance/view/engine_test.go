package view

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceModel "absenku_backend/internals/features/attendance/model"
	"absenku_backend/internals/features/attendance/stream"
	"absenku_backend/internals/features/attendance/testutil"
	profileModel "absenku_backend/internals/features/employee/model"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func seedEmployee(store *testutil.FakeStore, email string) uuid.UUID {
	id := uuid.New()
	store.SeedProfile(&profileModel.ProfileModel{ID: id, Name: "E", Email: email})
	return id
}

func TestAdminView_HydratesUnknownRowViaPointLookup(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	user := seedEmployee(store, "budi@example.com")
	rec := testutil.BuildRecord(t, user, "2024-01-10", "09:00:00", "")
	store.SeedRecord(rec)

	broker := stream.NewBroker()
	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)
	defer v.Close()
	require.Equal(t, 1, v.Cache.Len(), "seed loads existing rows")

	// a row created after the seed: the event carries no join, so the
	// engine must fetch the joined record before inserting
	fresh := testutil.BuildRecord(t, user, "2024-01-11", "08:30:00", "")
	store.SeedRecord(fresh)
	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(fresh)})

	assert.Eventually(t, func() bool {
		got := v.Cache.Get(fresh.ID)
		return got != nil && got.Profile != nil && got.Profile.Email == "budi@example.com"
	}, waitFor, tick, "hydrated row appears with its join attached")
	assert.GreaterOrEqual(t, store.FetchByIDCalls.Load(), int32(1))
}

func TestAdminView_KnownRowUpdatesWithoutLookup(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	user := seedEmployee(store, "siti@example.com")
	rec := testutil.BuildRecord(t, user, "2024-01-10", "09:00:00", "")
	store.SeedRecord(rec)

	broker := stream.NewBroker()
	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)
	defer v.Close()

	// seed attached the join, so the checkout update merges directly
	updated := testutil.BuildRecord(t, user, "2024-01-10", "09:00:00", "17:30:00")
	updated.ID = rec.ID
	broker.Publish(stream.ChangeEvent{Kind: stream.KindUpdate, Row: stream.RowFromModel(updated)})

	assert.Eventually(t, func() bool {
		got := v.Cache.Get(rec.ID)
		return got != nil && got.CheckOut != nil
	}, waitFor, tick)

	got := v.Cache.Get(rec.ID)
	assert.Equal(t, "siti@example.com", got.Profile.Email, "join from the seed survives the merge")
	assert.Equal(t, int32(0), store.FetchByIDCalls.Load(), "no point lookup for an already-joined row")
}

func TestAdminView_FailedLookupLeavesCacheUnchanged(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()

	broker := stream.NewBroker()
	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)
	defer v.Close()

	// event for a row the store no longer has
	ghost := testutil.BuildRecord(t, uuid.New(), "2024-01-10", "09:00:00", "")
	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(ghost)})

	assert.Eventually(t, func() bool {
		return store.FetchByIDCalls.Load() >= 1
	}, waitFor, tick)
	assert.Equal(t, 0, v.Cache.Len(), "a failed lookup discards the event, never a partial insert")
}

func TestEmployeeView_FiltersOtherSubjects(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	mine := uuid.New()
	other := uuid.New()

	broker := stream.NewBroker()
	v, err := NewEmployeeView(ctx, store, broker, mine)
	require.NoError(t, err)
	defer v.Close()

	myRec := testutil.BuildRecord(t, mine, "2024-01-10", "09:00:00", "")
	otherRec := testutil.BuildRecord(t, other, "2024-01-10", "08:00:00", "")
	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(otherRec)})
	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(myRec)})

	assert.Eventually(t, func() bool {
		return v.Cache.Get(myRec.ID) != nil
	}, waitFor, tick)
	assert.Nil(t, v.Cache.Get(otherRec.ID), "another subject's rows never enter an employee view")
	assert.Equal(t, 1, v.Cache.Len())
}

func TestEmployeeView_SeedsFromStore(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	mine := uuid.New()
	store.SeedRecord(testutil.BuildRecord(t, mine, "2024-01-09", "09:00:00", "17:00:00"))
	store.SeedRecord(testutil.BuildRecord(t, mine, "2024-01-10", "09:00:00", ""))
	store.SeedRecord(testutil.BuildRecord(t, uuid.New(), "2024-01-10", "08:00:00", ""))

	broker := stream.NewBroker()
	v, err := NewEmployeeView(ctx, store, broker, mine)
	require.NoError(t, err)
	defer v.Close()

	list := v.Cache.List()
	require.Len(t, list, 2, "seed carries only the subject's records")
	assert.Equal(t, "2024-01-10", list[0].Date.String())
	assert.Equal(t, "2024-01-09", list[1].Date.String())
}

func TestView_CloseAbandonsInFlightLookup(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	store.BlockFetchByID = make(chan struct{})

	user := seedEmployee(store, "budi@example.com")
	rec := testutil.BuildRecord(t, user, "2024-01-10", "09:00:00", "")
	store.SeedRecord(rec)

	broker := stream.NewBroker()
	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)

	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(rec)})
	require.Eventually(t, func() bool {
		return store.FetchByIDCalls.Load() >= 1
	}, waitFor, tick, "lookup is in flight")

	done := make(chan struct{})
	go func() {
		v.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Close must not wait on a blocked lookup forever")
	}

	close(store.BlockFetchByID)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, v.Cache.Len(), "nothing lands in the cache after Close")
}

func TestEmployeeView_UpdateWithoutUserIDAppliesToKnownRow(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	mine := uuid.New()
	rec := testutil.BuildRecord(t, mine, "2024-01-10", "09:00:00", "")
	store.SeedRecord(rec)

	broker := stream.NewBroker()
	v, err := NewEmployeeView(ctx, store, broker, mine)
	require.NoError(t, err)
	defer v.Close()

	// update payload carrying only id + changed columns, as transports
	// that omit unchanged columns produce
	done := testutil.BuildRecord(t, mine, "2024-01-10", "09:00:00", "17:30:00")
	broker.Publish(stream.ChangeEvent{Kind: stream.KindUpdate, Row: stream.AttendanceRow{
		ID:       &rec.ID,
		CheckOut: done.CheckOut,
	}})

	assert.Eventually(t, func() bool {
		got := v.Cache.Get(rec.ID)
		return got != nil && got.CheckOut != nil
	}, waitFor, tick, "a joinless update for a row already ours must apply")
}

func TestEmployeeView_UpdateWithoutUserIDForUnknownRowIgnored(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	mine := uuid.New()

	broker := stream.NewBroker()
	v, err := NewEmployeeView(ctx, store, broker, mine)
	require.NoError(t, err)
	defer v.Close()

	strangerRec := testutil.BuildRecord(t, uuid.New(), "2024-01-10", "09:00:00", "17:30:00")
	broker.Publish(stream.ChangeEvent{Kind: stream.KindUpdate, Row: stream.AttendanceRow{
		ID:       &strangerRec.ID,
		CheckOut: strangerRec.CheckOut,
	}})
	marker := testutil.BuildRecord(t, mine, "2024-01-10", "08:00:00", "")
	broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(marker)})

	assert.Eventually(t, func() bool {
		return v.Cache.Get(marker.ID) != nil
	}, waitFor, tick)
	assert.Nil(t, v.Cache.Get(strangerRec.ID), "an anonymous update for an unknown row stays out")
	assert.Equal(t, 1, v.Cache.Len())
}

func TestView_CloseDuringEventBurst(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	user := seedEmployee(store, "budi@example.com")
	day := mustDay(t, "2024-01-11")
	checkIn := mustTod(t, "09:00:00")

	broker := stream.NewBroker()
	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)

	// keep hydration work arriving while Close runs
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				rec := &attendanceModel.AttendanceModel{
					ID:      uuid.New(),
					UserID:  user,
					Date:    day,
					CheckIn: &checkIn,
				}
				store.SeedRecord(rec)
				broker.Publish(stream.ChangeEvent{Kind: stream.KindInsert, Row: stream.RowFromModel(rec)})
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		v.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Close must return while events keep arriving")
	}
	close(stop)

	frozen := v.Cache.Len()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, v.Cache.Len(), "nothing lands after Close returned")
}

func TestView_CloseIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFakeStore()
	broker := stream.NewBroker()

	v, err := NewAdminView(ctx, store, broker)
	require.NoError(t, err)

	v.Close()
	assert.NotPanics(t, v.Close)
	assert.Equal(t, 0, broker.SubscriberCount())
}
