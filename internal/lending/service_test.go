package lending

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedgerStore keeps books and records in memory. WithTx holds one mutex
// for the whole callback, which is exactly the serialization the MySQL store
// gets from SELECT ... FOR UPDATE on the book row.
type fakeLedgerStore struct {
	mu      sync.Mutex
	books   map[int64]*BookState
	records map[int64]*BorrowRecord
	nextID  int64
}

func newFakeLedgerStore(bookIDs ...int64) *fakeLedgerStore {
	f := &fakeLedgerStore{
		books:   make(map[int64]*BookState),
		records: make(map[int64]*BorrowRecord),
	}
	for _, id := range bookIDs {
		f.books[id] = &BookState{ID: id, Available: true}
	}
	return f
}

func (f *fakeLedgerStore) WithTx(_ context.Context, fn func(tx Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(&fakeTx{store: f})
}

func (f *fakeLedgerStore) ListByUser(_ context.Context, userID int64) ([]BorrowRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []BorrowRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.After(out[j].BorrowedAt) })
	return out, nil
}

func (f *fakeLedgerStore) GetRecordByID(_ context.Context, recordID int64) (*BorrowRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[recordID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLedgerStore) GetRecordByULID(_ context.Context, recordULID string) (*BorrowRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.RecordULID == recordULID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTx struct{ store *fakeLedgerStore }

func (t *fakeTx) GetBookForUpdate(_ context.Context, bookID int64) (*BookState, error) {
	b, ok := t.store.books[bookID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (t *fakeTx) SetBookAvailable(_ context.Context, bookID int64, available bool) error {
	b, ok := t.store.books[bookID]
	if !ok {
		return ErrInternal("failed to update books.available")
	}
	b.Available = available
	return nil
}

func (t *fakeTx) InsertRecord(_ context.Context, r *BorrowRecord) error {
	t.store.nextID++
	r.ID = t.store.nextID
	cp := *r
	t.store.records[r.ID] = &cp
	return nil
}

func (t *fakeTx) GetRecordForUpdate(_ context.Context, recordID int64) (*BorrowRecord, error) {
	r, ok := t.store.records[recordID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (t *fakeTx) MarkReturned(_ context.Context, recordID int64, at time.Time) error {
	r, ok := t.store.records[recordID]
	if !ok || r.ReturnedAt.Valid {
		return ErrConflict("borrow record already returned")
	}
	r.ReturnedAt = sql.NullTime{Time: at, Valid: true}
	return nil
}

// checkAvailabilityProjection asserts that for every book the availability
// flag equals "no outstanding record references this book".
func checkAvailabilityProjection(t *testing.T, f *fakeLedgerStore) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, b := range f.books {
		outstanding := 0
		for _, r := range f.records {
			if r.BookID == id && !r.ReturnedAt.Valid {
				outstanding++
			}
		}
		assert.LessOrEqual(t, outstanding, 1, "book %d has multiple outstanding records", id)
		assert.Equal(t, outstanding == 0, b.Available, "availability flag of book %d out of step", id)
	}
}

// stepClock returns strictly increasing instants.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(store LedgerStore) *Service {
	return &Service{
		store: store,
		clock: &stepClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		id:    ulidGen{},
	}
}

func TestBorrowThenReturnRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	rec, err := svc.Borrow(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.UserID)
	assert.Equal(t, int64(5), rec.BookID)
	assert.Nil(t, rec.ReturnedAt)
	assert.NotEmpty(t, rec.RecordULID)
	assert.Equal(t, rec.BorrowedAt.Add(LoanPeriod), rec.DueDate)
	checkAvailabilityProjection(t, store)

	returned, err := svc.ReturnBook(ctx, rec.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedAt)
	assert.True(t, returned.ReturnedAt.After(returned.BorrowedAt))
	assert.Equal(t, rec.DueDate, returned.DueDate, "due date must not be recomputed")
	checkAvailabilityProjection(t, store)

	// book is available again
	again, err := svc.Borrow(ctx, 2, 5)
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, again.ID)
	checkAvailabilityProjection(t, store)
}

func TestBorrowUnavailableBookConflicts(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	_, err := svc.Borrow(ctx, 1, 5)
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, 2, 5)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, api.Code)

	assert.Len(t, store.records, 1, "failed borrow must not create a record")
	checkAvailabilityProjection(t, store)
}

func TestBorrowMissingBookNotFound(t *testing.T) {
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), 1, 999)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, api.Code)
	assert.Empty(t, store.records)
}

func TestReturnTwiceConflictsAndMutatesNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	rec, err := svc.Borrow(ctx, 1, 5)
	require.NoError(t, err)
	first, err := svc.ReturnBook(ctx, rec.ID, 1)
	require.NoError(t, err)

	_, err = svc.ReturnBook(ctx, rec.ID, 1)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, api.Code)

	stored, err := store.GetRecordByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ReturnedAt.UTC(), stored.ReturnedAt.Time.UTC(), "returned_at is immutable")
	checkAvailabilityProjection(t, store)
}

func TestReturnMissingRecordNotFound(t *testing.T) {
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	_, err := svc.ReturnBook(context.Background(), 42, 1)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, api.Code)
}

func TestReturnByOtherUserForbidden(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	rec, err := svc.Borrow(ctx, 1, 5)
	require.NoError(t, err)

	_, err = svc.ReturnBook(ctx, rec.ID, 2)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, api.Code)

	stored, err := store.GetRecordByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, stored.ReturnedAt.Valid, "forbidden return must not mutate the record")
	checkAvailabilityProjection(t, store)
}

func TestConcurrentBorrowsExactlyOneWins(t *testing.T) {
	const n = 32
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Borrow(ctx, int64(i+1), 5)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		api, ok := err.(*APIError)
		require.True(t, ok, "unexpected error type: %v", err)
		assert.Equal(t, CodeConflict, api.Code)
		conflicts++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, store.records, 1)
	checkAvailabilityProjection(t, store)
}

func TestHistoryOrderedMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(1, 2, 3)
	svc := newTestService(store)

	var ids []int64
	for _, bookID := range []int64{1, 2, 3} {
		rec, err := svc.Borrow(ctx, 7, bookID)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		_, err = svc.ReturnBook(ctx, rec.ID, 7)
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]},
		[]int64{history[0].ID, history[1].ID, history[2].ID})
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].BorrowedAt.After(history[i].BorrowedAt))
	}

	// other users see nothing
	other, err := svc.History(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetRecordByIDOrULID(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(5)
	svc := newTestService(store)

	rec, err := svc.Borrow(ctx, 1, 5)
	require.NoError(t, err)

	byID, err := svc.GetRecord(ctx, "1", 1)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byID.ID)

	byULID, err := svc.GetRecord(ctx, rec.RecordULID, 1)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byULID.ID)

	_, err = svc.GetRecord(ctx, rec.RecordULID, 2)
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, api.Code)

	_, err = svc.GetRecord(ctx, "no-such-ulid", 1)
	require.Error(t, err)
	api, ok = err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, api.Code)
}
