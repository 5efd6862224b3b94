package lending

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strconv"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

// LoanPeriod is fixed at borrow time; due dates are never recomputed.
const LoanPeriod = 14 * 24 * time.Hour

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Service owns the borrow/return state transitions. It is the only writer of
// books.available; everything else reads the flag.
type Service struct {
	store LedgerStore
	clock Clock
	id    IDGen
}

func NewService(db *sql.DB) *Service {
	return &Service{
		store: NewStore(db),
		clock: realClock{},
		id:    ulidGen{},
	}
}

// Borrow creates an outstanding record for bookID and flips the book to
// unavailable, all in one transaction over a locked book row. Of N racing
// borrows for one book exactly one commits; the rest see available = false.
func (s *Service) Borrow(ctx context.Context, userID, bookID int64) (*BorrowRecordResponse, error) {
	if bookID <= 0 {
		return nil, ErrInvalid("book_id must be > 0")
	}
	if userID <= 0 {
		return nil, ErrInvalid("user_id must be > 0")
	}

	var rec *BorrowRecord
	err := s.store.WithTx(ctx, func(tx Tx) error {
		book, err := tx.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return ErrNotFound("book not found")
		}
		if !book.Available {
			return ErrConflict("book not available")
		}

		now := s.clock.Now()
		r := &BorrowRecord{
			RecordULID: s.id.NewULID(now),
			UserID:     userID,
			BookID:     bookID,
			BorrowedAt: now,
			DueDate:    now.Add(LoanPeriod),
		}
		if err := tx.InsertRecord(ctx, r); err != nil {
			return err
		}
		if err := tx.SetBookAvailable(ctx, bookID, false); err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := buildRecordResponse(rec)
	return &resp, nil
}

// ReturnBook closes the record and flips the book back to available. Ownership
// is checked against the stored record before anything is mutated, so a
// Forbidden result leaves the ledger untouched.
func (s *Service) ReturnBook(ctx context.Context, recordID, userID int64) (*BorrowRecordResponse, error) {
	if recordID <= 0 {
		return nil, ErrInvalid("record_id must be > 0")
	}

	var rec *BorrowRecord
	err := s.store.WithTx(ctx, func(tx Tx) error {
		r, err := tx.GetRecordForUpdate(ctx, recordID)
		if err != nil {
			return err
		}
		if r == nil {
			return ErrNotFound("borrow record not found")
		}
		if r.ReturnedAt.Valid {
			return ErrConflict("borrow record already returned")
		}
		if r.UserID != userID {
			return ErrForbidden("not your borrow record")
		}

		now := s.clock.Now()
		if err := tx.MarkReturned(ctx, r.ID, now); err != nil {
			return err
		}
		if err := tx.SetBookAvailable(ctx, r.BookID, true); err != nil {
			return err
		}
		r.ReturnedAt = sql.NullTime{Time: now, Valid: true}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := buildRecordResponse(rec)
	return &resp, nil
}

// History returns every record owned by userID, most recent borrow first.
func (s *Service) History(ctx context.Context, userID int64) ([]BorrowRecordResponse, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BorrowRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, buildRecordResponse(&records[i]))
	}
	return out, nil
}

// GetRecord looks a record up by numeric id or by record_ulid.
func (s *Service) GetRecord(ctx context.Context, key string, userID int64) (*BorrowRecordResponse, error) {
	if key == "" {
		return nil, ErrInvalid("id or ulid is required")
	}

	var r *BorrowRecord
	var err error
	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil && id > 0 {
		r, err = s.store.GetRecordByID(ctx, id)
	} else {
		r, err = s.store.GetRecordByULID(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound("borrow record not found")
	}
	if r.UserID != userID {
		return nil, ErrForbidden("not your borrow record")
	}

	resp := buildRecordResponse(r)
	return &resp, nil
}
