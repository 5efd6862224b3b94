package lending

import (
	"context"
	"database/sql"
	"errors"
	"time"

	platformdb "libris-backend/internal/platform/db"
)

// Tx is the set of row operations available inside one ledger transaction.
// The *ForUpdate reads take a row lock, so racing borrow attempts on the same
// book serialize at the store and exactly one of them sees available = true.
type Tx interface {
	GetBookForUpdate(ctx context.Context, bookID int64) (*BookState, error)
	SetBookAvailable(ctx context.Context, bookID int64, available bool) error
	InsertRecord(ctx context.Context, r *BorrowRecord) error
	GetRecordForUpdate(ctx context.Context, recordID int64) (*BorrowRecord, error)
	MarkReturned(ctx context.Context, recordID int64, at time.Time) error
}

type LedgerStore interface {
	// WithTx runs fn in a single transaction. COMMIT on nil, ROLLBACK on error.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	ListByUser(ctx context.Context, userID int64) ([]BorrowRecord, error)
	GetRecordByID(ctx context.Context, recordID int64) (*BorrowRecord, error)
	GetRecordByULID(ctx context.Context, recordULID string) (*BorrowRecord, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) LedgerStore { return &Store{db: db} }

func (s *Store) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		return fn(&sqlTx{tx: tx})
	})
}

type sqlTx struct{ tx platformdb.DBTX }

func (t *sqlTx) GetBookForUpdate(ctx context.Context, bookID int64) (*BookState, error) {
	const q = `SELECT id, available FROM books WHERE id = ? FOR UPDATE`
	var b BookState
	var availableInt int
	err := t.tx.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &availableInt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Available = availableInt != 0
	return &b, nil
}

func (t *sqlTx) SetBookAvailable(ctx context.Context, bookID int64, available bool) error {
	const q = `UPDATE books SET available = ? WHERE id = ?`
	res, err := t.tx.ExecContext(ctx, q, available, bookID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff != 1 {
		return ErrInternal("failed to update books.available")
	}
	return nil
}

func (t *sqlTx) InsertRecord(ctx context.Context, r *BorrowRecord) error {
	const q = `
	INSERT INTO borrow_records
	(record_ulid, user_id, book_id, borrowed_at, due_date)
	VALUES (?, ?, ?, ?, ?)`
	res, err := t.tx.ExecContext(ctx, q, r.RecordULID, r.UserID, r.BookID, r.BorrowedAt, r.DueDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (t *sqlTx) GetRecordForUpdate(ctx context.Context, recordID int64) (*BorrowRecord, error) {
	const q = `
	SELECT id, record_ulid, user_id, book_id, borrowed_at, due_date, returned_at
	FROM borrow_records WHERE id = ? FOR UPDATE`
	var r BorrowRecord
	err := t.tx.QueryRowContext(ctx, q, recordID).Scan(
		&r.ID, &r.RecordULID, &r.UserID, &r.BookID, &r.BorrowedAt, &r.DueDate, &r.ReturnedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (t *sqlTx) MarkReturned(ctx context.Context, recordID int64, at time.Time) error {
	// returned_at is write-once; the guard keeps it that way even if a caller
	// slipped past the locked read
	const q = `UPDATE borrow_records SET returned_at = ? WHERE id = ? AND returned_at IS NULL`
	res, err := t.tx.ExecContext(ctx, q, at, recordID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff != 1 {
		return ErrConflict("borrow record already returned")
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]BorrowRecord, error) {
	const q = `
	SELECT id, record_ulid, user_id, book_id, borrowed_at, due_date, returned_at
	FROM borrow_records
	WHERE user_id = ?
	ORDER BY borrowed_at DESC`

	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BorrowRecord
	for rows.Next() {
		var r BorrowRecord
		if err := rows.Scan(
			&r.ID, &r.RecordULID, &r.UserID, &r.BookID, &r.BorrowedAt, &r.DueDate, &r.ReturnedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetRecordByID(ctx context.Context, recordID int64) (*BorrowRecord, error) {
	const q = `
	SELECT id, record_ulid, user_id, book_id, borrowed_at, due_date, returned_at
	FROM borrow_records WHERE id = ?`
	return s.getOne(ctx, q, recordID)
}

func (s *Store) GetRecordByULID(ctx context.Context, recordULID string) (*BorrowRecord, error) {
	const q = `
	SELECT id, record_ulid, user_id, book_id, borrowed_at, due_date, returned_at
	FROM borrow_records WHERE record_ulid = ?`
	return s.getOne(ctx, q, recordULID)
}

func (s *Store) getOne(ctx context.Context, q string, arg any) (*BorrowRecord, error) {
	var r BorrowRecord
	err := s.db.QueryRowContext(ctx, q, arg).Scan(
		&r.ID, &r.RecordULID, &r.UserID, &r.BookID, &r.BorrowedAt, &r.DueDate, &r.ReturnedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
