package lending

import (
	"database/sql"
	"time"
)

// BorrowRecord is one row of borrow_records. A record with returned_at NULL
// is outstanding; records are never deleted.
type BorrowRecord struct {
	ID         int64
	RecordULID string
	UserID     int64
	BookID     int64
	BorrowedAt time.Time
	DueDate    time.Time
	ReturnedAt sql.NullTime
}

// BookState is the slice of the books row the ledger owns: the availability
// projection. It must always equal "no outstanding record references this book".
type BookState struct {
	ID        int64
	Available bool
}
