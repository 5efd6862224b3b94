package lending

import "time"

type BorrowRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

type BorrowRecordResponse struct {
	ID         int64      `json:"id"`
	RecordULID string     `json:"record_ulid"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func buildRecordResponse(r *BorrowRecord) BorrowRecordResponse {
	resp := BorrowRecordResponse{
		ID:         r.ID,
		RecordULID: r.RecordULID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		BorrowedAt: r.BorrowedAt,
		DueDate:    r.DueDate,
	}
	if r.ReturnedAt.Valid {
		val := r.ReturnedAt.Time
		resp.ReturnedAt = &val
	}
	return resp
}
