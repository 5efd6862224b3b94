package authors

import (
	"context"
	"database/sql"
)

const dateLayout = "2006-01-02"

type Author struct {
	ID        int64
	Name      string
	Bio       sql.NullString
	BirthDate sql.NullTime
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, a *Author) error {
	const q = `INSERT INTO authors (name, bio, birth_date) VALUES (?, ?, ?)`

	var birth any
	if a.BirthDate.Valid {
		birth = a.BirthDate.Time.Format(dateLayout)
	}
	res, err := s.db.ExecContext(ctx, q, a.Name, nullStrOrNil(a.Bio), birth)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Author, error) {
	const q = `SELECT id, name, bio, birth_date FROM authors WHERE id = ?`
	var a Author
	err := s.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Bio, &a.BirthDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) List(ctx context.Context, skip, limit int) ([]Author, error) {
	const q = `SELECT id, name, bio, birth_date FROM authors ORDER BY id LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.BirthDate); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBookSummaries loads the author's books as flat summaries. Associations
// are resolved by explicit lookup, there are no back-pointers on the models.
func (s *Store) ListBookSummaries(ctx context.Context, authorID int64) ([]BookSummary, error) {
	const q = `SELECT id, title, available FROM books WHERE author_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookSummary, 0, 8)
	for rows.Next() {
		var b BookSummary
		var availableInt int
		if err := rows.Scan(&b.ID, &b.Title, &availableInt); err != nil {
			return nil, err
		}
		b.Available = availableInt != 0
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
