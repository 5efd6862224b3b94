package books

import (
	"context"
	"database/sql"
	"strings"
)

const dateLayout = "2006-01-02"

type Book struct {
	ID            int64
	Title         string
	ISBN          sql.NullString
	PublishedDate sql.NullTime
	Description   sql.NullString
	Available     bool
	AuthorID      int64
}

type bookDetailRow struct {
	Book
	AuthorName      string
	AuthorBio       sql.NullString
	AuthorBirthDate sql.NullTime
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, b *Book) error {
	const q = `
	INSERT INTO books (title, isbn, published_date, description, available, author_id)
	VALUES (?, ?, ?, ?, 1, ?)`

	var published any
	if b.PublishedDate.Valid {
		published = b.PublishedDate.Time.Format(dateLayout)
	}
	res, err := s.db.ExecContext(ctx, q,
		b.Title, nullStrOrNil(b.ISBN), published, nullStrOrNil(b.Description), b.AuthorID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	b.Available = true
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Book, error) {
	const q = `
	SELECT id, title, isbn, published_date, description, available, author_id
	FROM books WHERE id = ?`
	var b Book
	var availableInt int
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.ISBN, &b.PublishedDate, &b.Description, &availableInt, &b.AuthorID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Available = availableInt != 0
	return &b, nil
}

func (s *Store) GetDetail(ctx context.Context, id int64) (*bookDetailRow, error) {
	const q = `
	SELECT
	b.id, b.title, b.isbn, b.published_date, b.description, b.available, b.author_id,
	a.name, a.bio, a.birth_date
	FROM books b
	JOIN authors a ON a.id = b.author_id
	WHERE b.id = ?`

	var r bookDetailRow
	var availableInt int
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.Book.ID, &r.Book.Title, &r.Book.ISBN, &r.Book.PublishedDate, &r.Book.Description,
		&availableInt, &r.Book.AuthorID,
		&r.AuthorName, &r.AuthorBio, &r.AuthorBirthDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Book.Available = availableInt != 0
	return &r, nil
}

func (s *Store) List(ctx context.Context, f BookSearchQuery, skip, limit int) ([]Book, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT id, title, isbn, published_date, description, available, author_id
	FROM books
	WHERE 1=1`)

	args := []any{}
	if f.Title != nil {
		sb.WriteString(` AND title LIKE ?`)
		args = append(args, "%"+*f.Title+"%")
	}
	if f.AuthorID != nil {
		sb.WriteString(` AND author_id = ?`)
		args = append(args, *f.AuthorID)
	}
	if f.Available != nil {
		sb.WriteString(` AND available = ?`)
		args = append(args, *f.Available)
	}
	sb.WriteString(` ORDER BY id LIMIT ? OFFSET ?`)
	args = append(args, limit, skip)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		var availableInt int
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ISBN, &b.PublishedDate, &b.Description, &availableInt, &b.AuthorID,
		); err != nil {
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

// Update applies only the provided fields. books.available is deliberately
// not settable here, the lending ledger is its only writer.
func (s *Store) Update(ctx context.Context, id int64, in UpdateBookRequest) (int64, error) {
	sets := []string{}
	args := []any{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.ISBN != nil {
		sets = append(sets, "isbn = ?")
		args = append(args, *in.ISBN)
	}
	if in.PublishedDate != nil {
		sets = append(sets, "published_date = ?")
		args = append(args, *in.PublishedDate)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.AuthorID != nil {
		sets = append(sets, "author_id = ?")
		args = append(args, *in.AuthorID)
	}
	if len(sets) == 0 {
		return 1, nil
	}

	q := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	// RowsAffected is 0 both for a missing row and for a no-op update, so
	// existence is checked by the caller before updating
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return aff, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM books WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
