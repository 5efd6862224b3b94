package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

// ===== Error model =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

func mapMySQLError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case 1062: // duplicate key
		return ErrConflict("isbn already exists")
	case 1452: // foreign key constraint fails
		return ErrInvalid("invalid author_id")
	case 1451: // row is referenced
		return ErrConflict("book has borrow records and cannot be deleted")
	}
	return err
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

func (s *Service) Create(ctx context.Context, in CreateBookRequest) (BookResponse, error) {
	if strings.TrimSpace(in.Title) == "" {
		return BookResponse{}, ErrInvalid("title is required")
	}
	if in.AuthorID <= 0 {
		return BookResponse{}, ErrInvalid("author_id must be > 0")
	}

	b := &Book{Title: in.Title, AuthorID: in.AuthorID}
	if in.ISBN != nil && *in.ISBN != "" {
		b.ISBN = sql.NullString{String: *in.ISBN, Valid: true}
	}
	if in.Description != nil && *in.Description != "" {
		b.Description = sql.NullString{String: *in.Description, Valid: true}
	}
	if in.PublishedDate != nil && *in.PublishedDate != "" {
		parsed, err := time.Parse(dateLayout, *in.PublishedDate)
		if err != nil {
			return BookResponse{}, ErrInvalid("invalid published_date format, expected YYYY-MM-DD")
		}
		b.PublishedDate = sql.NullTime{Time: parsed, Valid: true}
	}

	if err := s.store.Insert(ctx, b); err != nil {
		return BookResponse{}, mapMySQLError(err)
	}
	return buildBookResponse(b), nil
}

func (s *Service) Get(ctx context.Context, id int64) (BookDetailResponse, error) {
	row, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return BookDetailResponse{}, err
	}
	if row == nil {
		return BookDetailResponse{}, ErrNotFound("book not found")
	}

	resp := BookDetailResponse{
		BookResponse: buildBookResponse(&row.Book),
		Author: AuthorInfo{
			ID:   row.Book.AuthorID,
			Name: row.AuthorName,
		},
	}
	if row.AuthorBio.Valid {
		val := row.AuthorBio.String
		resp.Author.Bio = &val
	}
	if row.AuthorBirthDate.Valid {
		val := row.AuthorBirthDate.Time.Format(dateLayout)
		resp.Author.BirthDate = &val
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, f BookSearchQuery, skip, limit int) ([]BookResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	items, err := s.store.List(ctx, f, skip, limit)
	if err != nil {
		return nil, err
	}

	out := make([]BookResponse, 0, len(items))
	for i := range items {
		out = append(out, buildBookResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateBookRequest) (BookResponse, error) {
	if in.PublishedDate != nil && *in.PublishedDate != "" {
		if _, err := time.Parse(dateLayout, *in.PublishedDate); err != nil {
			return BookResponse{}, ErrInvalid("invalid published_date format, expected YYYY-MM-DD")
		}
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return BookResponse{}, ErrInvalid("title must not be empty")
	}
	if in.AuthorID != nil && *in.AuthorID <= 0 {
		return BookResponse{}, ErrInvalid("author_id must be > 0")
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return BookResponse{}, err
	}
	if existing == nil {
		return BookResponse{}, ErrNotFound("book not found")
	}

	if _, err := s.store.Update(ctx, id, in); err != nil {
		return BookResponse{}, mapMySQLError(err)
	}

	updated, err := s.store.GetByID(ctx, id)
	if err != nil {
		return BookResponse{}, err
	}
	if updated == nil {
		return BookResponse{}, ErrInternal("updated book not found")
	}
	return buildBookResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return mapMySQLError(err)
	}
	if n == 0 {
		return ErrNotFound("book not found")
	}
	return nil
}

func buildBookResponse(b *Book) BookResponse {
	resp := BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Available: b.Available,
		AuthorID:  b.AuthorID,
	}
	if b.ISBN.Valid {
		val := b.ISBN.String
		resp.ISBN = &val
	}
	if b.PublishedDate.Valid {
		val := b.PublishedDate.Time.Format(dateLayout)
		resp.PublishedDate = &val
	}
	if b.Description.Valid {
		val := b.Description.String
		resp.Description = &val
	}
	return resp
}
