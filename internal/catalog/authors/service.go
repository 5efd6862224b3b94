package authors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
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

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

func (s *Service) Create(ctx context.Context, in CreateAuthorRequest) (AuthorResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return AuthorResponse{}, ErrInvalid("name is required")
	}

	a := &Author{Name: in.Name}
	if in.Bio != nil && *in.Bio != "" {
		a.Bio = sql.NullString{String: *in.Bio, Valid: true}
	}
	if in.BirthDate != nil && *in.BirthDate != "" {
		parsed, err := time.Parse(dateLayout, *in.BirthDate)
		if err != nil {
			return AuthorResponse{}, ErrInvalid("invalid birth_date format, expected YYYY-MM-DD")
		}
		a.BirthDate = sql.NullTime{Time: parsed, Valid: true}
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return AuthorResponse{}, err
	}
	return buildAuthorResponse(a), nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]AuthorResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	items, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	out := make([]AuthorResponse, 0, len(items))
	for i := range items {
		out = append(out, buildAuthorResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) GetWithBooks(ctx context.Context, id int64) (AuthorWithBooksResponse, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AuthorWithBooksResponse{}, err
	}
	if a == nil {
		return AuthorWithBooksResponse{}, ErrNotFound("author not found")
	}

	books, err := s.store.ListBookSummaries(ctx, id)
	if err != nil {
		return AuthorWithBooksResponse{}, err
	}
	return AuthorWithBooksResponse{
		AuthorResponse: buildAuthorResponse(a),
		Books:          books,
	}, nil
}

func buildAuthorResponse(a *Author) AuthorResponse {
	resp := AuthorResponse{ID: a.ID, Name: a.Name}
	if a.Bio.Valid {
		val := a.Bio.String
		resp.Bio = &val
	}
	if a.BirthDate.Valid {
		val := a.BirthDate.Time.Format(dateLayout)
		resp.BirthDate = &val
	}
	return resp
}
