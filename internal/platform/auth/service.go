package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAccountDisabled    = errors.New("account is inactive")
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type Service struct {
	store  UserStore
	tokens *TokenIssuer
}

func NewService(db *sql.DB, tokens *TokenIssuer) *Service {
	return &Service{store: NewStore(db), tokens: tokens}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	if u, err := s.store.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrUsernameTaken
	}
	if u, err := s.store.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		// the pre-checks race against concurrent registrations; the unique
		// indexes are the real guard
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			if strings.Contains(me.Message, "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	// re-read for the DB-assigned created_at / is_active
	created, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("inserted user not found")
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrAccountDisabled
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Username)
}
