package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) UserStore {
	return &Store{db: db}
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	const q = `
SELECT id, username, email, password_hash, is_active, created_at
FROM users
WHERE username = ?
LIMIT 1
`
	return s.getOne(ctx, q, username)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, username, email, password_hash, is_active, created_at
FROM users
WHERE email = ?
LIMIT 1
`
	return s.getOne(ctx, q, email)
}

func (s *Store) getOne(ctx context.Context, q string, arg any) (*User, error) {
	var u User
	var isActiveInt int
	err := s.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&isActiveInt,
		&u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.IsActive = isActiveInt != 0
	return &u, nil
}

func (s *Store) Create(ctx context.Context, u *User) error {
	const q = `
INSERT INTO users (username, email, password_hash, is_active, created_at)
VALUES (?, ?, ?, 1, NOW(6))
`
	res, err := s.db.ExecContext(ctx, q, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}
