package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	byUsername map[string]*User
	byEmail    map[string]*User
	nextID     int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byUsername: map[string]*User{},
		byEmail:    map[string]*User{},
		nextID:     1,
	}
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*User, error) {
	if u, ok := f.byUsername[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *User) error {
	u.ID = f.nextID
	f.nextID++
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()
	cp := *u
	f.byUsername[u.Username] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func newTestAuthService(store UserStore) *Service {
	return &Service{
		store:  store,
		tokens: NewTokenIssuer([]byte("test-secret"), time.Minute),
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserStore())

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	tok, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	sub, err := svc.tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "pw-two")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw-one")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "alice@example.com", "pw-two")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "right-pass")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	store.byUsername["alice"].IsActive = false

	_, err = svc.Login(ctx, "alice", "pw")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}
