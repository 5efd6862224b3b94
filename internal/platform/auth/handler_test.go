package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	token       string
}

func (s *stubAuthService) Register(_ context.Context, username, email, _ string) (*User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &User{
		ID:        1,
		Username:  username,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

func setupAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), svc)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpointCreated(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(t, r, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var out UserOut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "alice", out.Username)
	assert.True(t, out.IsActive)
}

func TestRegisterEndpointConflict(t *testing.T) {
	for _, stubErr := range []error{ErrUsernameTaken, ErrEmailTaken} {
		r := setupAuthRouter(&stubAuthService{registerErr: stubErr})

		w := postJSON(t, r, "/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"pw"}`)
		assert.Equal(t, http.StatusConflict, w.Code, stubErr.Error())
	}
}

func TestRegisterEndpointRejectsBadEmail(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{})

	w := postJSON(t, r, "/auth/register",
		`{"username":"alice","email":"not-an-email","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpointReturnsToken(t *testing.T) {
	r := setupAuthRouter(&stubAuthService{token: "signed-token"})

	w := postJSON(t, r, "/auth/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)
}

func TestLoginEndpointUnauthorized(t *testing.T) {
	for _, stubErr := range []error{ErrInvalidCredentials, ErrAccountDisabled} {
		r := setupAuthRouter(&stubAuthService{loginErr: stubErr})

		w := postJSON(t, r, "/auth/login", `{"username":"alice","password":"pw"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, stubErr.Error())
	}
}
