package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blogapi/internal/errors"
	"blogapi/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func performJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newAuthEcho(svc *MockAuthService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = errors.JSONErrorHandler
	h := NewAuthHandler(svc)
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	return e
}

func TestAuthHandler_Register(t *testing.T) {
	user := &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}

	t.Run("created", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
			Return(user, "signed-token", nil)

		rec := performJSON(newAuthEcho(svc), http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User registered successfully", resp.Message)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)

		// The raw body must not leak the hash under any key.
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), user.PasswordHash)
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "", "").
			Return(nil, "", errors.Validation("Missing required fields: email, password"))

		rec := performJSON(newAuthEcho(svc), http.MethodPost, "/api/auth/register",
			`{"username":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing required fields: email, password"}`, rec.Body.String())
	})

	t.Run("duplicate maps to 400", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
			Return(nil, "", errors.ErrUserExists)

		rec := performJSON(newAuthEcho(svc), http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"User with this email or username already exists"}`, rec.Body.String())
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice@example.com", "secret1").
			Return(user, "signed-token", nil)

		rec := performJSON(newAuthEcho(svc), http.MethodPost, "/api/auth/login",
			`{"email":"alice@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("invalid credentials map to 401", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return(nil, "", errors.ErrInvalidCredentials)

		rec := performJSON(newAuthEcho(svc), http.MethodPost, "/api/auth/login",
			`{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password"}`, rec.Body.String())
	})
}
