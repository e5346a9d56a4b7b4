package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"assessment-api/internal/models"
	"assessment-api/internal/repository"
	"assessment-api/internal/services"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	failAll bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("write failed")
	}
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("read failed")
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

func postJSON(handler fasthttp.RequestHandler, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod("POST")
	ctx.Request.SetBody([]byte(body))
	handler(&ctx)
	return &ctx
}

func decodeBody(t *testing.T, ctx *fasthttp.RequestCtx) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &payload))
	return payload
}

func TestRegisterThenLogin(t *testing.T) {
	authService := services.NewAuthService("test-secret", time.Hour)
	store := newFakeUserStore()
	h := NewAuthHandler(authService, store)

	ctx := postJSON(h.RegisterHandler, `{"username":"alice","password":"hunter22","email":"alice@example.com"}`)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	payload := decodeBody(t, ctx)
	require.Equal(t, "User registered successfully", payload["message"])
	userID, _ := payload["userId"].(string)
	require.NotEmpty(t, userID)

	// The stored credential is a verifiable hash, never the plaintext.
	stored := store.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	require.NotEqual(t, "hunter22", stored.PasswordHash)
	require.NoError(t, authService.CheckPasswordHash("hunter22", stored.PasswordHash))

	ctx = postJSON(h.LoginHandler, `{"email":"alice@example.com","password":"hunter22"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	payload = decodeBody(t, ctx)
	require.Equal(t, "Login successful", payload["message"])
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	authService := services.NewAuthService("test-secret", time.Hour)
	store := newFakeUserStore()
	h := NewAuthHandler(authService, store)

	ctx := postJSON(h.RegisterHandler, `{"username":"bob","password":"secret-pw","email":"bob@example.com"}`)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	wrongPassword := postJSON(h.LoginHandler, `{"email":"bob@example.com","password":"nope"}`)
	unknownEmail := postJSON(h.LoginHandler, `{"email":"nobody@example.com","password":"secret-pw"}`)

	require.Equal(t, fasthttp.StatusUnauthorized, wrongPassword.Response.StatusCode())
	require.Equal(t, fasthttp.StatusUnauthorized, unknownEmail.Response.StatusCode())
	require.JSONEq(t, string(wrongPassword.Response.Body()), string(unknownEmail.Response.Body()))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(wrongPassword.Response.Body(), &payload))
	_, hasToken := payload["token"]
	require.False(t, hasToken)
}

func TestRegister_StoreFailure(t *testing.T) {
	authService := services.NewAuthService("test-secret", time.Hour)
	store := newFakeUserStore()
	store.failAll = true
	h := NewAuthHandler(authService, store)

	ctx := postJSON(h.RegisterHandler, `{"username":"carol","password":"pw","email":"carol@example.com"}`)
	require.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())

	payload := decodeBody(t, ctx)
	require.Equal(t, "Error registering user", payload["message"])
	// Fixed error code only, no driver detail leaks to the client.
	require.Equal(t, "persistence_failure", payload["error"])
}

func TestLogin_StoreFailure(t *testing.T) {
	authService := services.NewAuthService("test-secret", time.Hour)
	store := newFakeUserStore()
	store.failAll = true
	h := NewAuthHandler(authService, store)

	ctx := postJSON(h.LoginHandler, `{"email":"dave@example.com","password":"pw"}`)
	require.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
}

func TestRegister_MalformedBody(t *testing.T) {
	authService := services.NewAuthService("test-secret", time.Hour)
	h := NewAuthHandler(authService, newFakeUserStore())

	ctx := postJSON(h.RegisterHandler, `{not json`)
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}
