package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"assessment-api/internal/services"
)

func newTestGate(t *testing.T, ttl time.Duration) (*services.AuthService, fasthttp.RequestHandler, *bool) {
	t.Helper()

	authService := services.NewAuthService("test-secret", ttl)
	m := NewAuthMiddleware(authService)

	reached := false
	gated := m.RequireAuth(func(ctx *fasthttp.RequestCtx) {
		reached = true
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	return authService, gated, &reached
}

func TestRequireAuth_AbsentToken(t *testing.T) {
	_, gated, reached := newTestGate(t, time.Hour)

	var ctx fasthttp.RequestCtx
	gated(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.False(t, *reached)
}

func TestRequireAuth_BareBearerHeader(t *testing.T) {
	_, gated, reached := newTestGate(t, time.Hour)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer")
	gated(&ctx)

	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.False(t, *reached)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	_, gated, reached := newTestGate(t, time.Hour)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer garbage")
	gated(&ctx)

	require.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	require.False(t, *reached)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	authService, gated, reached := newTestGate(t, -1*time.Second)

	token, err := authService.GenerateToken("user@example.com", "user-1")
	require.NoError(t, err)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	gated(&ctx)

	require.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	require.False(t, *reached)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	authService, gated, reached := newTestGate(t, time.Hour)

	token, err := authService.GenerateToken("user@example.com", "user-1")
	require.NoError(t, err)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+token)
	gated(&ctx)

	require.True(t, *reached)
	require.Equal(t, "user-1", ctx.UserValue("user_id"))
	require.Equal(t, "user@example.com", ctx.UserValue("email"))
}
