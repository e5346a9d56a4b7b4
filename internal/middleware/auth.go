package middleware

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"assessment-api/internal/services"
	"assessment-api/internal/utils"
)

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	utils.LogSuccess("Middleware", "Auth middleware initialized")
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth gates a route behind a bearer token. An absent or headerless
// request gets 401; a presented token that fails verification gets 403.
func (m *AuthMiddleware) RequireAuth(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()

		authHeader := string(ctx.Request.Header.Peek("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.LogWarning("Middleware", "No bearer token presented")
			ctx.SetStatusCode(fasthttp.StatusUnauthorized)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{
				"message": "Authorization required",
			})
			utils.LogResponse("RequireAuth", fasthttp.StatusUnauthorized, time.Since(startTime))
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			utils.LogWarning("Middleware", fmt.Sprintf("Rejected token: %v", err))
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{
				"message": "Invalid or expired token",
			})
			utils.LogResponse("RequireAuth", fasthttp.StatusForbidden, time.Since(startTime))
			return
		}

		ctx.SetUserValue("user_id", claims.UserID)
		ctx.SetUserValue("email", claims.Email)
		utils.LogDebug("Middleware", fmt.Sprintf("Authenticated user: %s", claims.UserID))

		next(ctx)
	}
}
