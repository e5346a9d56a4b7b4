package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"assessment-api/internal/models"
	"assessment-api/internal/repository"
	"assessment-api/internal/services"
	"assessment-api/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userRepo    repository.UserStore
}

func NewAuthHandler(authService *services.AuthService, userRepo repository.UserStore) *AuthHandler {
	utils.LogSuccess("AuthHandler", "Auth handler initialized")
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
	}
}

func (h *AuthHandler) RegisterHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/register", "anonymous")

	var req models.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Failed to parse request body", err)
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
			"error":   errBadRequest,
		})
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	utils.LogInfo("AuthHandler", fmt.Sprintf("Registering user: %s", req.Username))

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		utils.LogError("AuthHandler", "Failed to hash password", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error registering user",
			"error":   errInternal,
		})
		utils.LogResponse("/register", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		utils.LogError("AuthHandler", fmt.Sprintf("Failed to create user %s", req.Username), err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error registering user",
			"error":   errPersistence,
		})
		utils.LogResponse("/register", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	utils.LogSuccess("AuthHandler", fmt.Sprintf("User registered: %s (ID: %s)", user.Username, user.ID))

	respondJSON(ctx, fasthttp.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
	utils.LogResponse("/register", fasthttp.StatusCreated, time.Since(startTime))
}

func (h *AuthHandler) LoginHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/login", "anonymous")

	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Failed to parse request body", err)
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
			"error":   errBadRequest,
		})
		utils.LogResponse("/login", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	utils.LogInfo("AuthHandler", fmt.Sprintf("Login attempt: %s", req.Email))

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		utils.LogError("AuthHandler", "Failed to read user", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error logging in",
			"error":   errPersistence,
		})
		utils.LogResponse("/login", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	// Unknown email and wrong password answer identically.
	if err != nil || h.authService.CheckPasswordHash(req.Password, user.PasswordHash) != nil {
		utils.LogWarning("AuthHandler", fmt.Sprintf("Invalid credentials for: %s", req.Email))
		respondJSON(ctx, fasthttp.StatusUnauthorized, map[string]string{
			"message": "Invalid email or password",
		})
		utils.LogResponse("/login", fasthttp.StatusUnauthorized, time.Since(startTime))
		return
	}

	token, err := h.authService.GenerateToken(user.Email, user.ID)
	if err != nil {
		utils.LogError("AuthHandler", "Failed to generate token", err)
		respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{
			"message": "Error logging in",
			"error":   errInternal,
		})
		utils.LogResponse("/login", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	utils.LogSuccess("AuthHandler", fmt.Sprintf("User logged in: %s (ID: %s)", user.Email, user.ID))

	respondJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
	utils.LogResponse("/login", fasthttp.StatusOK, time.Since(startTime))
}
