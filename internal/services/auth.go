package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"assessment-api/internal/utils"
)

type AuthService struct {
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(secret string, expiration time.Duration) *AuthService {
	utils.LogSuccess("AuthService", fmt.Sprintf("Auth service initialized (token TTL: %v)", expiration))
	return &AuthService{
		jwtSecret:     secret,
		jwtExpiration: expiration,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	utils.LogDebug("AuthService", "Hashing password...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("AuthService", "Failed to hash password", err)
		return "", err
	}

	return string(hashedPassword), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		utils.LogWarning("AuthService", "Password mismatch")
		return err
	}
	return nil
}

// Claims carries the identity baked into every issued token.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (s *AuthService) GenerateToken(email, userID string) (string, error) {
	utils.LogDebug("AuthService", fmt.Sprintf("Generating JWT for user: %s", userID))

	claims := &Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		utils.LogError("AuthService", "Failed to sign token", err)
		return "", err
	}

	utils.LogSuccess("AuthService", fmt.Sprintf("JWT issued for user: %s", userID))
	return signedToken, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		utils.LogWarning("AuthService", "Token rejected")
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		utils.LogWarning("AuthService", "Token failed validation")
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
