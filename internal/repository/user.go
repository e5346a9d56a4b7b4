package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"assessment-api/internal/models"
	"assessment-api/internal/utils"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore is the credential store contract: users are created on
// registration and looked up by email on login, nothing else.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	utils.LogSuccess("UserRepository", "User repository initialized")
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING created_at`

	user.ID = uuid.New().String()
	utils.LogDB("CREATE USER", fmt.Sprintf("Creating user: %s", user.Username))

	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		utils.LogError("UserRepository", fmt.Sprintf("Failed to create user %s", user.Username), err)
		return err
	}

	utils.LogSuccess("UserRepository", fmt.Sprintf("User created: %s (ID: %s)", user.Username, user.ID))
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`

	utils.LogDB("GET USER", fmt.Sprintf("Looking up user by email: %s", email))

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.LogWarning("UserRepository", fmt.Sprintf("User not found: %s", email))
		return nil, ErrUserNotFound
	}
	if err != nil {
		utils.LogError("UserRepository", fmt.Sprintf("Failed to look up user %s", email), err)
		return nil, err
	}

	utils.LogSuccess("UserRepository", fmt.Sprintf("User found: %s (ID: %s)", user.Username, user.ID))
	return user, nil
}
