package repositories

import (
	"context"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// UserRepository defines storage operations for operator accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error

	// UpdateRefreshToken stores (or clears, with nils) the refresh token hash.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error
	FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
}
