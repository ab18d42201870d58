package models

import "time"

// User is the users (operators) row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuthProvider string `db:"auth_provider"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash      *string    `db:"refresh_token_hash"`
	RefreshTokenExpiresAt *time.Time `db:"refresh_token_expires_at"`
}
