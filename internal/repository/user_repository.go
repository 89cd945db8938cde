package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		return model.User{}, err
	}
	t, err := ParseTime(createdAt)
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = t
	return u, nil
}

// GetUserByID retrieves a user by primary key.
// Returns apperrors.ErrUserNotFound when no row matches.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by their normalized email address.
// Returns apperrors.ErrUserNotFound when no row matches.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// EmailTaken reports whether email belongs to a user other than excludeID.
// Pass an empty excludeID to check against every user.
func (r *UserRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`

	var n int
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// InsertUser stores a new user, assigning an ID when none is set.
// Returns apperrors.ErrEmailTaken when the email is already registered.
func (r *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	query := `
        INSERT INTO users (id, name, email, password_hash, created_at)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		formatTimestamp(u.CreatedAt),
	)
	if isUniqueViolation(err) {
		return apperrors.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateProfile changes a user's name and email.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID, name, email string) error {
	query := `UPDATE users SET name = ?, email = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, name, email, userID)
	if isUniqueViolation(err) {
		return apperrors.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(result, apperrors.ErrUserNotFound)
}

// UpdatePasswordHash replaces a user's stored password hash.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, hash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result, apperrors.ErrUserNotFound)
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
