package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/newsroom/newsroom/internal/model"
)

// Lookup sentinels. These are outcomes, not storage faults.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// CreateUser inserts a new publisher.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	return r.withConn(ctx, "create user", func(conn *pgxpool.Conn) error {
		_, err := conn.Exec(ctx, query,
			user.ID,
			user.Username,
			user.PasswordHash,
			user.CreatedAt,
		)
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		if err != nil {
			return dbError("create user", err)
		}
		return nil
	})
}

// GetUserByUsername retrieves a publisher by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := r.withConn(ctx, "get user by username", func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, username).Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.CreatedAt,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return dbError("get user by username", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
