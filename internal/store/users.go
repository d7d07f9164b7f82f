package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UserByUsernameOrEmail looks up a user by either identifier, or ErrNotFound.
func (s *Store) UserByUsernameOrEmail(ctx context.Context, ident string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, username, email, password_hash
		FROM users WHERE username = ? OR email = ?`, ident, ident)

	var u User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a directory record. The hash must already be bcrypt.
func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, email, password_hash)
		VALUES (?, ?, ?, ?)`, u.UserID, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}
