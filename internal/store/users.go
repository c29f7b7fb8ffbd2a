package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// ErrUserNotFound is returned when a lookup matches no user.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registering a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")

// User is a stored account row.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

// CreateUser inserts a new user and returns its generated id.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return uuid.Nil, ErrUsernameTaken
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserByUsername fetches an account row for login verification.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetProfile returns the stored styling profile for a user, or nil when
// none has been saved yet.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile upserts the styling profile for a user.
func (s *Store) SaveProfile(ctx context.Context, userID uuid.UUID, profile *types.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET profile = $2, updated_at = NOW()`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
