package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jbrokmeier/tagungsplan/internal/models"
)

// AuthSessionStore issues and resolves opaque login tokens.
type AuthSessionStore struct {
	db  *DB
	ttl time.Duration
}

func NewAuthSessionStore(db *DB, ttl time.Duration) *AuthSessionStore {
	return &AuthSessionStore{db: db, ttl: ttl}
}

// Create issues a fresh token for the user.
func (s *AuthSessionStore) Create(username string) (*models.AuthSession, error) {
	now := time.Now()
	sess := &models.AuthSession{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	_, err := s.db.Exec(`
		INSERT INTO auth_sessions (token, username, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sess.Token, sess.Username, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create auth session: %w", err)
	}
	return sess, nil
}

// Get resolves a token, or returns nil when it is unknown or expired.
// Expired rows are deleted on sight.
func (s *AuthSessionStore) Get(token string) (*models.AuthSession, error) {
	var sess models.AuthSession
	err := s.db.QueryRow(`
		SELECT token, username, created_at, expires_at
		FROM auth_sessions WHERE token = ?
	`, token).Scan(&sess.Token, &sess.Username, &sess.CreatedAt, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get auth session: %w", err)
	}
	if sess.ExpiresAt <= time.Now().Unix() {
		s.Delete(token)
		return nil, nil
	}
	return &sess, nil
}

// Delete removes a token. Deleting an unknown token is not an error.
func (s *AuthSessionStore) Delete(token string) error {
	if _, err := s.db.Exec(`DELETE FROM auth_sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete auth session: %w", err)
	}
	return nil
}

// PurgeExpired removes all expired tokens and returns how many were deleted.
func (s *AuthSessionStore) PurgeExpired() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM auth_sessions WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge auth sessions: %w", err)
	}
	return res.RowsAffected()
}
