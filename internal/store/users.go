package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/jbrokmeier/tagungsplan/internal/models"
)

// ErrUsernameTaken is returned by Create when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// UserStore handles account rows and their saved program selections.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a new account with an already-hashed password.
func (s *UserStore) Create(username, passwordHash string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, username, passwordHash, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Get returns a user by username, or nil when no such account exists.
func (s *UserStore) Get(username string) (*models.User, error) {
	var (
		u                        models.User
		sessions, posters, talks sql.NullString
		createdAt, lastLoginAt   sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT username, password_hash, saved_sessions, saved_posters, saved_talks,
		       created_at, last_login_at
		FROM users WHERE username = ?
	`, username).Scan(&u.Username, &u.PasswordHash, &sessions, &posters, &talks, &createdAt, &lastLoginAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.CreatedAt = createdAt.String
	u.LastLoginAt = lastLoginAt.String
	if u.SavedSessions, err = decodeList(sessions); err != nil {
		return nil, fmt.Errorf("decode saved_sessions: %w", err)
	}
	if u.SavedPosters, err = decodeList(posters); err != nil {
		return nil, fmt.Errorf("decode saved_posters: %w", err)
	}
	if u.SavedTalks, err = decodeList(talks); err != nil {
		return nil, fmt.Errorf("decode saved_talks: %w", err)
	}
	return &u, nil
}

// SaveSelections overwrites the user's saved sessions, posters and talks.
func (s *UserStore) SaveSelections(username string, sessions, posters, talks []string) error {
	_, err := s.db.Exec(`
		UPDATE users SET saved_sessions = ?, saved_posters = ?, saved_talks = ?
		WHERE username = ?
	`, encodeList(sessions), encodeList(posters), encodeList(talks), username)
	if err != nil {
		return fmt.Errorf("save selections: %w", err)
	}
	return nil
}

// RecordLogin stamps last_login_at and appends a login_history row.
func (s *UserStore) RecordLogin(username string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`UPDATE users SET last_login_at = ? WHERE username = ?`, now, username); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO login_history (username, login_at) VALUES (?, ?)`, username, now); err != nil {
		return fmt.Errorf("insert login history: %w", err)
	}
	return nil
}

// decodeList parses a stored JSON array column, treating NULL or empty as
// the empty list.
func decodeList(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(col.String), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}
