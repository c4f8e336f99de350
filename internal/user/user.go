// Package user manages explorer accounts and loads their visit history.
package user

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/campus-explorer/internal/validation"
	"github.com/evcraddock/campus-explorer/internal/visit"
)

var (
	// ErrNotFound is returned when no user has the given username.
	ErrNotFound = errors.New("user not found")

	// ErrExists is returned when creating a username that is taken.
	ErrExists = errors.New("user already exists")
)

// User is an explorer with their visits in the order they were recorded.
// Visits is empty, never nil, for a user who has not checked in yet.
type User struct {
	Username  string        `json:"username"`
	CreatedAt time.Time     `json:"created_at"`
	Visits    []visit.Visit `json:"visits"`
}

type newUser struct {
	Username string `validate:"required,max=64"`
}

// Store manages users in SQLite.
type Store struct {
	db     *sql.DB
	visits *visit.Repository
}

// NewStore creates a user store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, visits: visit.NewRepository(db)}
}

// Normalize trims and lowercases a username.
func Normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Create adds a new user.
func (s *Store) Create(username string) (*User, error) {
	in := newUser{Username: Normalize(username)}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	_, err := s.db.Exec("INSERT INTO users (username) VALUES (?)", in.Username)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "PRIMARY KEY") {
			return nil, fmt.Errorf("%w: %s", ErrExists, in.Username)
		}
		return nil, fmt.Errorf("adding user: %w", err)
	}

	return s.Get(in.Username)
}

// Get returns a user with their full visit history.
func (s *Store) Get(username string) (*User, error) {
	username = Normalize(username)

	var u User
	err := s.db.QueryRow(
		"SELECT username, created_at FROM users WHERE username = ?", username,
	).Scan(&u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	visits, err := s.visits.ListByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("loading visits for %s: %w", username, err)
	}
	u.Visits = visits

	return &u, nil
}

// Exists reports whether the username is taken.
func (s *Store) Exists(username string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM users WHERE username = ?", Normalize(username),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return count > 0, nil
}

// List returns all usernames in alphabetical order, without visits.
func (s *Store) List() (users []*User, err error) {
	rows, err := s.db.Query("SELECT username, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	users = []*User{}
	for rows.Next() {
		u := User{Visits: []visit.Visit{}}
		if err := rows.Scan(&u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

// Delete removes a user. Their visits cascade.
func (s *Store) Delete(username string) error {
	username = Normalize(username)
	result, err := s.db.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	return nil
}
