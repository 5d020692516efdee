// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package users stores login credentials in a single SQLite table.
//
//	CREATE TABLE users (id, email UNIQUE, password, created_at)
//
// The password column holds a bcrypt hash. Emails are compared after
// trimming and lowercasing.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	// registers the pure-Go "sqlite" driver
	_ "modernc.org/sqlite"
)

// DefaultBcryptCost matches the cost used for admin credentials elsewhere.
const DefaultBcryptCost = 12

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	email      TEXT    NOT NULL UNIQUE,
	password   TEXT    NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// User is a row of the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Store is a credential store backed by SQLite.
type Store struct {
	db   *sqlx.DB
	cost int

	// dummyHash is compared against on unknown emails so both failure
	// paths spend one bcrypt comparison at the store's cost.
	dummyOnce sync.Once
	dummyHash []byte
}

// Option customizes a Store.
type Option func(*Store)

// WithBcryptCost overrides the hashing cost, mainly for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// Open connects to the database at path (":memory:" allowed) and creates the
// users table if it does not exist.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create user database directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open user database: %w", err)
	}
	// SQLite allows one writer; an in-memory database also only exists on
	// the connection that created it.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("initialize user database: %w", err)
		}
	}

	s := &Store{db: db, cost: DefaultBcryptCost}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create registers a new user. ErrUserExists is returned when the email is
// already taken.
func (s *Store) Create(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password, created_at) VALUES (?, ?, ?) ON CONFLICT(email) DO NOTHING`,
		email, string(hash), now)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return nil, ErrUserExists
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &User{ID: id, Email: email, PasswordHash: string(hash), CreatedAt: now}, nil
}

// Authenticate returns the user when email and password match.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.Get(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(s.unknownUserHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// unknownUserHash is a hash of a random password at the store's cost.
func (s *Store) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
		if err != nil {
			hash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Get loads a user by email; sql.ErrNoRows when absent.
func (s *Store) Get(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, email, password, created_at FROM users WHERE email = ?`, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Exists reports whether email is registered.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM users WHERE email = ?`, normalizeEmail(email)); err != nil {
		return false, fmt.Errorf("query user: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
