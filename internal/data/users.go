package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used when hashing new passwords.
const bcryptCost = 12

// User is a registered account. The password hash is never serialized.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  password  `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxPasswordBytes is the longest password bcrypt will hash. The limit is
// in bytes, so multi-byte characters count more than once.
const MaxPasswordBytes = 72

// CreateUserInput holds the fields a client must supply to register.
type CreateUserInput struct {
	Username  string `json:"username"   validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	Role      string `json:"role"       validate:"required"`
}

// CredentialsInput is the username/password pair checked at login.
type CredentialsInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type password struct {
	plaintext *string
	hash      []byte
}

// Set hashes plaintext with bcrypt and stores both values.
func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	p.plaintext = &plaintext
	p.hash = hash
	return nil
}

// Matches reports whether plaintext hashes to the stored value.
func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// UserModel wraps a *sql.DB connection pool for the users table.
type UserModel struct {
	DB *sql.DB
}

// Insert adds user to the users table and writes the generated id and
// creation time back into it.
func (m UserModel) Insert(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, hashed_password, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	args := []any{
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Password.hash,
		user.Role,
		user.IsActive,
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return uniqueViolation(err)
	}
	return nil
}

// GetByUsername returns the user registered under username.
// Returns ErrRecordNotFound if there is none.
func (m UserModel) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, hashed_password, role, is_active, created_at
		FROM users
		WHERE username = $1`

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user User
	err := m.DB.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Password.hash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// uniqueViolation maps Postgres unique_violation errors on the users table
// to the matching sentinel. Other errors are returned unchanged.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	switch pqErr.Constraint {
	case "users_email_key":
		return ErrDuplicateEmail
	case "users_username_key":
		return ErrDuplicateUsername
	default:
		return err
	}
}
