package data

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "username", "email", "first_name", "last_name",
	"hashed_password", "role", "is_active", "created_at",
}

func newMockModels(t *testing.T) (Models, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewModels(db), mock
}

func TestUserModel_Insert(t *testing.T) {
	models, mock := newMockModels(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	user := &User{
		Username:  "facundo123",
		Email:     "facundoenriquez@example.com",
		FirstName: "Facundo",
		LastName:  "Enriquez",
		Role:      "admin",
		IsActive:  true,
	}
	require.NoError(t, user.Password.Set("test1234"))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, email, first_name, last_name, hashed_password, role, is_active)")).
		WithArgs("facundo123", "facundoenriquez@example.com", "Facundo", "Enriquez", user.Password.hash, "admin", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	err := models.Users.Insert(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, created, user.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserModel_InsertDuplicate(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{"users_email_key", ErrDuplicateEmail},
		{"users_username_key", ErrDuplicateUsername},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			models, mock := newMockModels(t)

			user := &User{Username: "facundo123", Email: "facundoenriquez@example.com"}
			require.NoError(t, user.Password.Set("test1234"))

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tt.constraint})

			err := models.Users.Insert(context.Background(), user)
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserModel_GetByUsername(t *testing.T) {
	models, mock := newMockModels(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var p password
	require.NoError(t, p.Set("test1234"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, first_name, last_name, hashed_password, role, is_active, created_at")).
		WithArgs("facundo123").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			int64(1), "facundo123", "facundoenriquez@example.com", "Facundo", "Enriquez",
			p.hash, "admin", true, created,
		))

	user, err := models.Users.GetByUsername(context.Background(), "facundo123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "facundoenriquez@example.com", user.Email)
	assert.Equal(t, "Enriquez", user.LastName)
	assert.Equal(t, "admin", user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, created, user.CreatedAt)

	ok, err := user.Password.Matches("test1234")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserModel_GetByUsernameMissing(t *testing.T) {
	models, mock := newMockModels(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := models.Users.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
