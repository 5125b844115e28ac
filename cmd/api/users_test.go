package main

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/book-catalog/internal/data"
)

const registration = `{
	"username": "facundo123",
	"email": "facundoenriquez@example.com",
	"first_name": "Facundo",
	"last_name": "Enriquez",
	"password": "test1234",
	"role": "admin"
}`

func newUserTestApplication(t *testing.T) (*applicationDependencies, *mockUserStore) {
	t.Helper()
	users := &mockUserStore{}
	app := newTestApplication(t)
	app.users = users
	return app, users
}

func TestRegisterUser(t *testing.T) {
	app, users := newUserTestApplication(t)

	users.On("Insert", mock.Anything, mock.MatchedBy(func(u *data.User) bool {
		return u.Username == "facundo123" && u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*data.User).ID = 1
	}).Return(nil).Once()

	w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", registration)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		User map[string]any `json:"user"`
	}
	decodeJSON(t, w, &body)
	assert.Equal(t, float64(1), body.User["id"])
	assert.Equal(t, "facundoenriquez@example.com", body.User["email"])
	assert.Equal(t, true, body.User["is_active"])
	assert.NotContains(t, body.User, "password")
	assert.NotContains(t, body.User, "Password")

	users.AssertExpectations(t)
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	app, users := newUserTestApplication(t)

	var stored *data.User
	users.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*data.User)
	}).Return(nil).Once()

	w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", registration)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stored)

	ok, err := stored.Password.Matches("test1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterUser_Duplicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{"email", data.ErrDuplicateEmail, "email"},
		{"username", data.ErrDuplicateUsername, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, users := newUserTestApplication(t)
			users.On("Insert", mock.Anything, mock.Anything).Return(tt.err).Once()

			w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", registration)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var body validationResponse
			decodeJSON(t, w, &body)
			assert.Contains(t, body.Error, tt.field)
		})
	}
}

func TestRegisterUser_Invalid(t *testing.T) {
	app, users := newUserTestApplication(t)

	w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", `{"username": "x", "email": "nope", "password": "short"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body validationResponse
	decodeJSON(t, w, &body)
	assert.Equal(t, "must be a valid email address", body.Error["email"])
	assert.Contains(t, body.Error, "password")
	assert.Contains(t, body.Error, "first_name")

	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegisterUser_PasswordTooManyBytes(t *testing.T) {
	app, users := newUserTestApplication(t)

	// 40 characters, 80 bytes
	password := strings.Repeat("é", 40)
	payload := strings.Replace(registration, `"test1234"`, `"`+password+`"`, 1)

	w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body validationResponse
	decodeJSON(t, w, &body)
	assert.Equal(t, "must not be more than 72 bytes long", body.Error["password"])

	users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegisterUser_StoreFailure(t *testing.T) {
	app, users := newUserTestApplication(t)
	users.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	w := doRequest(t, app.routes(), http.MethodPost, "/v1/users", registration)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body messageResponse
	decodeJSON(t, w, &body)
	assert.NotContains(t, body.Error, "connection refused")
}

func TestAuthenticateUser(t *testing.T) {
	user := &data.User{ID: 1, Username: "facundo123", IsActive: true}
	require.NoError(t, user.Password.Set("test1234"))

	tests := []struct {
		name   string
		body   string
		lookup string
		found  *data.User
		err    error
		status int
	}{
		{
			name:   "correct password",
			body:   `{"username": "facundo123", "password": "test1234"}`,
			lookup: "facundo123",
			found:  user,
			status: http.StatusOK,
		},
		{
			name:   "wrong password",
			body:   `{"username": "facundo123", "password": "letmein!"}`,
			lookup: "facundo123",
			found:  user,
			status: http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			body:   `{"username": "ghost", "password": "test1234"}`,
			lookup: "ghost",
			err:    data.ErrRecordNotFound,
			status: http.StatusUnauthorized,
		},
		{
			name:   "missing password",
			body:   `{"username": "facundo123"}`,
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, users := newUserTestApplication(t)
			if tt.lookup != "" {
				var found any
				if tt.found != nil {
					found = tt.found
				}
				users.On("GetByUsername", mock.Anything, tt.lookup).Return(found, tt.err).Once()
			}

			w := doRequest(t, app.routes(), http.MethodPost, "/v1/tokens/authentication", tt.body)
			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				var body messageResponse
				decodeJSON(t, w, &body)
				assert.Equal(t, "success", body.Message)
			}
			users.AssertExpectations(t)
		})
	}
}
