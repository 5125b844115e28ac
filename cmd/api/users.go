// cmd/api/users.go
// Handlers for user registration and password checks. No tokens or sessions
// are issued; a successful check only answers "success".
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aoideee/book-catalog/internal/data"
	"github.com/aoideee/book-catalog/internal/validator"
)

// userStore is the part of data.UserModel the handlers rely on.
type userStore interface {
	Insert(ctx context.Context, user *data.User) error
	GetByUsername(ctx context.Context, username string) (*data.User, error)
}

// registerUserHandler handles POST /v1/users.
func (app *applicationDependencies) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateUserInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Struct(input)
	v.Check(len(input.Password) <= data.MaxPasswordBytes, "password",
		fmt.Sprintf("must not be more than %d bytes long", data.MaxPasswordBytes))
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := &data.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		IsActive:  true,
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.users.Insert(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			v.AddError("email", "a user with this email address already exists")
			app.failedValidationResponse(w, r, v.Errors)
		case errors.Is(err, data.ErrDuplicateUsername):
			v.AddError("username", "a user with this username already exists")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("user registered", "user_id", user.ID, "request_id", requestIDFromContext(r.Context()))

	err = app.writeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// authenticateUserHandler handles POST /v1/tokens/authentication.
func (app *applicationDependencies) authenticateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CredentialsInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Struct(input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.users.GetByUsername(r.Context(), input.Username)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "success"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
