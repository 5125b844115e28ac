// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the router wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → rateLimit → router
//
// Endpoints:
//
//	GET    /v1/healthcheck             – service status
//	GET    /v1/books                   – list books; one of ?rating, ?published_date, ?author, ?category, ?title
//	POST   /v1/books                   – create a book
//	GET    /v1/books/:id               – retrieve a single book
//	PUT    /v1/books/:id               – replace a book
//	DELETE /v1/books/:id               – delete a book
//	POST   /v1/users                   – register a user (database required)
//	POST   /v1/tokens/authentication   – check a username/password pair (database required)
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", app.deleteBookHandler)

	if app.users != nil {
		router.HandlerFunc(http.MethodPost, "/v1/users", app.registerUserHandler)
		router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", app.authenticateUserHandler)
	}

	return app.recoverPanic(app.requestID(app.rateLimit(router)))
}
