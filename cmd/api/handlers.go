// cmd/api/handlers.go
// HTTP request handlers for the books resource.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/book-catalog/internal/catalog"
	"github.com/aoideee/book-catalog/internal/validator"
)

// bookFilters are the query parameters accepted by GET /v1/books. At most one may be supplied.
var bookFilters = []string{"rating", "published_date", "author", "category", "title"}

// healthcheckHandler handles GET /v1/healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /v1/books.
// Any "id" in the body is ignored; the catalog assigns one.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input catalog.BookRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.catalog.Create(input)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"id": "must be a positive integer"})
		return
	}

	book, err := app.catalog.GetByID(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// Without a filter it returns the whole catalog in insertion order. A title
// filter returns a single book; the other filters return a possibly empty list.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	supplied := 0
	for _, key := range bookFilters {
		if qs.Has(key) {
			supplied++
		}
	}
	v.Check(supplied <= 1, "filter", "only one of rating, published_date, author, category or title may be supplied")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	var (
		books []catalog.Book
		err   error
	)

	switch {
	case qs.Has("rating"):
		rating := app.readInt(qs, "rating", 0, v)
		if !v.Valid() {
			app.failedValidationResponse(w, r, v.Errors)
			return
		}
		books, err = app.catalog.GetByRating(rating)
	case qs.Has("published_date"):
		year := app.readInt(qs, "published_date", 0, v)
		if !v.Valid() {
			app.failedValidationResponse(w, r, v.Errors)
			return
		}
		books, err = app.catalog.GetByPublishedDate(year)
	case qs.Has("author"):
		books, err = app.catalog.GetByAuthor(app.readString(qs, "author", ""))
	case qs.Has("category"):
		books, err = app.catalog.GetByCategory(app.readString(qs, "category", ""))
	case qs.Has("title"):
		app.showBookByTitle(w, r, app.readString(qs, "title", ""))
		return
	default:
		books = app.catalog.ListAll()
	}
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) showBookByTitle(w http.ResponseWriter, r *http.Request, title string) {
	book, err := app.catalog.GetByTitle(title)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /v1/books/:id.
// Every field is replaced; the book keeps the id from the path.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"id": "must be a positive integer"})
		return
	}

	var input catalog.BookRequest
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.catalog.Update(id, input)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"id": "must be a positive integer"})
		return
	}

	err = app.catalog.Delete(id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
