// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the book store.
package main

import (
	"errors"
	"net/http"

	"bookapi/internal/data"
	"bookapi/internal/validator"

	"github.com/julienschmidt/httprouter"
)

// endpointCatalog describes every route the API serves. It is returned from
// the root endpoint and from the 404 catch-all so clients can discover the
// API surface.
var endpointCatalog = map[string]string{
	"GET /":                    "API information",
	"GET /books":               "List all books",
	"GET /books/:id":           "Get a single book by id",
	"POST /books":              "Create a new book",
	"PUT /books/:id":           "Update a book's title and/or author",
	"DELETE /books/:id":        "Delete a single book",
	"DELETE /books":            "Delete all books",
	"GET /books/search/:query": "Search books by title or author",
}

// rootHandler handles GET /.
// It returns API metadata together with the endpoint catalog.
func (app *applicationDependencies) rootHandler(w http.ResponseWriter, r *http.Request) {
	info := envelope{
		"success":     true,
		"message":     "Book API",
		"version":     appVersion,
		"environment": app.config.environment,
		"endpoints":   endpointCatalog,
	}
	err := app.writeJSON(w, http.StatusOK, info, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /books.
// It reads a JSON body containing the new book's title and author, validates
// both fields (collecting every violation, not just the first), inserts the
// book, and responds with the created record and a 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookRequest

	// Decode the incoming JSON body using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Validation runs before any mutation; the store never sees bad input.
	v := validator.ValidateCreate(input.Title, input.Author)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// The assertions are safe: ValidateCreate guarantees both are strings.
	book := app.store.Insert(input.Title.(string), input.Author.(string))

	err = app.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Book created successfully",
		"data":    book,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /books/:id.
// It parses the :id URL parameter and returns the matching book.
// Responds 400 for a malformed or non-positive id, 404 if no book matches.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.store.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /books.
// It returns every book in the collection, in insertion-relative order.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books := app.store.GetAll()

	err := app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(books),
		"data":    books,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /books/:id.
// It reads a partial JSON body, requires at least one of title/author to be
// present, validates each present field, applies them, and responds with the
// updated book and the list of fields actually changed.
// Responds 400 for a bad id, a bad body, or no fields; 404 if no book matches.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.UpdateBookRequest
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.ValidateUpdate(input.Title, input.Author)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Narrow the validated any-typed fields to the store's input shape.
	// A nil field means "not provided, leave as-is".
	var fields data.UpdateBookInput
	if title, ok := input.Title.(string); ok {
		fields.Title = &title
	}
	if author, ok := input.Author.(string); ok {
		fields.Author = &author
	}

	book, updatedFields, err := app.store.Update(id, fields)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"success":       true,
		"message":       "Book updated successfully",
		"updatedFields": updatedFields,
		"data":          book,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /books/:id.
// It removes the matching book and responds with an {id,title,author}
// snapshot of the removed record.
// Responds 400 for a malformed or non-positive id, 404 if no book matches.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	snapshot, err := app.store.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Book deleted successfully",
		"data":    snapshot,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAllBooksHandler handles DELETE /books.
// It clears the whole collection, resets the id sequence, and responds with
// the pre-deletion collection and its count.
func (app *applicationDependencies) deleteAllBooksHandler(w http.ResponseWriter, r *http.Request) {
	removed, count := app.store.DeleteAll()

	err := app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "All books deleted successfully",
		"count":   count,
		"data":    removed,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// searchBooksHandler handles GET /books/search/:query.
// httprouter cannot register a static "search" segment alongside the ":id"
// param, so this handler is registered at /books/:id/:query and requires the
// first segment to be the literal "search"; any other three-segment path
// under /books gets the unmatched-route 404.
// Responds 400 if the query is empty or whitespace-only after trimming.
func (app *applicationDependencies) searchBooksHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	if params.ByName("id") != "search" {
		app.routeNotFoundResponse(w, r)
		return
	}
	query := params.ByName("query")

	books, err := app.store.Search(query)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmptyQuery):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"query":   query,
		"count":   len(books),
		"data":    books,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
