// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic and logRequest middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → router
//
// Current endpoints:
//
//	GET    /                        – API information and endpoint catalog
//	GET    /books                   – list all books
//	POST   /books                   – create a new book
//	DELETE /books                   – delete all books
//	GET    /books/:id               – retrieve a single book by ID
//	PUT    /books/:id               – partially update an existing book
//	DELETE /books/:id               – delete a book by ID
//	GET    /books/search/:query     – search books by title or author
//
// The search route is registered as /books/:id/:query because httprouter
// rejects a static "search" segment next to the :id param; the handler
// checks the literal segment itself.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.routeNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)

	// Book CRUD and search routes
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books", app.deleteAllBooksHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.deleteBookHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id/:query", app.searchBooksHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from logRequest and router alike.
	return app.recoverPanic(app.logRequest(router))
}
