// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Keeping error helpers in a dedicated file makes them easy to find and extend.
package main

import (
	"log/slog"
	"net/http"
	"time"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// errorResponse sends a JSON error envelope with the given status code and message.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	data := envelope{"success": false, "error": message}
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
// We never expose internal error details or store state to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	data := envelope{
		"success":   false,
		"error":     "Internal Server Error",
		"message":   "the server encountered a problem and could not process your request",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeErr := app.writeJSON(w, http.StatusInternalServerError, data, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// notFoundResponse sends a 404 Not Found error for a missing record.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// routeNotFoundResponse sends a 404 for an unmatched route, including the
// endpoint catalog so clients can discover the API surface.
func (app *applicationDependencies) routeNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"success":   false,
		"error":     "the requested route does not exist",
		"endpoints": endpointCatalog,
	}
	err := app.writeJSON(w, http.StatusNotFound, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 Bad Request response containing the
// ordered list of validation errors collected by a Validator.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors []string) {
	data := envelope{"success": false, "errors": errors}
	err := app.writeJSON(w, http.StatusBadRequest, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
