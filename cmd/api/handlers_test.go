package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookapi/internal/data"

	"github.com/stretchr/testify/require"
)

// newTestServer spins up a full application (router, middleware, isolated
// store) behind an httptest server. Each test gets its own store instance.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app := &applicationDependencies{
		config: serverConfig{environment: "testing"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:  data.NewBookStore(),
	}
	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)
	return ts
}

// do sends a request with an optional JSON body and decodes the JSON
// response into a generic map. Every endpoint responds with a JSON object.
func do(t *testing.T, ts *httptest.Server, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

// createBook inserts a book through the API and returns its response data.
func createBook(t *testing.T, ts *httptest.Server, title, author string) map[string]any {
	t.Helper()

	status, payload := do(t, ts, http.MethodPost, "/books", map[string]any{
		"title":  title,
		"author": author,
	})
	require.Equal(t, http.StatusCreated, status)
	return payload["data"].(map[string]any)
}

func errorList(t *testing.T, payload map[string]any) []string {
	t.Helper()

	raw, ok := payload["errors"].([]any)
	require.True(t, ok, "response has no errors list: %v", payload)
	errs := make([]string, 0, len(raw))
	for _, e := range raw {
		errs = append(errs, e.(string))
	}
	return errs
}

func TestCreateBook(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, payload := do(t, ts, http.MethodPost, "/books", map[string]any{
		"title":  "  The Hobbit  ",
		"author": "J.R.R. Tolkien",
	})

	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Book created successfully", payload["message"])

	book := payload["data"].(map[string]any)
	require.Equal(t, float64(1), book["id"])
	require.Equal(t, "The Hobbit", book["title"])
	require.Equal(t, "J.R.R. Tolkien", book["author"])
	require.Equal(t, book["createdAt"], book["updatedAt"])
}

func TestCreateBookValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    map[string]any
		wantErr []string
	}{
		{name: "title missing yields exactly one error",
			body:    map[string]any{"author": "x"},
			wantErr: []string{"Title and author are required fields"}},

		{name: "both missing yields exactly one error",
			body:    map[string]any{},
			wantErr: []string{"Title and author are required fields"}},

		{name: "whitespace title",
			body:    map[string]any{"title": "  ", "author": "x"},
			wantErr: []string{"Title cannot be empty"}},

		{name: "numeric title",
			body:    map[string]any{"title": 42, "author": "x"},
			wantErr: []string{"Title must be a string"}},

		{name: "all violations reported together",
			body:    map[string]any{"title": 42, "author": "   "},
			wantErr: []string{"Title must be a string", "Author cannot be empty"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, payload := do(t, ts, http.MethodPost, "/books", test.body)
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, false, payload["success"])
			require.Equal(t, test.wantErr, errorList(t, payload))
		})
	}

	// Nothing was inserted by any rejected request.
	status, payload := do(t, ts, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), payload["count"])
}

func TestShowBook(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	created := createBook(t, ts, "The Hobbit", "J.R.R. Tolkien")

	status, payload := do(t, ts, http.MethodGet, "/books/1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, created, payload["data"])

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "non-numeric id", path: "/books/abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", path: "/books/0", wantStatus: http.StatusBadRequest},
		{name: "negative id", path: "/books/-1", wantStatus: http.StatusBadRequest},
		{name: "unknown id", path: "/books/9999", wantStatus: http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, payload := do(t, ts, http.MethodGet, test.path, nil)
			require.Equal(t, test.wantStatus, status)
			require.Equal(t, false, payload["success"])
		})
	}
}

func TestListBooks(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, payload := do(t, ts, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), payload["count"])
	require.Equal(t, []any{}, payload["data"])

	createBook(t, ts, "First", "A")
	createBook(t, ts, "Second", "B")

	status, first := do(t, ts, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(2), first["count"])

	books := first["data"].([]any)
	require.Equal(t, "First", books[0].(map[string]any)["title"])
	require.Equal(t, "Second", books[1].(map[string]any)["title"])

	// Listing twice with no mutation in between returns identical arrays.
	_, second := do(t, ts, http.MethodGet, "/books", nil)
	require.Equal(t, first["data"], second["data"])
}

func TestUpdateBook(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	created := createBook(t, ts, "The Hobbit", "J.R.R. Tolkien")

	// A small pause so the refreshed updatedAt is strictly later.
	time.Sleep(5 * time.Millisecond)

	status, payload := do(t, ts, http.MethodPut, "/books/1", map[string]any{
		"title": "The Silmarillion",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Book updated successfully", payload["message"])
	require.Equal(t, []any{"title"}, payload["updatedFields"])

	book := payload["data"].(map[string]any)
	require.Equal(t, "The Silmarillion", book["title"])
	require.Equal(t, "J.R.R. Tolkien", book["author"])

	before, err := time.Parse(time.RFC3339Nano, created["updatedAt"].(string))
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, book["updatedAt"].(string))
	require.NoError(t, err)
	require.True(t, after.After(before))
}

func TestUpdateBookFailures(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	createBook(t, ts, "The Hobbit", "J.R.R. Tolkien")

	tests := []struct {
		name       string
		path       string
		body       map[string]any
		wantStatus int
		wantErr    []string
	}{
		{name: "unknown id", path: "/books/9999",
			body:       map[string]any{"title": "x"},
			wantStatus: http.StatusNotFound},

		{name: "bad id", path: "/books/abc",
			body:       map[string]any{"title": "x"},
			wantStatus: http.StatusBadRequest},

		{name: "no fields provided", path: "/books/1",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantErr:    []string{"At least one field (title or author) must be provided"}},

		{name: "empty title", path: "/books/1",
			body:       map[string]any{"title": "   "},
			wantStatus: http.StatusBadRequest,
			wantErr:    []string{"Title cannot be empty"}},

		{name: "numeric author", path: "/books/1",
			body:       map[string]any{"author": 7},
			wantStatus: http.StatusBadRequest,
			wantErr:    []string{"Author must be a string"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, payload := do(t, ts, http.MethodPut, test.path, test.body)
			require.Equal(t, test.wantStatus, status)
			require.Equal(t, false, payload["success"])
			if test.wantErr != nil {
				require.Equal(t, test.wantErr, errorList(t, payload))
			}
		})
	}

	// No rejected update touched the record.
	_, payload := do(t, ts, http.MethodGet, "/books/1", nil)
	book := payload["data"].(map[string]any)
	require.Equal(t, "The Hobbit", book["title"])
	require.Equal(t, "J.R.R. Tolkien", book["author"])
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	createBook(t, ts, "The Hobbit", "J.R.R. Tolkien")
	createBook(t, ts, "Dune", "Frank Herbert")

	status, payload := do(t, ts, http.MethodDelete, "/books/1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Book deleted successfully", payload["message"])

	// The response carries only an {id,title,author} snapshot.
	snapshot := payload["data"].(map[string]any)
	require.Equal(t, map[string]any{
		"id":     float64(1),
		"title":  "The Hobbit",
		"author": "J.R.R. Tolkien",
	}, snapshot)

	// Deletion is immediately visible to both get and search.
	status, _ = do(t, ts, http.MethodGet, "/books/1", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, payload = do(t, ts, http.MethodGet, "/books/search/hobbit", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), payload["count"])

	status, _ = do(t, ts, http.MethodDelete, "/books/1", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, ts, http.MethodDelete, "/books/abc", nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestDeleteAllBooks(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	createBook(t, ts, "First", "A")
	createBook(t, ts, "Second", "B")

	status, payload := do(t, ts, http.MethodDelete, "/books", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, float64(2), payload["count"])

	// The data field is the pre-deletion snapshot.
	removed := payload["data"].([]any)
	require.Len(t, removed, 2)
	require.Equal(t, "First", removed[0].(map[string]any)["title"])

	status, payload = do(t, ts, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), payload["count"])

	// The id sequence restarts at 1 after a full reset.
	book := createBook(t, ts, "Fresh", "Start")
	require.Equal(t, float64(1), book["id"])
}

func TestSearchBooks(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	createBook(t, ts, "The Great Gatsby", "F. Scott Fitzgerald")
	createBook(t, ts, "The Hobbit", "J.R.R. Tolkien")

	for _, query := range []string{"gatsby", "GATSBY"} {
		status, payload := do(t, ts, http.MethodGet, "/books/search/"+query, nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, payload["success"])
		require.Equal(t, query, payload["query"])
		require.Equal(t, float64(1), payload["count"])

		books := payload["data"].([]any)
		require.Equal(t, "The Great Gatsby", books[0].(map[string]any)["title"])
	}

	// Author fields are searched too.
	status, payload := do(t, ts, http.MethodGet, "/books/search/tolkien", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), payload["count"])

	// No matches is still a 200 with an empty list.
	status, payload = do(t, ts, http.MethodGet, "/books/search/dickens", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), payload["count"])
	require.Equal(t, []any{}, payload["data"])

	// A whitespace-only query is rejected.
	status, payload = do(t, ts, http.MethodGet, "/books/search/%20%20", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, payload["success"])
}

func TestRootEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, payload := do(t, ts, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["success"])
	require.Equal(t, appVersion, payload["version"])

	endpoints := payload["endpoints"].(map[string]any)
	require.Contains(t, endpoints, "GET /books")
	require.Contains(t, endpoints, "GET /books/search/:query")
}

func TestUnmatchedRoute(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, payload := do(t, ts, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, false, payload["success"])

	// The catch-all includes the endpoint catalog for discoverability.
	endpoints := payload["endpoints"].(map[string]any)
	require.Contains(t, endpoints, "POST /books")

	// A three-segment /books path that is not the search route gets the same
	// treatment.
	status, payload = do(t, ts, http.MethodGet, "/books/1/extra", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, false, payload["success"])
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	status, payload := do(t, ts, http.MethodPatch, "/books", nil)
	require.Equal(t, http.StatusMethodNotAllowed, status)
	require.Equal(t, false, payload["success"])
}
