// internal/data/store.go
package data

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrRecordNotFound is returned when no book matches the requested id.
var ErrRecordNotFound = errors.New("record not found")

// ErrEmptyQuery is returned when a search query is empty after trimming.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// BookStore is the sole owner of the in-memory book collection and the id
// sequence. Construct one with NewBookStore and share it via
// applicationDependencies; tests create their own isolated instances.
//
// The HTTP server handles requests on concurrent goroutines, so a single
// mutex covers the full body of every operation. Read-then-write sequences
// (find-then-update, find-then-delete) must not interleave.
type BookStore struct {
	mu     sync.Mutex
	books  []Book
	nextID int
}

// NewBookStore returns an empty store whose next insert is assigned id 1.
func NewBookStore() *BookStore {
	return &BookStore{nextID: 1}
}

// Insert adds a new book with the next id in the sequence and returns it.
// Title and author are stored trimmed; both timestamps are set to the same
// instant. Inputs are assumed validated, so Insert never fails.
//
// The id sequence is monotonic for the life of the process: ids freed by
// Delete are never reused. Only DeleteAll resets it.
func (s *BookStore) Insert(title, author string) Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	book := Book{
		ID:        s.nextID,
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.books = append(s.books, book)
	return book
}

// Get retrieves the book with the given id.
// Returns ErrRecordNotFound if no book with that id exists.
func (s *BookStore) Get(id int) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, ErrRecordNotFound
	}
	return s.books[i], nil
}

// GetAll returns a snapshot of the full collection in insertion-relative
// order. Order is affected only by deletions, never by updates.
func (s *BookStore) GetAll() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]Book, len(s.books))
	copy(books, s.books)
	return books
}

// Update applies the non-nil fields of input to the book with the given id,
// refreshes its UpdatedAt timestamp, and returns the updated book together
// with the names of the fields actually applied ("title" before "author").
// Returns ErrRecordNotFound if no book with that id exists.
func (s *BookStore) Update(id int, input UpdateBookInput) (Book, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, nil, ErrRecordNotFound
	}

	book := &s.books[i]
	var updated []string
	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
		updated = append(updated, "title")
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
		updated = append(updated, "author")
	}
	book.UpdatedAt = time.Now()
	return *book, updated, nil
}

// Delete removes the book with the given id and returns an {id,title,author}
// snapshot of it. The relative order and ids of the remaining books are
// untouched. Returns ErrRecordNotFound if no book with that id exists.
func (s *BookStore) Delete(id int) (DeletedBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return DeletedBook{}, ErrRecordNotFound
	}

	book := s.books[i]
	s.books = append(s.books[:i], s.books[i+1:]...)
	return DeletedBook{ID: book.ID, Title: book.Title, Author: book.Author}, nil
}

// DeleteAll clears the collection and resets the id sequence to 1, so the
// next insert is assigned id 1 again. It returns the pre-deletion collection
// and its count.
func (s *BookStore) DeleteAll() ([]Book, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.books
	if removed == nil {
		removed = []Book{}
	}
	s.books = nil
	s.nextID = 1
	return removed, len(removed)
}

// Search returns every book whose title or author contains query as a
// case-insensitive substring, preserving collection order. Returns
// ErrEmptyQuery if the query is empty or whitespace-only after trimming.
func (s *BookStore) Search(query string) ([]Book, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []Book{}
	for _, book := range s.books {
		if strings.Contains(strings.ToLower(book.Title), q) ||
			strings.Contains(strings.ToLower(book.Author), q) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}

// indexOf returns the position of the book with the given id, or -1.
// Callers must hold s.mu.
func (s *BookStore) indexOf(id int) int {
	for i, book := range s.books {
		if book.ID == id {
			return i
		}
	}
	return -1
}
