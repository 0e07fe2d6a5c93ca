// Package validator provides a custom Validator type for accumulating
// validation errors, plus the field checks applied to incoming book requests.
package validator

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when an id path parameter is not an integer.
var ErrInvalidID = errors.New("id must be an integer")

// ErrNonPositiveID is returned when an id path parameter is zero or negative.
var ErrNonPositiveID = errors.New("id must be a positive integer")

// Validator holds an ordered list of validation error messages.
// A Validator with an empty Errors slice is considered valid.
// The slice preserves the order checks ran in, so clients always see
// title errors before author errors.
type Validator struct {
	Errors []string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{}
}

// Valid returns true if no errors have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError appends message to the error list.
func (v *Validator) AddError(message string) {
	v.Errors = append(v.Errors, message)
}

// Check adds message as an error only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "Title cannot be empty")
func (v *Validator) Check(ok bool, message string) {
	if !ok {
		v.AddError(message)
	}
}

// ValidateCreate checks the title and author values of a create request.
// The values come straight from a decoded JSON body, so they may be absent
// (nil) or of any type. If either field is absent a single combined error is
// reported and no further checks run. Otherwise both fields are checked
// independently and every violation found is collected.
func ValidateCreate(title, author any) *Validator {
	v := New()

	if title == nil || author == nil {
		v.AddError("Title and author are required fields")
		return v
	}

	checkStringField(v, "Title", title)
	checkStringField(v, "Author", author)
	return v
}

// ValidateUpdate checks the title and author values of an update request.
// Both fields are optional, but at least one must be present. Each present
// field runs the same checks as create: it must be a string, and non-empty
// after trimming.
func ValidateUpdate(title, author any) *Validator {
	v := New()

	if title == nil && author == nil {
		v.AddError("At least one field (title or author) must be provided")
		return v
	}

	if title != nil {
		checkStringField(v, "Title", title)
	}
	if author != nil {
		checkStringField(v, "Author", author)
	}
	return v
}

// ValidateID parses a raw id path parameter. Every operation that takes an
// id (get-one, update, delete-one) shares this check.
func ValidateID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidID
	}
	if id <= 0 {
		return 0, ErrNonPositiveID
	}
	return id, nil
}

// checkStringField records at most one error for a present field: a type
// error if the value is not a string, otherwise an emptiness error if the
// string is blank after trimming.
func checkStringField(v *Validator, field string, value any) {
	s, ok := value.(string)
	if !ok {
		v.AddError(field + " must be a string")
		return
	}
	v.Check(strings.TrimSpace(s) != "", field+" cannot be empty")
}
