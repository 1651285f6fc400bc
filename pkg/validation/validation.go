// Package validation carries field-level input errors from the services to
// the HTTP layer, where they map to 400 responses.
package validation

import "fmt"

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func Errorf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}
