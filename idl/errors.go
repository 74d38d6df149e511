package idl

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument reports that the interface document root is not a
// structured object. Parse wraps it with the decoder's detail.
var ErrMalformedDocument = errors.New("malformed interface document")

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("interface document is missing required field %q", e.Field)
}

type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in interface document", e.Kind, e.Name)
}

type InsufficientAccountsError struct {
	Expected int
	Got      int
}

func (e *InsufficientAccountsError) Error() string {
	return fmt.Sprintf("insufficient accounts: instruction declares %d, got %d", e.Expected, e.Got)
}

type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q", e.Name)
}
