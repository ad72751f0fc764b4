package types

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can choose a response.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuth          Kind = "auth"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "notFound"
	KindConflict      Kind = "conflict"
	KindPersistence   Kind = "persistence"
	KindIntegrity     Kind = "integrity"
)

// CustomError is returned from middleware and carries an HTTP status.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Error is a domain failure raised by the store and the console operations.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	case e.Err != nil && e.Message == "":
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Authentication failures never say which credential was wrong.
var (
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid credentials"}
	ErrAccountSuspended   = &Error{Kind: KindAuth, Message: "account suspended"}
	ErrSignInRequired     = &Error{Kind: KindAuth, Message: "sign in required"}
)

func Validation(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Persistence(err error) error {
	return &Error{Kind: KindPersistence, Message: "changes may not be saved", Err: err}
}

func Integrity(err error) error {
	return &Error{Kind: KindIntegrity, Message: "stored document is corrupt", Err: err}
}

// KindOf reports the Kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
