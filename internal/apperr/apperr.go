package apperr

import (
	"errors"
	"fmt"
)

// Error is a classified application error. Handlers translate it into a
// {msg, code} JSON body with the carried HTTP status; everything that is not
// an *Error surfaces as a generic 500 SERVER_ERROR so storage internals never
// leak to clients.
type Error struct {
	Code   string
	Status int
	Msg    string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

func New(status int, code, msg string) *Error {
	return &Error{Code: code, Status: status, Msg: msg}
}

func Validation(msg string) *Error { return New(400, "VALIDATION_ERROR", msg) }
func NotFound(code, msg string) *Error {
	return New(404, code, msg)
}
func Forbidden(code, msg string) *Error {
	return New(403, code, msg)
}
func Auth(code, msg string) *Error {
	return New(401, code, msg)
}

// From returns the classified form of err, or a generic 500 wrapper.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Code: "SERVER_ERROR", Status: 500, Msg: err.Error()}
}
