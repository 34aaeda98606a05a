package service

import "errors"

var (
	// ErrUserAlreadyExists is returned when registering with a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUnknownUsername indicates a login attempt for a username that is not registered.
	ErrUnknownUsername = errors.New("unknown username")
	// ErrWrongPassword indicates a login attempt with a password that does not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrNotOwner indicates the current user is not the author of the post.
	ErrNotOwner = errors.New("not the post author")
)

// ValidationError reports a required form field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}
