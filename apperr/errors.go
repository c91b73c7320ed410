// Package apperr holds the error kinds shared by the store, the services and
// the HTTP layer. Handlers map each kind to a status code with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound means a referenced user/event/category/achievement is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned on registration with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrAlreadyExists covers relationship duplication (e.g. friending twice).
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyRegistered means the user is already a participant of the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrInvalidOperation covers self-referential or otherwise nonsensical
	// requests, such as adding yourself as a friend.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrMalformedID is returned when an identifier fails id-format validation.
	ErrMalformedID = errors.New("malformed id")

	// ErrInvalidCredentials is the constant authentication error. It never
	// reveals which of the two fields was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCreation wraps store failures during entity creation.
	ErrCreation = errors.New("creation failed")

	// ErrPersistence wraps any other underlying store failure.
	ErrPersistence = errors.New("persistence failure")
)
