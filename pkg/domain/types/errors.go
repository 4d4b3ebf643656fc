package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when a user, repository, commit or blob does not exist.
	ErrNotFound = goerr.New("not found")

	// ErrForbidden is returned when the caller is not allowed to mutate the repository.
	ErrForbidden = goerr.New("forbidden")

	// ErrConflict is returned when the repository head moved or a unique key is already taken.
	ErrConflict = goerr.New("conflict")

	// ErrIntegrityViolation means stored bytes do not match their content hash. It must never be retried.
	ErrIntegrityViolation = goerr.New("integrity violation")

	ErrValidationFailed = goerr.New("validation failed")

	// ErrUnavailable is returned after transient storage failures exhausted retries.
	ErrUnavailable = goerr.New("storage unavailable")

	ErrUnauthenticated = goerr.New("unauthenticated")

	ErrInvalidOption = goerr.New("invalid option")
)
