package domain

import "errors"

var (
	// ErrNotFound is returned when a token, window, coordinate or record is unknown.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed requests or configuration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientData is returned when a user cannot produce a sample,
	// e.g. a training request for a user with no applications.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNaN is returned when NaN values are found in embeddings.
	ErrNaN = errors.New("NaN in embeddings")

	// ErrNotFitted is returned when a scoring model is used before being fitted.
	ErrNotFitted = errors.New("scoring model not fitted")
)
