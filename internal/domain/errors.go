package domain

import "errors"

var (
	// ErrConfiguration signals a malformed field specification or activation options.
	// Raised once at schema-build time, fatal to collection construction.
	ErrConfiguration = errors.New("invalid field configuration")
	// ErrInvalidArgument signals an invalid argument to token generation or search.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("collection not found")
	// ErrAlreadyExists signals a duplicate collection.
	ErrAlreadyExists = errors.New("collection already exists")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
)
