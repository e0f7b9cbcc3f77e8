package domain

import "errors"

var (
	// ErrInvalidURL indicates the original URL is not a well-formed
	// absolute URL.
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrInvalidShortCode indicates a custom code contains characters
	// outside the alphanumeric alphabet.
	ErrInvalidShortCode = errors.New("short code must be alphanumeric")

	// ErrDuplicateShortCode indicates the short code is already taken.
	ErrDuplicateShortCode = errors.New("short code already exists")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrExpired indicates the record has expired.
	ErrExpired = errors.New("record has expired")
)
