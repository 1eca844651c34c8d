package dataset

import "errors"

var (
	// ErrFileNotFound is returned when the input path does not name a regular file.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedSchema is returned when a mandatory column is absent.
	ErrMalformedSchema = errors.New("malformed schema")
	// ErrInvalidDate is returned when a date cell cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)
