package store

import "errors"

var (
	// ErrInvalidDateFormat is returned when a deadline is not DD-MM-YYYY.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrIndexOutOfRange is returned for a 1-based index outside [1, size].
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyStore is returned by operations that are meaningless on zero tasks.
	ErrEmptyStore = errors.New("no tasks")

	// ErrTooFewRecords is returned by Sort when the store holds a single task.
	ErrTooFewRecords = errors.New("too few records to sort")
)
