package types

import (
	"errors"
	"fmt"
)

// Query errors. Callers match these with errors.Is.
var (
	ErrDataUnavailable  = errors.New("data does not exist")
	ErrInvalidCount     = errors.New("invalid count")
	ErrInvalidOffset    = errors.New("offset must be more than 0")
	ErrKeyValueMismatch = errors.New("number of keys and values does not match")
	ErrUnknownKey       = errors.New("unknown key")
)

// CountError reports a page size outside [1, Max].
type CountError struct {
	Count int
	Max   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("count must be between 1 and %d", e.Max)
}

func (e *CountError) Unwrap() error { return ErrInvalidCount }

// KeyError reports a column name that is not part of the table. Lookup is
// true when the key was the primary column of the operation (the column being
// listed or counted) and false when it came from a filter.
type KeyError struct {
	Key    string
	Lookup bool
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %s does not exist", e.Key)
}

func (e *KeyError) Unwrap() error { return ErrUnknownKey }
