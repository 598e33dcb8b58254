package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations. Use errors.Is to match the typed
// errors below against them.
var (
	// ErrOutOfRange indicates an offset outside [0, len(text)].
	ErrOutOfRange = errors.New("offset out of range")

	// ErrInvariant indicates the host field broke a precondition of the core.
	ErrInvariant = errors.New("invariant violation")
)

// OutOfRangeError reports an offset outside the document.
type OutOfRangeError struct {
	Op     string
	Offset int
	Len    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: offset %d out of range [0, %d]", e.Op, e.Offset, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// InvariantError reports a programming error in the host integration.
// The operation that returned it made no changes.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violation: %s", e.Op, e.Detail)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

func checkOffset(op string, off, n int) error {
	if off < 0 || off > n {
		return &OutOfRangeError{Op: op, Offset: off, Len: n}
	}
	return nil
}

func checkRange(op string, r Range, n int) error {
	if err := checkOffset(op, r.Start, n); err != nil {
		return err
	}
	return checkOffset(op, r.End, n)
}
