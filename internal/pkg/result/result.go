// Package result provides the success/failure envelope used to carry build
// outcomes across asynchronous boundaries without panicking or throwing.
package result

import "errors"

// ErrNoValue is the normalized error for a failure envelope constructed
// without one.
var ErrNoValue = errors.New("result: failure without error")

// Result holds exactly one of a value or an error. The zero value is a
// failure with ErrNoValue; use Ok or Fail to construct meaningful envelopes.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail wraps a failure. A nil error is normalized to ErrNoValue so the
// envelope never reports success by accident.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrNoValue
	}
	return Result[T]{err: err}
}

// IsOk reports whether the envelope carries a value.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the carried value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the carried error, or nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return ErrNoValue
	}
	return r.err
}

// Unwrap splits the envelope into Go's conventional value-and-error pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}
