package domain

// Result is a two-variant value: either a success carrying T or a failure
// carrying E. Contracts that must declare their failure modes as part of
// their type return a Result instead of a bare (T, error) pair.
type Result[T, E any] struct {
	ok    bool
	value T
	err   E
}

// Ok builds the success variant.
func Ok[T, E any](value T) Result[T, E] {
	return Result[T, E]{ok: true, value: value}
}

// Err builds the failure variant.
func Err[T, E any](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// Success reports which variant this is.
func (r Result[T, E]) Success() bool { return r.ok }

// Value returns the success payload; zero for the failure variant.
func (r Result[T, E]) Value() T { return r.value }

// Err returns the failure payload; zero for the success variant.
func (r Result[T, E]) Err() E { return r.err }
