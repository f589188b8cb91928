package pointer

// Ref returns a pointer to t. Handy for optional struct fields.
func Ref[T any](t T) *T {
	return &t
}

// Deref returns the value ptr points at. nil panics.
func Deref[T any](ptr *T) T {
	return *ptr
}

// SafeDeref returns the value val points at, or the zero value
// when val is nil.
func SafeDeref[T any](val *T) T {
	if val == nil {
		return *new(T)
	}
	return *val
}
