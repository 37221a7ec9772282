package ir

// First returns the first element of xs satisfying pred, with its position.
func First[T any](xs []T, pred func(T) bool) (int, T, bool) {
	for i, x := range xs {
		if pred(x) {
			return i, x, true
		}
	}
	var zero T
	return 0, zero, false
}
