package helpers

import "golang.org/x/exp/constraints"

func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilDiv returns a/b rounded up. b must be positive.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}
