package mathutil

// GCD returns the greatest common divisor of a and b. Both must be
// non-negative; GCD(0, 0) is 0.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ReduceRatio reduces num/den to lowest terms.
func ReduceRatio(num, den int64) (int64, int64) {
	g := GCD(num, den)
	if g <= 1 {
		return num, den
	}
	return num / g, den / g
}

// CeilDiv returns ⌈a/b⌉ for non-negative a and positive b.
func CeilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
