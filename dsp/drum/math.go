//go:build !fastmath

package drum

import "math"

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}

// mathPow computes x^y for x >= 0 using standard library math.
func mathPow(x, y float64) float64 {
	return math.Pow(x, y)
}

// mathPow2 computes 2^x using standard library math.
func mathPow2(x float64) float64 {
	return math.Exp2(x)
}
