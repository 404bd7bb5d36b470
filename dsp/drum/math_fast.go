//go:build fastmath

package drum

import (
	"github.com/meko-christian/algo-approx"
)

// ln2 is the natural logarithm of 2, used for log base conversions.
const ln2 = 0.693147180559945309417232121458

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathPow computes x^y for x >= 0 via exp(y*ln(x)).
func mathPow(x, y float64) float64 {
	if x <= 0 {
		if y == 0 {
			return 1
		}
		return 0
	}
	return approx.FastExp(y * approx.FastLog(x))
}

// mathPow2 computes 2^x using the identity 2^x = e^(x*ln(2)).
func mathPow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
