package core

import "math"

// Clamp limits value to the inclusive range [min, max]. NaN maps to min.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if !(value >= min) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampUnit limits value to [0, 1]. NaN maps to 0.
func ClampUnit(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// Finite returns x, or 0 when x is NaN or infinite.
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// FastTanh is a rational tanh approximation, exact at 0 and saturating to
// exactly ±1 for |x| >= 3. It is odd and monotonic, and stays within a few
// percent of math.Tanh.
func FastTanh(x float64) float64 {
	if x >= 3 {
		return 1
	}
	if x <= -3 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// TimeConstantCoeff returns the one-pole smoothing coefficient exp(-1/(t*sr))
// for a time constant given in milliseconds.
func TimeConstantCoeff(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1 / ((ms / 1000) * sampleRate))
}

// ValidSampleRate reports whether sampleRate is positive and finite.
func ValidSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsNaN(sampleRate) && !math.IsInf(sampleRate, 0)
}
