package spectral

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drums/dsp/core"
)

// ErrEmptySignal is returned when there is nothing to analyse.
var ErrEmptySignal = errors.New("spectral: empty signal")

// Hann returns a symmetric Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// Magnitude returns the Hann-windowed magnitude spectrum of signal, bins
// 0..fftSize/2. fftSize <= 0 selects the next power of two at or above
// len(signal); longer signals are truncated to fftSize.
func Magnitude(signal []float64, fftSize int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}
	if fftSize < 2 {
		return nil, fmt.Errorf("spectral: fft size must be at least 2: %d", fftSize)
	}

	n := min(len(signal), fftSize)
	windowed := make([]float64, n)
	vecmath.MulBlock(windowed, signal[:n], Hann(n))

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectral: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectral: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// BinFrequency returns the centre frequency of bin k.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// Centroid returns the magnitude-weighted mean frequency of a spectrum
// produced by Magnitude with the given fftSize. A silent spectrum has a
// centroid of 0.
func Centroid(mag []float64, fftSize int, sampleRate float64) float64 {
	var num, den float64
	for k, m := range mag {
		num += BinFrequency(k, fftSize, sampleRate) * m
		den += m
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// SpectralCentroid is Centroid over Magnitude(signal, 0).
func SpectralCentroid(signal []float64, sampleRate float64) (float64, error) {
	if !core.ValidSampleRate(sampleRate) {
		return 0, fmt.Errorf("spectral: sample rate must be positive and finite: %f", sampleRate)
	}
	mag, err := Magnitude(signal, 0)
	if err != nil {
		return 0, err
	}
	return Centroid(mag, 2*(len(mag)-1), sampleRate), nil
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	var p float64
	for _, v := range x {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Report summarises one channel of audio.
type Report struct {
	Peak       float64
	PeakDB     float64
	RMS        float64
	RMSDB      float64
	CentroidHz float64
}

// Analyze measures signal at sampleRate.
func Analyze(signal []float64, sampleRate float64) (Report, error) {
	c, err := SpectralCentroid(signal, sampleRate)
	if err != nil {
		return Report{}, err
	}
	r := Report{Peak: Peak(signal), RMS: RMS(signal), CentroidHz: c}
	r.PeakDB = core.LinearToDB(r.Peak)
	r.RMSDB = core.LinearToDB(r.RMS)
	return r, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
