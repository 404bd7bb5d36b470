// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-drums/dsp/effects/dynamics
//   - github.com/cwbudde/algo-drums/dsp/effects/reverb
//
// Effects remaining in this package:
//   - Saturator: Drive-scaled soft clipper with makeup gain.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
