// Package spectral measures rendered drum hits: level, magnitude spectrum
// and spectral centroid.
//
// It is an offline tool for tests and the command line renderer; nothing in
// the real-time signal path depends on it.
package spectral
