// Package dither converts float audio to integer PCM with optional dither
// noise and error-feedback noise shaping.
package dither
