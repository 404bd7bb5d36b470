// Package reverb provides reusable non-I/O reverb processors.
//
// Included processors:
//   - TapReverb: Stereo multi-tap feedback delay sized for a drum-bus room send.
package reverb
