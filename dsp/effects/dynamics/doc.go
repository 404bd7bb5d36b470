// Package dynamics provides reusable non-I/O dynamics processors.
//
// Included processors:
//   - BusCompressor: Stereo-linked peak compressor with a single amount
//     control, used on the drum master bus.
package dynamics
