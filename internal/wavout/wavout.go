// Package wavout writes rendered stereo audio as PCM WAV files.
package wavout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-drums/dsp/dither"
)

const (
	pcmFormat   = 1
	chunkFrames = 4096
)

// ErrChannelMismatch is returned when the channels differ in length.
var ErrChannelMismatch = errors.New("wavout: left and right differ in length")

// Options control the PCM conversion.
type Options struct {
	SampleRate int
	BitDepth   int            // 16 or 24
	Shaping    dither.Shaping // noise shaping for the final requantisation
	Seed       uint64
}

func (o Options) validate() error {
	if o.SampleRate <= 0 {
		return fmt.Errorf("wavout: sample rate must be positive: %d", o.SampleRate)
	}
	if o.BitDepth != 16 && o.BitDepth != 24 {
		return fmt.Errorf("wavout: unsupported bit depth: %d", o.BitDepth)
	}
	return nil
}

// Write encodes left/right as an interleaved stereo WAV stream.
func Write(w io.WriteSeeker, left, right []float64, opts Options) error {
	if len(left) != len(right) {
		return ErrChannelMismatch
	}
	if err := opts.validate(); err != nil {
		return err
	}

	var quant [2]*dither.Quantizer
	for ch := range quant {
		q, err := dither.NewQuantizer(
			dither.WithBitDepth(opts.BitDepth),
			dither.WithShaping(opts.Shaping),
			dither.WithSeed(opts.Seed+uint64(ch)),
		)
		if err != nil {
			return err
		}
		quant[ch] = q
	}

	enc := wav.NewEncoder(w, opts.SampleRate, opts.BitDepth, 2, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: opts.SampleRate},
		SourceBitDepth: opts.BitDepth,
		Data:           make([]int, 2*chunkFrames),
	}

	for start := 0; start < len(left); start += chunkFrames {
		n := min(chunkFrames, len(left)-start)
		buf.Data = buf.Data[:2*n]
		for i := 0; i < n; i++ {
			buf.Data[2*i] = quant[0].Quantize(left[start+i])
			buf.Data[2*i+1] = quant[1].Quantize(right[start+i])
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("wavout: write samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavout: finish header: %w", err)
	}
	return nil
}

// WriteFile creates path and writes the audio to it.
func WriteFile(path string, left, right []float64, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavout: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavout: %w", cerr)
		}
	}()
	return Write(f, left, right, opts)
}
