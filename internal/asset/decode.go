package asset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const resampleQuality = 4

// Formats lists the file extensions Decode understands.
func Formats() []string {
	return []string{".wav", ".ogg", ".mp3", ".flac"}
}

// Decode reads a whole file into memory, picking the decoder from name's
// extension, and resamples it to rate.
func Decode(name string, r io.Reader, rate int) (*Clip, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		stream, format, err = wav.Decode(r)
	case ".ogg":
		stream, format, err = vorbis.Decode(rc)
	case ".mp3":
		stream, format, err = mp3.Decode(rc)
	case ".flac":
		stream, format, err = flac.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != beep.SampleRate(rate) {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(rate), stream)
	}

	estimate := stream.Len() * rate / max(int(format.SampleRate), 1)
	samples := make([]float32, 0, 2*estimate+2)
	var buf [512][2]float64
	for {
		n, ok := s.Stream(buf[:])
		for _, f := range buf[:n] {
			samples = append(samples, float32(f[0]), float32(f[1]))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return NewClip(name, rate, samples), nil
}

// Load opens and decodes the file at path.
func Load(path string, rate int) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f, rate)
}
