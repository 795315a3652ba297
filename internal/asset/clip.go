// Package asset loads and synthesizes the audio clips a catalog refers to.
package asset

import "errors"

const (
	DefaultSampleRate = 44100
	ChannelCount      = 2
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrUnknownSynth      = errors.New("unknown synth clip")
)

// Clip is a fully decoded stereo sound. Samples are interleaved L,R float32
// in [-1,1] at a fixed sample rate.
type Clip struct {
	name    string
	rate    int
	samples []float32
}

// NewClip wraps interleaved stereo samples. A trailing odd sample is dropped.
func NewClip(name string, rate int, samples []float32) *Clip {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Clip{name: name, rate: rate, samples: samples[:len(samples)&^1]}
}

func (c *Clip) Name() string    { return c.name }
func (c *Clip) SampleRate() int { return c.rate }
func (c *Clip) Frames() int     { return len(c.samples) / ChannelCount }

// Length is the clip duration in seconds.
func (c *Clip) Length() float64 {
	return float64(c.Frames()) / float64(c.rate)
}

// Frame returns the left and right sample at frame i. Out of range frames are silent.
func (c *Clip) Frame(i int) (left, right float32) {
	if i < 0 || i >= c.Frames() {
		return 0, 0
	}
	return c.samples[2*i], c.samples[2*i+1]
}

// Bytes is the in-memory size of the sample data.
func (c *Clip) Bytes() int { return len(c.samples) * 4 }
