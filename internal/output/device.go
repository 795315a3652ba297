//go:build !audio_stub

package output

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"soundcore/internal/log"
)

// readyTimeout bounds the wait for the sound card to come up.
const readyTimeout = 5 * time.Second

// Device plays a Graph on the default sound card.
type Device struct {
	ctx    *oto.Context
	player oto.Player
}

// Open starts streaming g to the sound card.
func Open(g *Graph) (*Device, error) {
	ctx, ready, err := oto.NewContext(g.SampleRate(), 2, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	select {
	case <-ready:
	case <-time.After(readyTimeout):
		return nil, errors.New("open audio device: timed out waiting for device")
	}
	player := ctx.NewPlayer(&graphReader{graph: g})
	player.Play()
	log.Info(log.CatOutput, "Audio device open", "rate", g.SampleRate())
	return &Device{ctx: ctx, player: player}, nil
}

func (d *Device) Close() error {
	if d == nil || d.player == nil {
		return nil
	}
	return d.player.Close()
}

// graphReader adapts Graph.Mix to the byte stream oto pulls. It never ends.
type graphReader struct {
	graph *Graph
	buf   []float32
}

func (r *graphReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < 2*frames {
		r.buf = make([]float32, 2*frames)
	}
	buf := r.buf[:2*frames]
	r.graph.Mix(buf)
	for i := 0; i < frames; i++ {
		putStereoF32LR(p, i, buf[2*i], buf[2*i+1])
	}
	return frames * 8, nil
}

// putStereoF32LR writes independent left/right samples as float32 LE at frame i.
func putStereoF32LR(buf []byte, i int, left, right float32) {
	lv := math.Float32bits(left)
	rv := math.Float32bits(right)
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}
