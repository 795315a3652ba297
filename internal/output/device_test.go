//go:build !audio_stub

package output

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"soundcore/internal/audio"
)

func TestGraphReader_WritesFloat32LE(t *testing.T) {
	g := NewGraph(audio.DefaultMixerParams(), testRate)
	g.Render([]audio.Voice{flatVoice(1, 1, constClip(10, 0.5))})

	r := &graphReader{graph: g}
	p := make([]byte, 8*4+3)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 32, n)
	bits := uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
	require.InDelta(t, sat(0.5), math.Float32frombits(bits), 1e-6)
}
