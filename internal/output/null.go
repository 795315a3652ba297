package output

import (
	"sync/atomic"

	"soundcore/internal/audio"
)

// Null discards voices and gains. It counts renders for headless runs.
type Null struct {
	renders atomic.Int64
	peak    atomic.Int64
}

func (n *Null) Render(voices []audio.Voice) {
	n.renders.Add(1)
	for {
		p := n.peak.Load()
		if int64(len(voices)) <= p || n.peak.CompareAndSwap(p, int64(len(voices))) {
			return
		}
	}
}

func (n *Null) SetBusGain(string, float64) {}

func (n *Null) Renders() int64 { return n.renders.Load() }

// Peak is the largest voice count seen in one render.
func (n *Null) Peak() int64 { return n.peak.Load() }
