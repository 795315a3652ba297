package audio

// ChannelPool is a fixed set of reusable one-shot channels.
type ChannelPool struct {
	channels []*Channel
	next     int
	steals   int
}

// NewChannelPool creates size channels on bus. size < 1 is raised to 1.
func NewChannelPool(f *channelFactory, size int, bus Bus) *ChannelPool {
	if size < 1 {
		size = 1
	}
	p := &ChannelPool{channels: make([]*Channel, size)}
	for i := range p.channels {
		p.channels[i] = f.make(OwnerSFX, bus, false)
	}
	return p
}

// Acquire returns the first idle channel at or after the cursor. When every
// channel is playing, the one under the cursor is stopped and reused. Rate
// limiter counts of the stolen sound are not reconciled.
func (p *ChannelPool) Acquire() *Channel {
	n := len(p.channels)
	start := p.next
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		ch := p.channels[idx]
		if !ch.IsPlaying() {
			p.next = (idx + 1) % n
			return ch
		}
	}

	ch := p.channels[p.next]
	ch.Stop()
	p.steals++
	p.next = (p.next + 1) % n
	return ch
}

func (p *ChannelPool) Len() int { return len(p.channels) }

// Steals reports how many times Acquire had to stop a playing channel.
func (p *ChannelPool) Steals() int { return p.steals }

// Channels exposes the pool for iteration. Callers must not retain it.
func (p *ChannelPool) Channels() []*Channel { return p.channels }

// Playing counts channels currently playing.
func (p *ChannelPool) Playing() int {
	n := 0
	for _, ch := range p.channels {
		if ch.IsPlaying() {
			n++
		}
	}
	return n
}
