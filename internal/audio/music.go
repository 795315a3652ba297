package audio

// MusicPlayer crossfades between two alternating music channels.
type MusicPlayer struct {
	a, b   *Channel
	toggle bool
	active *Channel
	fader  *Fader
	rng    *Rand
}

func NewMusicPlayer(f *channelFactory, fader *Fader, rng *Rand) *MusicPlayer {
	return &MusicPlayer{
		a:     f.make(OwnerMusic, BusMusic, true),
		b:     f.make(OwnerMusic, BusMusic, true),
		fader: fader,
		rng:   rng,
	}
}

// Play binds a random variant of def to the idle channel and crossfades it in
// over duration while the other channel fades out. It returns the variant
// that was bound, or nil when the definition has no usable clip.
func (m *MusicPlayer) Play(def *SoundDefinition, duration float64) *ClipVariant {
	target, outgoing := m.a, m.b
	if m.toggle {
		target, outgoing = m.b, m.a
	}
	m.toggle = !m.toggle

	v := m.rng.Pick(def.Clips)
	if v == nil || v.Clip == nil {
		return nil
	}
	target.Bind(v, def, m.rng)
	volume := target.Volume
	target.Volume = 0
	m.active = target

	m.fader.Fade(target, true, volume, duration, nil)
	m.fader.Fade(outgoing, false, 0, duration, nil)
	return v
}

// Stop fades both channels out over duration.
func (m *MusicPlayer) Stop(duration float64) {
	m.fader.Fade(m.a, false, 0, duration, nil)
	m.fader.Fade(m.b, false, 0, duration, nil)
}

// Active is the channel most recently faded in, or nil before the first Play.
func (m *MusicPlayer) Active() *Channel { return m.active }

// Channels returns the pair in fixed order.
func (m *MusicPlayer) Channels() (*Channel, *Channel) { return m.a, m.b }
