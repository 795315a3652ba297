package audio

import "sync"

type fakeClip struct {
	name   string
	length float64
}

func (c fakeClip) Name() string    { return c.name }
func (c fakeClip) Length() float64 { return c.length }

func variant(name string, length, volume float64) ClipVariant {
	return ClipVariant{Clip: fakeClip{name: name, length: length}, Volume: Fixed(volume), Pitch: Fixed(1)}
}

type recordingBus struct {
	mu    sync.Mutex
	gains map[string]float64
}

func newRecordingBus() *recordingBus { return &recordingBus{gains: make(map[string]float64)} }

func (b *recordingBus) SetBusGain(param string, db float64) {
	b.mu.Lock()
	b.gains[param] = db
	b.mu.Unlock()
}

func (b *recordingBus) gain(param string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gains[param]
}

type recordingSink struct {
	calls int
	last  []Voice
}

func (s *recordingSink) Render(voices []Voice) {
	s.calls++
	s.last = append(s.last[:0], voices...)
}

type recordingListener struct {
	states []bool
}

func (l *recordingListener) SetEnabled(enabled bool) { l.states = append(l.states, enabled) }

type fixedSession bool

func (s fixedSession) LocalMultiplayer() bool { return bool(s) }

type countAction struct{ n *int }

func (a countAction) Fire() { *a.n++ }

type logAction struct {
	log *[]string
	tag string
}

func (a logAction) Fire() { *a.log = append(*a.log, a.tag) }

// playing binds a short clip to ch and starts it.
func playing(ch *Channel) *Channel {
	v := variant("blip", 10, 1)
	ch.Bind(&v, &SoundDefinition{}, NewRand(1))
	ch.Play()
	return ch
}
