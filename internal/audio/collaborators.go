package audio

// Preferences persists the linear volume sliders between sessions.
type Preferences interface {
	Float(key string, def float64) float64
	SetFloat(key string, v float64)
}

// BusOutput receives bus gain changes in decibels, keyed by exposed parameter name.
type BusOutput interface {
	SetBusGain(param string, db float64)
}

// Sink receives a snapshot of every playing channel once per tick.
// The slice is only valid for the duration of the call.
type Sink interface {
	Render(voices []Voice)
}

// Listener is the spatial listener toggled on game state changes.
type Listener interface {
	SetEnabled(enabled bool)
}

// Session answers questions about the running game session.
type Session interface {
	LocalMultiplayer() bool
}

// Voice is the per-tick view of one playing channel.
type Voice struct {
	Channel      int
	Generation   uint64
	Owner        Owner
	Bus          Bus
	Clip         Clip
	Volume       float64
	Pitch        float64
	Loop         bool
	SpatialBlend float64
	Position     Vec3
}

type nopSink struct{}

func (nopSink) Render([]Voice) {}

type nopBus struct{}

func (nopBus) SetBusGain(string, float64) {}

type nopListener struct{}

func (nopListener) SetEnabled(bool) {}

type soloSession struct{}

func (soloSession) LocalMultiplayer() bool { return false }

// MemoryPreferences is an in-process Preferences store.
type MemoryPreferences map[string]float64

func (p MemoryPreferences) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

func (p MemoryPreferences) SetFloat(key string, v float64) { p[key] = v }
