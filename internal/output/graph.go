// Package output turns the per-tick voice snapshots of the audio core into a
// mixed stereo stream.
package output

import (
	"math"
	"sync"

	"soundcore/internal/asset"
	"soundcore/internal/audio"
	"soundcore/internal/log"
)

// Spatial defaults. Positions are in world units.
const (
	DefaultPanWidth    = 10.0 // lateral offset that pans hard left or right
	DefaultRefDistance = 2.0  // full volume inside this radius
)

// FrameSource is sample data the graph can play. *asset.Clip implements it.
type FrameSource interface {
	Frames() int
	SampleRate() int
	Frame(i int) (left, right float32)
}

var _ FrameSource = (*asset.Clip)(nil)

type voiceKey struct {
	channel int
	gen     uint64
}

type voiceState struct {
	audio.Voice
	src    FrameSource
	cursor float64 // in source frames
	done   bool
	seen   bool
}

// Graph mixes the current voices through the bus gains. Render and
// SetBusGain are called from the tick goroutine, Mix from the device.
type Graph struct {
	mu       sync.Mutex
	rate     int
	routes   map[string][]audio.Bus
	params   map[string]float64 // linear gain per exposed parameter
	busGain  map[audio.Bus]float64
	voices   map[voiceKey]*voiceState
	listener audio.Vec3
	spatial  bool
	panWidth float64
	refDist  float64
}

// NewGraph builds the routing table from the mixer parameter names. The
// master parameter feeds every bus, the sounds parameter feeds sfx and
// ambience, and vo feeds both voice buses.
func NewGraph(params audio.MixerParams, rate int) *Graph {
	if rate <= 0 {
		rate = asset.DefaultSampleRate
	}
	g := &Graph{
		rate:     rate,
		routes:   make(map[string][]audio.Bus),
		params:   make(map[string]float64),
		busGain:  make(map[audio.Bus]float64),
		voices:   make(map[voiceKey]*voiceState),
		spatial:  true,
		panWidth: DefaultPanWidth,
		refDist:  DefaultRefDistance,
	}
	g.routes[params.Master] = audio.Buses()
	g.routes[params.Music] = []audio.Bus{audio.BusMusic}
	g.routes[params.Sounds] = []audio.Bus{audio.BusSFX, audio.BusAmbience}
	g.routes[params.UI] = []audio.Bus{audio.BusUI}
	g.routes[params.VO] = []audio.Bus{audio.BusCharacterVO, audio.BusCommentatorVO}
	for param := range g.routes {
		g.params[param] = 1
	}
	g.recompute()
	return g
}

func (g *Graph) SampleRate() int { return g.rate }

// SetBusGain implements audio.BusOutput. Gains at or below the floor silence the bus.
func (g *Graph) SetBusGain(param string, db float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.routes[param]; !ok {
		log.WarnLimited(log.CatOutput, "param/"+param, "Unknown mixer parameter", "param", param)
		return
	}
	g.params[param] = dbToLinear(db)
	g.recompute()
}

// BusGain returns the effective linear gain of b.
func (g *Graph) BusGain(b audio.Bus) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busGain[b]
}

// SetListener moves the point voices are panned and attenuated against.
func (g *Graph) SetListener(pos audio.Vec3) {
	g.mu.Lock()
	g.listener = pos
	g.mu.Unlock()
}

// SetEnabled implements audio.Listener. A disabled listener plays every voice
// flat, ignoring position.
func (g *Graph) SetEnabled(enabled bool) {
	g.mu.Lock()
	g.spatial = enabled
	g.mu.Unlock()
}

func (g *Graph) recompute() {
	for _, b := range audio.Buses() {
		g.busGain[b] = 1
	}
	for param, buses := range g.routes {
		for _, b := range buses {
			g.busGain[b] *= g.params[param]
		}
	}
}

// Render implements audio.Sink. Voices keep their playback position across
// calls as long as channel id and generation stay the same.
func (g *Graph) Render(voices []audio.Voice) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, vs := range g.voices {
		vs.seen = false
	}
	for _, v := range voices {
		src, ok := v.Clip.(FrameSource)
		if !ok {
			log.WarnLimited(log.CatOutput, "clip", "Voice clip has no sample data", "channel", v.Channel)
			continue
		}
		key := voiceKey{channel: v.Channel, gen: v.Generation}
		vs, ok := g.voices[key]
		if !ok {
			vs = &voiceState{src: src}
			g.voices[key] = vs
		}
		vs.Voice = v
		vs.seen = true
	}
	for key, vs := range g.voices {
		if !vs.seen {
			delete(g.voices, key)
		}
	}
}

// Voices is the number of voices currently held.
func (g *Graph) Voices() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.voices)
}

// Mix fills out with interleaved stereo frames at the graph sample rate.
func (g *Graph) Mix(out []float32) {
	for i := range out {
		out[i] = 0
	}
	frames := len(out) / 2

	g.mu.Lock()
	for _, vs := range g.voices {
		if vs.done {
			continue
		}
		left, right := g.voiceGains(vs)
		step := vs.Pitch * float64(vs.src.SampleRate()) / float64(g.rate)
		if step <= 0 {
			step = 1
		}
		n := vs.src.Frames()
		for i := 0; i < frames; i++ {
			idx := int(vs.cursor)
			if idx >= n {
				if !vs.Loop || n == 0 {
					vs.done = true
					break
				}
				vs.cursor = math.Mod(vs.cursor, float64(n))
				idx = int(vs.cursor)
			}
			l, r := vs.src.Frame(idx)
			out[2*i] += float32(float64(l) * left)
			out[2*i+1] += float32(float64(r) * right)
			vs.cursor += step
		}
	}
	g.mu.Unlock()

	for i, s := range out {
		out[i] = float32(asset.SoftSat(float64(s)))
	}
}

// voiceGains returns the left and right gain of vs: volume times bus gain,
// blended between flat stereo and equal-power pan with distance rolloff.
func (g *Graph) voiceGains(vs *voiceState) (left, right float64) {
	base := vs.Volume * g.busGain[vs.Bus]
	blend := vs.SpatialBlend
	if blend <= 0 || !g.spatial {
		return base, base
	}
	dx := vs.Position.X - g.listener.X
	dy := vs.Position.Y - g.listener.Y
	dz := vs.Position.Z - g.listener.Z
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)

	att := 1.0
	if dist > g.refDist {
		att = g.refDist / dist
	}
	pan := math.Max(-1, math.Min(1, dx/g.panWidth))
	angle := (pan + 1) * math.Pi / 4
	l3 := att * math.Cos(angle) * math.Sqrt2
	r3 := att * math.Sin(angle) * math.Sqrt2

	left = base * ((1-blend)*1 + blend*l3)
	right = base * ((1-blend)*1 + blend*r3)
	return left, right
}

func dbToLinear(db float64) float64 {
	if math.IsNaN(db) || db <= audio.FloorDB {
		return 0
	}
	return math.Pow(10, db/20)
}
