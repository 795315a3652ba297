package audio

import "fmt"

// Bus is an output mixing destination.
type Bus int

const (
	BusMusic Bus = iota
	BusSFX
	BusAmbience
	BusUI
	BusCharacterVO
	BusCommentatorVO
)

var busNames = [...]string{
	BusMusic:         "music",
	BusSFX:           "sfx",
	BusAmbience:      "ambience",
	BusUI:            "ui",
	BusCharacterVO:   "character_vo",
	BusCommentatorVO: "commentator_vo",
}

func (b Bus) String() string {
	if b < 0 || int(b) >= len(busNames) {
		return fmt.Sprintf("bus(%d)", int(b))
	}
	return busNames[b]
}

// Buses lists every bus in declaration order.
func Buses() []Bus {
	return []Bus{BusMusic, BusSFX, BusAmbience, BusUI, BusCharacterVO, BusCommentatorVO}
}

// Owner is the pool or registry a channel was created by.
type Owner int

const (
	OwnerMusic Owner = iota
	OwnerSFX
	OwnerCharacterVO
	OwnerAmbience
	OwnerCommentator
)

// PlayState is the transport state of a channel.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

// Channel is one playback unit holding at most one clip.
type Channel struct {
	id    int
	owner Owner

	Bus          Bus
	Volume       float64
	Pitch        float64
	Loop         bool
	SpatialBlend float64
	Position     Vec3

	clip   Clip
	state  PlayState
	cursor float64 // seconds into the clip
	gen    uint64
}

func newChannel(id int, owner Owner, bus Bus, loop bool) *Channel {
	return &Channel{id: id, owner: owner, Bus: bus, Loop: loop, Volume: 1, Pitch: 1}
}

func (c *Channel) ID() int            { return c.id }
func (c *Channel) Owner() Owner       { return c.owner }
func (c *Channel) Clip() Clip         { return c.clip }
func (c *Channel) State() PlayState   { return c.state }
func (c *Channel) IsPlaying() bool    { return c.state == Playing }
func (c *Channel) Cursor() float64    { return c.cursor }
func (c *Channel) Generation() uint64 { return c.gen }

// Play starts the current clip from the beginning. A channel without a clip stays stopped.
func (c *Channel) Play() {
	if c.clip == nil {
		return
	}
	c.state = Playing
	c.cursor = 0
	c.gen++
}

// Stop halts playback and rewinds.
func (c *Channel) Stop() {
	c.state = Stopped
	c.cursor = 0
}

// Pause halts playback keeping the cursor.
func (c *Channel) Pause() {
	if c.state == Playing {
		c.state = Paused
	}
}

// Bind assigns a clip variant and its randomized volume and pitch. Assigning a
// clip stops whatever the channel was playing.
func (c *Channel) Bind(v *ClipVariant, def *SoundDefinition, rng *Rand) {
	c.Stop()
	c.clip = v.Clip
	c.Volume = clampUnit(rng.Draw(v.Volume))
	c.Pitch = rng.Draw(v.Pitch)
	if c.Pitch <= 0 {
		c.Pitch = 1
	}
	c.Loop = def.Loop
	c.SpatialBlend = 0
	if def.Spatial {
		c.SpatialBlend = clampUnit(def.SpatialBlend)
	}
}

// advance moves the cursor by dt of unscaled time. Non-looping clips stop at their end.
func (c *Channel) advance(dt float64) {
	if c.state != Playing || c.clip == nil {
		return
	}
	length := c.clip.Length()
	c.cursor += dt * c.Pitch
	if c.cursor < length {
		return
	}
	if c.Loop && length > 0 {
		for c.cursor >= length {
			c.cursor -= length
		}
		return
	}
	c.Stop()
}

func (c *Channel) voice() Voice {
	return Voice{
		Channel:      c.id,
		Generation:   c.gen,
		Owner:        c.owner,
		Bus:          c.Bus,
		Clip:         c.clip,
		Volume:       c.Volume,
		Pitch:        c.Pitch,
		Loop:         c.Loop,
		SpatialBlend: c.SpatialBlend,
		Position:     c.Position,
	}
}

// channelFactory hands out unique channel ids.
type channelFactory struct {
	next int
}

func (f *channelFactory) make(owner Owner, bus Bus, loop bool) *Channel {
	f.next++
	return newChannel(f.next, owner, bus, loop)
}
