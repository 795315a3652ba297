package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"soundcore/internal/audio"
	"soundcore/internal/log"
)

// DefaultTail is how long a script keeps ticking after its last event.
const DefaultTail = 1.0

// timeSlack absorbs the drift of summing a fixed step.
const timeSlack = 1e-9

var errBadScript = errors.New("bad script")

type scriptDoc struct {
	Duration *float64   `yaml:"duration"`
	Events   []eventDoc `yaml:"events"`
}

type eventDoc struct {
	At       float64   `yaml:"at"`
	Event    string    `yaml:"event"`
	Sound    string    `yaml:"sound"`
	Position []float64 `yaml:"position,flow"`
	Play     *bool     `yaml:"play"`
	Fade     *float64  `yaml:"fade"`
	Group    string    `yaml:"group"`
	Value    float64   `yaml:"value"`
	Key      int       `yaml:"key"`
	State    string    `yaml:"state"`
	Playing  bool      `yaml:"playing"`
	Language string    `yaml:"language"`
}

type cue struct {
	at    float64
	name  string
	apply func(audio.Inbound)
}

// timeline is a compiled script: cues sorted by time plus the tick at which
// the run ends.
type timeline struct {
	cues []cue
	end  float64
}

func loadScript(path string, cat audio.Catalog, fade float64) (*timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	tl, err := compileScript(f, cat, fade)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tl, nil
}

// compileScript parses a YAML timeline and resolves every reference against
// cat, so a script that loads never fails halfway through a run. Ambience
// toggles without a fade use fade.
func compileScript(r io.Reader, cat audio.Catalog, fade float64) (*timeline, error) {
	var doc scriptDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	tail := DefaultTail
	if doc.Duration != nil {
		if *doc.Duration < 0 {
			return nil, fmt.Errorf("%w: negative duration", errBadScript)
		}
		tail = *doc.Duration
	}

	tl := &timeline{cues: make([]cue, 0, len(doc.Events))}
	last := 0.0
	for i, ed := range doc.Events {
		if ed.At < 0 {
			return nil, fmt.Errorf("event #%d: %w: negative time", i, errBadScript)
		}
		apply, err := ed.compile(cat, fade)
		if err != nil {
			return nil, fmt.Errorf("event #%d (%s): %w", i, ed.Event, err)
		}
		tl.cues = append(tl.cues, cue{at: ed.At, name: ed.Event, apply: apply})
		last = max(last, ed.At)
	}
	sort.SliceStable(tl.cues, func(i, j int) bool { return tl.cues[i].at < tl.cues[j].at })
	tl.end = last + tail
	return tl, nil
}

func (ed eventDoc) compile(cat audio.Catalog, fade float64) (func(audio.Inbound), error) {
	switch ed.Event {
	case "play":
		id, err := ed.sound(cat)
		if err != nil {
			return nil, err
		}
		if ed.Position == nil {
			return func(in audio.Inbound) { in.OnPlaySound(id) }, nil
		}
		pos, err := ed.position()
		if err != nil {
			return nil, err
		}
		return func(in audio.Inbound) { in.OnPlaySoundAt(id, pos) }, nil

	case "ambience":
		id, err := ed.sound(cat)
		if err != nil {
			return nil, err
		}
		play := ed.Play == nil || *ed.Play
		if ed.Fade != nil {
			fade = *ed.Fade
		}
		return func(in audio.Inbound) { in.OnAmbienceToggle(id, fade, play) }, nil

	case "volume":
		group, err := audio.ParseVolumeGroup(ed.Group)
		if err != nil {
			return nil, err
		}
		v := ed.Value
		return func(in audio.Inbound) { in.OnVolumeChanged(group, v) }, nil

	case "character_vo":
		def, err := ed.definition(cat)
		if err != nil {
			return nil, err
		}
		key := ed.Key
		return func(in audio.Inbound) { in.OnPlayCharacterVO(key, nil, def) }, nil

	case "commentator_vo":
		def, err := ed.definition(cat)
		if err != nil {
			return nil, err
		}
		return func(in audio.Inbound) { in.OnPlayCommentatorVO(nil, def) }, nil

	case "spawn":
		key := ed.Key
		return func(in audio.Inbound) { in.OnCharacterSpawned(key) }, nil

	case "despawn":
		key := ed.Key
		return func(in audio.Inbound) { in.OnCharacterDespawned(key) }, nil

	case "game_state":
		state, ok := audio.ParseGameState(ed.State)
		if !ok {
			return nil, fmt.Errorf("%w: unknown game state %q", errBadScript, ed.State)
		}
		return func(in audio.Inbound) { in.OnGameStateChanged(state) }, nil

	case "ad":
		playing := ed.Playing
		return func(in audio.Inbound) { in.OnAdPlaybackChanged(playing) }, nil

	case "language":
		tag, err := language.Parse(ed.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: language %q: %v", errBadScript, ed.Language, err)
		}
		return func(in audio.Inbound) { in.SetLanguage(tag) }, nil
	}
	return nil, fmt.Errorf("%w: unknown event %q", errBadScript, ed.Event)
}

func (ed eventDoc) sound(cat audio.Catalog) (audio.SoundID, error) {
	def, err := ed.definition(cat)
	if err != nil {
		return "", err
	}
	return def.ID, nil
}

func (ed eventDoc) definition(cat audio.Catalog) (*audio.SoundDefinition, error) {
	if ed.Sound == "" {
		return nil, fmt.Errorf("%w: missing sound", errBadScript)
	}
	def, ok := cat.Lookup(audio.SoundID(ed.Sound))
	if !ok {
		return nil, fmt.Errorf("%w: unknown sound %q", errBadScript, ed.Sound)
	}
	return def, nil
}

func (ed eventDoc) position() (audio.Vec3, error) {
	if len(ed.Position) != 3 {
		return audio.Vec3{}, fmt.Errorf("%w: position needs 3 values, got %d", errBadScript, len(ed.Position))
	}
	return audio.Vec3{X: ed.Position[0], Y: ed.Position[1], Z: ed.Position[2]}, nil
}

type runStats struct {
	Ticks int
	Cues  int
}

// run drives m with a fixed step until the timeline ends. With a non-zero
// interval each tick waits for the wall clock.
func (tl *timeline) run(ctx context.Context, m *audio.Manager, step float64, interval time.Duration) (runStats, error) {
	var stats runStats
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	next := 0
	for {
		applied := false
		for next < len(tl.cues) && tl.cues[next].at <= m.Now()+timeSlack {
			log.Debug(log.CatAudio, "Script cue", "at", tl.cues[next].at, "event", tl.cues[next].name)
			tl.cues[next].apply(m)
			next++
			stats.Cues++
			applied = true
		}
		// Cues only take effect on the following tick.
		if !applied && next == len(tl.cues) && m.Now()+timeSlack >= tl.end {
			return stats, nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return stats, err
		}
		m.Tick(step)
		stats.Ticks++
	}
}
