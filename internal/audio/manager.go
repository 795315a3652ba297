// Package audio is the runtime playback core: it arbitrates a fixed pool of
// channels across sound requests, rate limits noisy sounds, runs volume fades
// against unscaled time and maps volume sliders to logarithmic bus gains.
//
// All state is owned by the goroutine that calls Tick. Other goroutines talk
// to the Manager through its On* methods, which only enqueue.
package audio

import (
	"context"
	"math"
	"time"

	"golang.org/x/text/language"

	"soundcore/internal/log"
)

// Inbound is the full set of requests the core accepts from the game.
type Inbound interface {
	OnVolumeChanged(group VolumeGroup, value float64)
	OnPlaySound(id SoundID)
	OnPlaySoundAt(id SoundID, pos Vec3)
	OnPlaySoundDefinition(def *SoundDefinition)
	OnAmbienceToggle(id SoundID, fade float64, play bool)
	OnPlayCharacterVO(key int, clip *ClipVariant, def *SoundDefinition)
	OnPlayCommentatorVO(clip *ClipVariant, def *SoundDefinition)
	OnCharacterSpawned(key int)
	OnCharacterDespawned(key int)
	OnGameStateChanged(state GameState)
	OnAdPlaybackChanged(playing bool)
	SetLanguage(tag language.Tag)
}

var _ Inbound = (*Manager)(nil)

// Options wires a Manager to its collaborators. Zero values fall back to
// defaults; a nil Catalog behaves as an empty one.
type Options struct {
	Catalog  Catalog
	Prefs    Preferences
	Bus      BusOutput
	Sink     Sink
	Listener Listener
	Session  Session
	Params   MixerParams

	PoolSize      int
	MusicFade     float64
	MusicStopFade float64
	AmbienceFade  float64

	Language        language.Tag
	DefaultLanguage language.Tag
	MenuMusic       SoundID
	AdMute          bool
	Seed            uint64
}

// Manager is the dispatch and policy layer.
type Manager struct {
	catalog  Catalog
	sink     Sink
	listener Listener
	session  Session

	sched       *Scheduler
	limiter     *RateLimiter
	fader       *Fader
	music       *MusicPlayer
	pool        *ChannelPool
	voices      *Registry[int]
	ambience    *Registry[SoundID]
	commentator *Channel
	gains       *GainController
	rng         *Rand
	queue       EventQueue

	now           float64
	musicFade     float64
	musicStopFade float64
	ambienceFade  float64
	lang          language.Tag
	defaultLang   language.Tag
	menuMusic     SoundID
	adMute        bool
	realSpatials  bool

	voiceBuf []Voice
}

// NewManager builds the channel pools and applies the persisted volumes.
func NewManager(opts Options) *Manager {
	if opts.Catalog == nil {
		opts.Catalog = MapCatalog{}
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}
	if opts.Session == nil {
		opts.Session = soloSession{}
	}
	if opts.Params == (MixerParams{}) {
		opts.Params = DefaultMixerParams()
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.MusicFade <= 0 {
		opts.MusicFade = DefaultMusicFade
	}
	if opts.MusicStopFade <= 0 {
		opts.MusicStopFade = DefaultMusicStopFade
	}
	if opts.AmbienceFade <= 0 {
		opts.AmbienceFade = DefaultAmbienceFade
	}
	if opts.DefaultLanguage == language.Und {
		opts.DefaultLanguage = language.English
	}
	if opts.Language == language.Und {
		opts.Language = opts.DefaultLanguage
	}
	if opts.MenuMusic == "" {
		opts.MenuMusic = "MusicMenu"
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	f := &channelFactory{}
	sched := &Scheduler{}
	fader := NewFader()
	rng := NewRand(opts.Seed)
	m := &Manager{
		catalog:       opts.Catalog,
		sink:          opts.Sink,
		listener:      opts.Listener,
		session:       opts.Session,
		sched:         sched,
		limiter:       NewRateLimiter(sched),
		fader:         fader,
		rng:           rng,
		music:         NewMusicPlayer(f, fader, rng),
		pool:          NewChannelPool(f, opts.PoolSize, BusSFX),
		voices:        NewRegistry[int](f, OwnerCharacterVO, BusCharacterVO),
		ambience:      NewRegistry[SoundID](f, OwnerAmbience, BusAmbience),
		commentator:   f.make(OwnerCommentator, BusCommentatorVO, false),
		gains:         NewGainController(opts.Bus, opts.Prefs, opts.Params),
		musicFade:     opts.MusicFade,
		musicStopFade: opts.MusicStopFade,
		ambienceFade:  opts.AmbienceFade,
		lang:          opts.Language,
		defaultLang:   opts.DefaultLanguage,
		menuMusic:     opts.MenuMusic,
		adMute:        opts.AdMute,
	}
	m.gains.Load()
	log.Debug(log.CatAudio, "Audio manager ready",
		"pool", opts.PoolSize, "language", m.lang.String(), "fallback", m.defaultLang.String())
	return m
}

// ---- Inbound (enqueue only) ----------------------------------------------

func (m *Manager) Push(e Event) { m.queue.Push(e) }

func (m *Manager) OnVolumeChanged(group VolumeGroup, value float64) {
	m.Push(Event{Type: EventVolumeChanged, Group: group, Value: value})
}

func (m *Manager) OnPlaySound(id SoundID) {
	m.Push(Event{Type: EventPlaySound, Sound: id})
}

func (m *Manager) OnPlaySoundAt(id SoundID, pos Vec3) {
	m.Push(Event{Type: EventPlaySound, Sound: id, Position: &pos})
}

func (m *Manager) OnPlaySoundDefinition(def *SoundDefinition) {
	m.Push(Event{Type: EventPlayDefinition, Definition: def})
}

func (m *Manager) OnAmbienceToggle(id SoundID, fade float64, play bool) {
	m.Push(Event{Type: EventAmbience, Sound: id, Value: fade, Flag: play})
}

func (m *Manager) OnPlayCharacterVO(key int, clip *ClipVariant, def *SoundDefinition) {
	m.Push(Event{Type: EventCharacterVO, Key: key, Clip: clip, Definition: def})
}

func (m *Manager) OnPlayCommentatorVO(clip *ClipVariant, def *SoundDefinition) {
	m.Push(Event{Type: EventCommentatorVO, Clip: clip, Definition: def})
}

func (m *Manager) OnCharacterSpawned(key int) {
	m.Push(Event{Type: EventCharacterSpawned, Key: key})
}

func (m *Manager) OnCharacterDespawned(key int) {
	m.Push(Event{Type: EventCharacterDespawned, Key: key})
}

func (m *Manager) OnGameStateChanged(state GameState) {
	m.Push(Event{Type: EventGameStateChanged, State: state})
}

func (m *Manager) OnAdPlaybackChanged(playing bool) {
	m.Push(Event{Type: EventAdPlayback, Flag: playing})
}

func (m *Manager) SetLanguage(tag language.Tag) {
	m.Push(Event{Type: EventLanguageChanged, Language: tag})
}

// ---- Tick ----------------------------------------------------------------

// Tick advances the core by dt seconds of unscaled time. Due scheduled
// actions fire first and playback cursors advance, then queued requests
// apply in arrival order, then fades advance (including ones those requests
// just started), and finally the playing voices render. A clip started in
// this tick begins at its first frame.
func (m *Manager) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	m.now += dt
	m.sched.Drain(m.now)
	m.advance(dt)
	for _, e := range m.queue.Drain() {
		m.handle(e)
	}
	m.fader.Update(dt)
	m.render()
}

// Run ticks at interval from wall-clock time until ctx is done. Stalls longer
// than MaxTickDelta are clamped.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > MaxTickDelta {
				dt = MaxTickDelta
			}
			m.Tick(dt)
		}
	}
}

func (m *Manager) handle(e Event) {
	switch e.Type {
	case EventVolumeChanged:
		m.gains.SetVolume(e.Group, e.Value)
	case EventPlaySound:
		def, ok := m.lookup(e.Sound)
		if !ok {
			return
		}
		m.playDefinition(def, e.Position)
	case EventPlayDefinition:
		if e.Definition == nil {
			log.WarnLimited(log.CatAudio, "nil-definition", "Play request without definition")
			return
		}
		m.playDefinition(e.Definition, e.Position)
	case EventAmbience:
		if e.Flag {
			if def, ok := m.lookup(e.Sound); ok {
				m.playAmbience(def, e.Value)
			}
		} else {
			m.StopAmbience(e.Sound, e.Value)
		}
	case EventCharacterVO:
		m.playCharacterVO(e.Key, e.Clip, e.Definition)
	case EventCommentatorVO:
		m.playCommentatorVO(e.Clip, e.Definition)
	case EventCharacterSpawned:
		m.voices.GetOrCreate(e.Key)
	case EventCharacterDespawned:
		m.voices.Remove(e.Key)
	case EventGameStateChanged:
		m.gameStateChanged(e.State)
	case EventAdPlayback:
		if m.adMute {
			m.gains.Mute(e.Flag)
		}
	case EventLanguageChanged:
		m.lang = e.Language
	}
}

// ---- Dispatch ------------------------------------------------------------

// lookup resolves id, treating a missing definition or one without clips as
// a content error.
func (m *Manager) lookup(id SoundID) (*SoundDefinition, bool) {
	def, ok := m.catalog.Lookup(id)
	if !ok {
		log.WarnLimited(log.CatAudio, "missing/"+string(id), "Sound definition not found", "id", string(id))
		return nil, false
	}
	if !def.HasClips() {
		log.WarnLimited(log.CatAudio, "noclips/"+string(id), "Sound definition has no clips", "id", string(id))
		return nil, false
	}
	return def, true
}

func (m *Manager) playDefinition(def *SoundDefinition, pos *Vec3) {
	if !def.HasClips() {
		log.WarnLimited(log.CatAudio, "noclips/"+string(def.ID), "Sound definition has no clips", "id", string(def.ID))
		return
	}
	if !m.limiter.TryAdmit(def.ID, def, m.now) {
		log.Debug(log.CatAudio, "Sound rate limited", "id", string(def.ID))
		return
	}

	var v *ClipVariant
	switch def.Category {
	case CategoryMusic:
		v = m.music.Play(def, m.musicFade)
	case CategoryEnvironment:
		v = m.playAmbience(def, m.ambienceFade)
	default:
		v = m.playSFX(def, pos)
	}
	if def.Limits.Enabled {
		m.limiter.Hold(def.ID, m.now, clipLength(v))
	}
	if v == nil {
		log.WarnLimited(log.CatAudio, "noclip/"+string(def.ID), "Clip missing from definition", "id", string(def.ID))
	}
}

func (m *Manager) playSFX(def *SoundDefinition, pos *Vec3) *ClipVariant {
	v := m.rng.Pick(def.Clips)
	if v == nil || v.Clip == nil {
		return nil
	}
	ch := m.pool.Acquire()
	ch.Bus = BusForCategory(def.Category)
	ch.Bind(v, def, m.rng)
	if def.Spatial && pos != nil {
		ch.Position = *pos
		ch.SpatialBlend = clampUnit(def.SpatialBlend)
	} else {
		ch.Position = Vec3{}
		ch.SpatialBlend = 0
	}
	m.fader.Cancel(ch)
	ch.Play()
	return v
}

func (m *Manager) playAmbience(def *SoundDefinition, fade float64) *ClipVariant {
	v := m.rng.Pick(def.Clips)
	if v == nil || v.Clip == nil {
		return nil
	}
	ch, created := m.ambience.GetOrCreate(def.ID)
	if created {
		ch.Loop = def.Loop
	}
	ch.Bind(v, def, m.rng)
	ch.Position = Vec3{}
	ch.SpatialBlend = 0
	m.fader.Fade(ch, true, ch.Volume, fade, nil)
	return v
}

// StopAmbience fades the ambience channel for id out and stops it. The
// channel stays registered for reuse.
func (m *Manager) StopAmbience(id SoundID, fade float64) {
	ch, ok := m.ambience.Get(id)
	if !ok {
		return
	}
	m.fader.Fade(ch, false, 0, fade, ch.Stop)
}

// StopAllAmbience fades out and stops every ambience channel.
func (m *Manager) StopAllAmbience(fade float64) {
	m.ambience.Each(func(_ SoundID, ch *Channel) {
		m.fader.Fade(ch, false, 0, fade, ch.Stop)
	})
}

// StopMusic fades both music channels out.
func (m *Manager) StopMusic(fade float64) {
	m.music.Stop(fade)
}

// selectVO picks a localized clip for the current language, falling back to
// the default language. Both lists empty is a silent skip.
func (m *Manager) selectVO(def *SoundDefinition) *ClipVariant {
	if v := m.rng.Pick(def.Localized[m.lang]); v != nil {
		return v
	}
	if m.lang != m.defaultLang {
		if v := m.rng.Pick(def.Localized[m.defaultLang]); v != nil {
			log.Debug(log.CatAudio, "VO falling back to default language",
				"id", string(def.ID), "language", m.lang.String(), "fallback", m.defaultLang.String())
			return v
		}
	}
	log.WarnLimited(log.CatAudio, "novo/"+string(def.ID), "No VO clip for language",
		"id", string(def.ID), "language", m.lang.String())
	return nil
}

func (m *Manager) playCharacterVO(key int, clip *ClipVariant, def *SoundDefinition) {
	if def == nil {
		log.WarnLimited(log.CatAudio, "nil-vo", "VO request without definition", "key", key)
		return
	}
	if clip == nil {
		clip = m.selectVO(def)
	}
	if clip == nil || clip.Clip == nil {
		return
	}
	ch, _ := m.voices.GetOrCreate(key)
	m.hardCut(ch, clip, def)
}

func (m *Manager) playCommentatorVO(clip *ClipVariant, def *SoundDefinition) {
	if def == nil {
		log.WarnLimited(log.CatAudio, "nil-commentator", "Commentator request without definition")
		return
	}
	if clip == nil {
		clip = m.rng.Pick(def.Clips)
	}
	if clip == nil {
		clip = m.selectVO(def)
	}
	if clip == nil || clip.Clip == nil {
		return
	}
	m.hardCut(m.commentator, clip, def)
}

// hardCut replaces whatever ch is playing without a crossfade.
func (m *Manager) hardCut(ch *Channel, clip *ClipVariant, def *SoundDefinition) {
	m.fader.Cancel(ch)
	ch.Stop()
	ch.Bind(clip, def, m.rng)
	ch.Position = Vec3{}
	ch.SpatialBlend = 0
	ch.Play()
}

func (m *Manager) gameStateChanged(state GameState) {
	log.Debug(log.CatAudio, "Game state changed", "state", state.String())
	switch state {
	case StateMainSceneEntered:
		m.playMenuMusic()
	case StateMinigameEntered:
		m.StopMusic(m.musicStopFade)
		m.realSpatials = m.session.LocalMultiplayer()
		m.listener.SetEnabled(m.realSpatials)
	case StateMinigameEnd:
		m.StopMusic(m.musicStopFade)
	case StateExitingMinigame:
		m.StopAllAmbience(m.ambienceFade)
	case StateMenu:
		m.voices.Clear()
		m.listener.SetEnabled(true)
		m.playMenuMusic()
	}
}

func (m *Manager) playMenuMusic() {
	if def, ok := m.lookup(m.menuMusic); ok {
		m.playDefinition(def, nil)
	}
}

// ---- Per-tick upkeep ------------------------------------------------------

func (m *Manager) eachChannel(fn func(ch *Channel)) {
	a, b := m.music.Channels()
	fn(a)
	fn(b)
	for _, ch := range m.pool.Channels() {
		fn(ch)
	}
	m.voices.Each(func(_ int, ch *Channel) { fn(ch) })
	m.ambience.Each(func(_ SoundID, ch *Channel) { fn(ch) })
	fn(m.commentator)
}

func (m *Manager) advance(dt float64) {
	if dt == 0 {
		return
	}
	m.eachChannel(func(ch *Channel) { ch.advance(dt) })
}

func (m *Manager) render() {
	m.voiceBuf = m.voiceBuf[:0]
	m.eachChannel(func(ch *Channel) {
		if ch.IsPlaying() {
			m.voiceBuf = append(m.voiceBuf, ch.voice())
		}
	})
	m.sink.Render(m.voiceBuf)
}

// BusForCategory routes one-shot sounds to their output bus.
func BusForCategory(c Category) Bus {
	switch c {
	case CategoryMeta, CategoryNotifications, CategoryGameplayObjects, CategoryToolsWeapons, CategoryCharacterFoley:
		return BusSFX
	case CategoryCrowdReactions, CategoryEnvironment:
		return BusAmbience
	case CategoryUI:
		return BusUI
	default:
		return BusSFX
	}
}

func clipLength(v *ClipVariant) float64 {
	if v == nil || v.Clip == nil {
		return 0
	}
	return v.Clip.Length()
}

// ---- Inspection -----------------------------------------------------------

func (m *Manager) Now() float64                         { return m.now }
func (m *Manager) Music() *MusicPlayer                  { return m.music }
func (m *Manager) Pool() *ChannelPool                   { return m.pool }
func (m *Manager) Fader() *Fader                        { return m.fader }
func (m *Manager) Limiter() *RateLimiter                { return m.limiter }
func (m *Manager) Gains() *GainController               { return m.gains }
func (m *Manager) Commentator() *Channel                { return m.commentator }
func (m *Manager) Language() language.Tag               { return m.lang }
func (m *Manager) SpatialMode() bool                    { return m.realSpatials }
func (m *Manager) Ambience(id SoundID) (*Channel, bool) { return m.ambience.Get(id) }
func (m *Manager) CharacterVO(key int) (*Channel, bool) { return m.voices.Get(key) }
func (m *Manager) CharacterVOCount() int                { return m.voices.Len() }
func (m *Manager) Pending() int                         { return m.queue.Len() }
