package audio

import (
	"fmt"
	"math"
	"strings"

	"soundcore/internal/log"
)

// VolumeGroup is one of the five user-facing volume sliders.
type VolumeGroup int

const (
	GroupMaster VolumeGroup = iota
	GroupMusic
	GroupSounds
	GroupUI
	GroupVO
)

var groupNames = [...]string{
	GroupMaster: "master",
	GroupMusic:  "music",
	GroupSounds: "sounds",
	GroupUI:     "ui",
	GroupVO:     "vo",
}

func (g VolumeGroup) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return fmt.Sprintf("group(%d)", int(g))
	}
	return groupNames[g]
}

func ParseVolumeGroup(s string) (VolumeGroup, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range groupNames {
		if name == s {
			return VolumeGroup(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

// VolumeGroups lists the groups in declaration order.
func VolumeGroups() []VolumeGroup {
	return []VolumeGroup{GroupMaster, GroupMusic, GroupSounds, GroupUI, GroupVO}
}

// MixerParams names the exposed bus parameter for each volume group.
type MixerParams struct {
	Master string
	Music  string
	Sounds string // drives both the sfx and ambience buses
	UI     string
	VO     string
}

// DefaultMixerParams returns the conventional parameter names.
func DefaultMixerParams() MixerParams {
	return MixerParams{
		Master: "MasterVolume",
		Music:  "MusicVolume",
		Sounds: "SoundsVolume",
		UI:     "UIVolume",
		VO:     "VOVolume",
	}
}

func (p MixerParams) param(g VolumeGroup) string {
	switch g {
	case GroupMaster:
		return p.Master
	case GroupMusic:
		return p.Music
	case GroupSounds:
		return p.Sounds
	case GroupUI:
		return p.UI
	case GroupVO:
		return p.VO
	}
	return ""
}

func prefKey(g VolumeGroup) string {
	switch g {
	case GroupMaster:
		return PrefMasterVolume
	case GroupMusic:
		return PrefMusicVolume
	case GroupSounds:
		return PrefSoundsVolume
	case GroupUI:
		return PrefUIVolume
	case GroupVO:
		return PrefVOVolume
	}
	return ""
}

// VolumeSettings holds the five linear sliders, each in [0,1].
type VolumeSettings struct {
	Master, Music, Sounds, UI, VO float64
}

func (s *VolumeSettings) slot(g VolumeGroup) *float64 {
	switch g {
	case GroupMaster:
		return &s.Master
	case GroupMusic:
		return &s.Music
	case GroupSounds:
		return &s.Sounds
	case GroupUI:
		return &s.UI
	case GroupVO:
		return &s.VO
	}
	return nil
}

// LinearToDB maps a linear slider to bus gain, clamping to MinLinearGain first
// so the result is always finite.
func LinearToDB(v float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	v = clampF(v, MinLinearGain, 1)
	return 20 * math.Log10(v)
}

// GainController maps sliders to logarithmic bus gains and persists them.
type GainController struct {
	out      BusOutput
	prefs    Preferences
	params   MixerParams
	settings VolumeSettings
	muted    bool
}

func NewGainController(out BusOutput, prefs Preferences, params MixerParams) *GainController {
	if out == nil {
		out = nopBus{}
	}
	if prefs == nil {
		prefs = MemoryPreferences{}
	}
	return &GainController{
		out:      out,
		prefs:    prefs,
		params:   params,
		settings: VolumeSettings{Master: 1, Music: 1, Sounds: 1, UI: 1, VO: 1},
	}
}

// Load reads the persisted sliders (default 1) and applies them to the buses.
func (g *GainController) Load() {
	for _, grp := range VolumeGroups() {
		v := clampUnit(g.prefs.Float(prefKey(grp), 1))
		*g.settings.slot(grp) = v
		g.apply(grp, v)
	}
	log.Debug(log.CatMixer, "Volumes loaded",
		"master", g.settings.Master, "music", g.settings.Music, "sounds", g.settings.Sounds,
		"ui", g.settings.UI, "vo", g.settings.VO)
}

// SetVolume clamps value into [0,1], stores and persists it, and applies the
// matching bus gain.
func (g *GainController) SetVolume(grp VolumeGroup, value float64) {
	slot := g.settings.slot(grp)
	if slot == nil {
		log.Warn(log.CatMixer, "Unknown volume group", "group", int(grp))
		return
	}
	v := clampUnit(value)
	*slot = v
	g.prefs.SetFloat(prefKey(grp), v)
	g.apply(grp, v)
}

// Volume returns the current linear slider for grp.
func (g *GainController) Volume(grp VolumeGroup) float64 {
	if slot := g.settings.slot(grp); slot != nil {
		return *slot
	}
	return 0
}

func (g *GainController) Settings() VolumeSettings { return g.settings }

// Mute forces the master bus to the gain floor without touching the stored
// slider. Unmuting restores the stored master slider.
func (g *GainController) Mute(muted bool) {
	g.muted = muted
	g.apply(GroupMaster, g.settings.Master)
}

func (g *GainController) Muted() bool { return g.muted }

func (g *GainController) apply(grp VolumeGroup, v float64) {
	param := g.params.param(grp)
	if param == "" {
		return
	}
	if grp == GroupMaster && g.muted {
		v = 0
	}
	g.out.SetBusGain(param, LinearToDB(v))
}
