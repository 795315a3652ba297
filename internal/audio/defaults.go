package audio

import "errors"

// Pool sizing.
const DefaultPoolSize = 48

// Fade durations in seconds.
const (
	DefaultMusicFade     = 1.0
	DefaultMusicStopFade = 0.5
	DefaultAmbienceFade  = 1.0
)

// Mixer gain floor. Linear sliders below this clamp before the log10 mapping,
// giving a floor of -80 dB.
const (
	MinLinearGain = 0.0001
	FloorDB       = -80.0
)

// Frame loop.
const (
	MaxTickDelta = 0.1 // seconds; longer stalls are clamped like a frame loop
)

// Preference keys for the five volume sliders.
const (
	PrefMasterVolume = "masterVol"
	PrefMusicVolume  = "musicVol"
	PrefSoundsVolume = "soundVol"
	PrefUIVolume     = "uiVol"
	PrefVOVolume     = "voVol"
)

var (
	ErrUnknownCategory = errors.New("unknown sound category")
	ErrUnknownGroup    = errors.New("unknown volume group")
)
