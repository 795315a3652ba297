// Package config loads soundcore settings from an optional YAML file and
// SOUNDCORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"soundcore/internal/asset"
	"soundcore/internal/audio"
)

const EnvPrefix = "SOUNDCORE"

// Output backends.
const (
	BackendOto  = "oto"
	BackendNull = "null"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Audio    AudioConfig  `mapstructure:"audio"`
	Mixer    MixerConfig  `mapstructure:"mixer"`
	Output   OutputConfig `mapstructure:"output"`
	Prefs    PrefsConfig  `mapstructure:"prefs"`
}

type AudioConfig struct {
	PoolSize        int     `mapstructure:"pool_size"`
	MusicFade       float64 `mapstructure:"music_fade"`
	MusicStopFade   float64 `mapstructure:"music_stop_fade"`
	AmbienceFade    float64 `mapstructure:"ambience_fade"`
	Language        string  `mapstructure:"language"`
	DefaultLanguage string  `mapstructure:"default_language"`
	MenuMusic       string  `mapstructure:"menu_music"`
	AdMute          bool    `mapstructure:"ad_mute"`
	TickRate        int     `mapstructure:"tick_rate"` // ticks per second
}

// MixerConfig names the exposed bus gain parameters.
type MixerConfig struct {
	Master string `mapstructure:"master"`
	Music  string `mapstructure:"music"`
	Sounds string `mapstructure:"sounds"`
	UI     string `mapstructure:"ui"`
	VO     string `mapstructure:"vo"`
}

type OutputConfig struct {
	Backend    string `mapstructure:"backend"`
	SampleRate int    `mapstructure:"sample_rate"`
}

type PrefsConfig struct {
	Path string `mapstructure:"path"` // empty keeps preferences in memory
}

func setDefaults(v *viper.Viper) {
	params := audio.DefaultMixerParams()

	v.SetDefault("log_level", "info")

	v.SetDefault("audio.pool_size", audio.DefaultPoolSize)
	v.SetDefault("audio.music_fade", audio.DefaultMusicFade)
	v.SetDefault("audio.music_stop_fade", audio.DefaultMusicStopFade)
	v.SetDefault("audio.ambience_fade", audio.DefaultAmbienceFade)
	v.SetDefault("audio.language", "en")
	v.SetDefault("audio.default_language", "en")
	v.SetDefault("audio.menu_music", "MusicMenu")
	v.SetDefault("audio.ad_mute", true)
	v.SetDefault("audio.tick_rate", 60)

	v.SetDefault("mixer.master", params.Master)
	v.SetDefault("mixer.music", params.Music)
	v.SetDefault("mixer.sounds", params.Sounds)
	v.SetDefault("mixer.ui", params.UI)
	v.SetDefault("mixer.vo", params.VO)

	v.SetDefault("output.backend", BackendOto)
	v.SetDefault("output.sample_rate", asset.DefaultSampleRate)

	v.SetDefault("prefs.path", "")
}

// Default returns the built-in configuration. The environment is not
// consulted.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(err) // defaults always validate
	}
	return cfg
}

// Load reads path (if not empty) over the defaults and applies environment
// overrides such as SOUNDCORE_AUDIO_POOL_SIZE.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Audio.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("audio.pool_size must be at least 1, got %d", c.Audio.PoolSize))
	}
	for name, v := range map[string]float64{
		"audio.music_fade":      c.Audio.MusicFade,
		"audio.music_stop_fade": c.Audio.MusicStopFade,
		"audio.ambience_fade":   c.Audio.AmbienceFade,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}
	if c.Audio.TickRate < 1 {
		errs = append(errs, fmt.Errorf("audio.tick_rate must be at least 1, got %d", c.Audio.TickRate))
	}
	if _, err := language.Parse(c.Audio.Language); err != nil {
		errs = append(errs, fmt.Errorf("audio.language: %w", err))
	}
	if _, err := language.Parse(c.Audio.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("audio.default_language: %w", err))
	}
	switch c.Output.Backend {
	case BackendOto, BackendNull:
	default:
		errs = append(errs, fmt.Errorf("output.backend must be %q or %q, got %q", BackendOto, BackendNull, c.Output.Backend))
	}
	if c.Output.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("output.sample_rate must be positive, got %d", c.Output.SampleRate))
	}
	return errors.Join(errs...)
}

func (c *Config) MixerParams() audio.MixerParams {
	return audio.MixerParams{
		Master: c.Mixer.Master,
		Music:  c.Mixer.Music,
		Sounds: c.Mixer.Sounds,
		UI:     c.Mixer.UI,
		VO:     c.Mixer.VO,
	}
}

// TickInterval is the wall-clock period between manager ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(max(c.Audio.TickRate, 1))
}

// ManagerOptions fills the tunables of audio.Options. Collaborators are left
// for the caller to wire.
func (c *Config) ManagerOptions() (audio.Options, error) {
	lang, err := language.Parse(c.Audio.Language)
	if err != nil {
		return audio.Options{}, fmt.Errorf("audio.language: %w", err)
	}
	def, err := language.Parse(c.Audio.DefaultLanguage)
	if err != nil {
		return audio.Options{}, fmt.Errorf("audio.default_language: %w", err)
	}
	return audio.Options{
		Params:          c.MixerParams(),
		PoolSize:        c.Audio.PoolSize,
		MusicFade:       c.Audio.MusicFade,
		MusicStopFade:   c.Audio.MusicStopFade,
		AmbienceFade:    c.Audio.AmbienceFade,
		Language:        lang,
		DefaultLanguage: def,
		MenuMusic:       audio.SoundID(c.Audio.MenuMusic),
		AdMute:          c.Audio.AdMute,
	}, nil
}
