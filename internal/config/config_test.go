package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"soundcore/internal/audio"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, audio.DefaultPoolSize, cfg.Audio.PoolSize)
	require.Equal(t, audio.DefaultMusicFade, cfg.Audio.MusicFade)
	require.Equal(t, audio.DefaultMusicStopFade, cfg.Audio.MusicStopFade)
	require.Equal(t, "MusicMenu", cfg.Audio.MenuMusic)
	require.True(t, cfg.Audio.AdMute)
	require.Equal(t, BackendOto, cfg.Output.Backend)
	require.Equal(t, 44100, cfg.Output.SampleRate)
	require.Equal(t, audio.DefaultMixerParams(), cfg.MixerParams())
	require.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soundcore.yaml")
	content := `log_level: debug
audio:
  pool_size: 16
  language: de
  menu_music: Lobby
  ad_mute: false
mixer:
  sounds: SFXVolume
output:
  backend: "null"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 16, cfg.Audio.PoolSize)
	require.Equal(t, "de", cfg.Audio.Language)
	require.Equal(t, "en", cfg.Audio.DefaultLanguage, "unset keys keep defaults")
	require.False(t, cfg.Audio.AdMute)
	require.Equal(t, "SFXVolume", cfg.Mixer.Sounds)
	require.Equal(t, "MusicVolume", cfg.Mixer.Music)
	require.Equal(t, BackendNull, cfg.Output.Backend)

	opts, err := cfg.ManagerOptions()
	require.NoError(t, err)
	require.Equal(t, language.German, opts.Language)
	require.Equal(t, language.English, opts.DefaultLanguage)
	require.Equal(t, audio.SoundID("Lobby"), opts.MenuMusic)
	require.Equal(t, 16, opts.PoolSize)
	require.Equal(t, "SFXVolume", opts.Params.Sounds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOUNDCORE_AUDIO_POOL_SIZE", "8")
	t.Setenv("SOUNDCORE_OUTPUT_BACKEND", "null")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Audio.PoolSize)
	require.Equal(t, BackendNull, cfg.Output.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `audio:
  pool_size: 0
  music_fade: -1
  language: "not a language!"
output:
  backend: alsa
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "audio.pool_size")
	require.Contains(t, msg, "audio.music_fade")
	require.Contains(t, msg, "audio.language")
	require.Contains(t, msg, "output.backend")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	require.NotPanics(t, func() { Default() })
}

func TestDefault_IgnoresEnvironment(t *testing.T) {
	t.Setenv("SOUNDCORE_AUDIO_POOL_SIZE", "0")
	t.Setenv("SOUNDCORE_OUTPUT_BACKEND", "alsa")

	var cfg *Config
	require.NotPanics(t, func() { cfg = Default() })
	require.Equal(t, audio.DefaultPoolSize, cfg.Audio.PoolSize)
	require.Equal(t, BackendOto, cfg.Output.Backend)

	_, err := Load("")
	require.Error(t, err, "Load still applies the environment")
}

func TestLoad_ZeroFadeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	content := `audio:
  music_fade: 0
  ambience_fade: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "audio.music_fade must be positive")
	require.Contains(t, err.Error(), "audio.ambience_fade must be positive")
	require.NotContains(t, err.Error(), "audio.music_stop_fade")
}
