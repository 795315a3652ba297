package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"soundcore/internal/asset"
	"soundcore/internal/audio"
	"soundcore/internal/catalog"
	"soundcore/internal/config"
	"soundcore/internal/prefs"
)

const testCatalog = `
sounds:
  - id: MusicMenu
    type: music
    loop: true
    clips:
      - clip: synth:drone
  - id: CrateBreak
    type: gameplay_objects
    spatial: true
    clips:
      - clip: synth:boom
  - id: Wind
    type: environment
    loop: true
    clips:
      - clip: synth:noise
  - id: Greeting
    type: character_vo
    localized:
      en:
        - clip: synth:chime
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testCat(t *testing.T) audio.MapCatalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog), asset.NewBank("", 8000))
	require.NoError(t, err)
	return cat
}

func nullConfig() *config.Config {
	c := config.Default()
	c.Output.Backend = config.BackendNull
	c.Output.SampleRate = 8000
	return c
}

func TestCompileScript_SortsAndEnds(t *testing.T) {
	tl, err := compileScript(strings.NewReader(`
duration: 0.5
events:
  - {at: 2, event: play, sound: CrateBreak, position: [1, 0, 0]}
  - {at: 0, event: ambience, sound: Wind}
  - {at: 1, event: volume, group: music, value: 0.5}
  - {at: 1.5, event: game_state, state: minigame_entered}
  - {at: 1.5, event: language, language: pt-BR}
`), testCat(t), 1)
	require.NoError(t, err)
	require.Len(t, tl.cues, 5)
	require.Equal(t, "ambience", tl.cues[0].name)
	require.Equal(t, "volume", tl.cues[1].name)
	require.Equal(t, "game_state", tl.cues[2].name)
	require.Equal(t, "language", tl.cues[3].name)
	require.Equal(t, "play", tl.cues[4].name)
	require.InDelta(t, 2.5, tl.end, 1e-9)
}

func TestCompileScript_DefaultTail(t *testing.T) {
	tl, err := compileScript(strings.NewReader(`events: [{at: 3, event: ad, playing: true}]`), testCat(t), 1)
	require.NoError(t, err)
	require.InDelta(t, 3+DefaultTail, tl.end, 1e-9)

	tl, err = compileScript(strings.NewReader(""), testCat(t), 1)
	require.NoError(t, err)
	require.Empty(t, tl.cues)
	require.InDelta(t, DefaultTail, tl.end, 1e-9)
}

func TestCompileScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown event", `events: [{event: explode}]`, "unknown event"},
		{"unknown sound", `events: [{event: play, sound: Nope}]`, "unknown sound"},
		{"missing sound", `events: [{event: ambience}]`, "missing sound"},
		{"short position", `events: [{event: play, sound: CrateBreak, position: [1, 2]}]`, "position needs 3 values"},
		{"bad group", `events: [{event: volume, group: bass}]`, "bass"},
		{"bad state", `events: [{event: game_state, state: paused}]`, "unknown game state"},
		{"bad language", `events: [{event: language, language: "!!"}]`, "language"},
		{"negative time", `events: [{at: -1, event: ad}]`, "negative time"},
		{"negative duration", `duration: -2`, "negative duration"},
		{"unknown field", `events: [{event: ad, volume: 3}]`, "parse script"},
	}
	cat := testCat(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileScript(strings.NewReader(tt.doc), cat, 1)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunPlay_NullBackend(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "sounds.yaml", testCatalog)
	scriptPath := writeFile(t, dir, "script.yaml", `
duration: 0.5
events:
  - {at: 0, event: play, sound: CrateBreak}
  - {at: 0.25, event: volume, group: music, value: 0.5}
`)

	var out bytes.Buffer
	err := runPlay(context.Background(), &out, nullConfig(), catPath, scriptPath, playFlags{seed: 7})
	require.NoError(t, err)
	require.Equal(t, "30 ticks, 2 events, 0 pool steals, peak 1 voice\n", out.String())
}

func TestRunPlay_PersistsVolumes(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "sounds.yaml", testCatalog)
	scriptPath := writeFile(t, dir, "script.yaml", `
duration: 0
events:
  - {at: 0, event: volume, group: music, value: 0.25}
`)
	c := nullConfig()
	c.Prefs.Path = filepath.Join(dir, "state", "prefs.json")

	var out bytes.Buffer
	require.NoError(t, runPlay(context.Background(), &out, c, catPath, scriptPath, playFlags{seed: 1}))

	store, err := prefs.Open(c.Prefs.Path)
	require.NoError(t, err)
	require.InDelta(t, 0.25, store.Float(audio.PrefMusicVolume, 1), 1e-9)
}

func TestRunPlay_Canceled(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "sounds.yaml", testCatalog)
	scriptPath := writeFile(t, dir, "script.yaml", `events: [{at: 5, event: ad, playing: true}]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := runPlay(ctx, &out, nullConfig(), catPath, scriptPath, playFlags{seed: 1})
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, strings.HasPrefix(out.String(), "0 ticks"))
}

func TestRunPlay_BadInputs(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "sounds.yaml", testCatalog)
	badScript := writeFile(t, dir, "bad.yaml", `events: [{event: play, sound: Missing}]`)

	err := runPlay(context.Background(), &bytes.Buffer{}, nullConfig(), filepath.Join(dir, "none.yaml"), badScript, playFlags{})
	require.ErrorIs(t, err, os.ErrNotExist)

	err = runPlay(context.Background(), &bytes.Buffer{}, nullConfig(), catPath, badScript, playFlags{})
	require.ErrorIs(t, err, errBadScript)
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.yaml", testCatalog)

	var out bytes.Buffer
	require.NoError(t, runValidate(&out, clean, 8000))
	require.Contains(t, out.String(), "4 sounds, 4 clips")

	broken := writeFile(t, dir, "broken.yaml", `
sounds:
  - id: Crate
    type: gameplay_objects
    loop: true
    clips:
      - clip: synth:boom
`)
	out.Reset()
	err := runValidate(&out, broken, 8000)
	require.EqualError(t, err, "1 problem")
	require.Contains(t, out.String(), "Crate:")
}

func TestRunClips(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runClips(&out, 8000))
	for _, name := range asset.SynthNames() {
		require.Contains(t, out.String(), asset.SynthPrefix+name)
	}
}
