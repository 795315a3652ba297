package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMusic() (*MusicPlayer, *Fader) {
	fader := NewFader()
	return NewMusicPlayer(&channelFactory{}, fader, NewRand(7)), fader
}

func TestMusicPlayer_AlternatesTargets(t *testing.T) {
	m, _ := newTestMusic()
	a, b := m.Channels()
	def := &SoundDefinition{ID: "Theme", Category: CategoryMusic, Loop: true, Clips: []ClipVariant{variant("theme", 60, 0.5)}}

	m.Play(def, 1)
	require.Same(t, a, m.Active())
	m.Play(def, 1)
	require.Same(t, b, m.Active())
	m.Play(def, 1)
	require.Same(t, a, m.Active())
}

func TestMusicPlayer_Crossfade(t *testing.T) {
	m, fader := newTestMusic()
	a, b := m.Channels()
	menu := &SoundDefinition{ID: "Menu", Category: CategoryMusic, Loop: true, Clips: []ClipVariant{variant("menu", 60, 0.5)}}
	game := &SoundDefinition{ID: "Game", Category: CategoryMusic, Loop: true, Clips: []ClipVariant{variant("game", 60, 0.8)}}

	require.NotNil(t, m.Play(menu, 1))
	fader.Update(1)
	require.True(t, a.IsPlaying())
	require.Equal(t, 0.5, a.Volume)

	require.NotNil(t, m.Play(game, 1))
	require.Equal(t, "game", b.Clip().Name())
	require.True(t, b.Loop)

	fader.Update(0.5)
	require.InDelta(t, 0.25, a.Volume, 1e-9)
	require.InDelta(t, 0.4, b.Volume, 1e-9)

	fader.Update(0.5)
	require.Equal(t, Paused, a.State(), "outgoing is paused, not stopped")
	require.Equal(t, 0.0, a.Volume)
	require.True(t, b.IsPlaying())
	require.Equal(t, 0.8, b.Volume)
}

func TestMusicPlayer_NewPlayOverridesFade(t *testing.T) {
	m, fader := newTestMusic()
	a, _ := m.Channels()
	def := &SoundDefinition{ID: "Theme", Category: CategoryMusic, Clips: []ClipVariant{variant("theme", 60, 1)}}

	m.Play(def, 2)
	fader.Update(0.5)
	firstTask, _ := fader.Active(a)

	m.Play(def, 2)
	m.Play(def, 2)
	task, ok := fader.Active(a)
	require.True(t, ok)
	require.NotSame(t, firstTask, task)
	require.True(t, task.FadeIn)
	require.Zero(t, task.Elapsed)
}

func TestMusicPlayer_Stop(t *testing.T) {
	m, fader := newTestMusic()
	a, b := m.Channels()
	def := &SoundDefinition{ID: "Theme", Category: CategoryMusic, Clips: []ClipVariant{variant("theme", 60, 1)}}

	m.Play(def, 0.5)
	fader.Update(0.5)
	m.Stop(0.5)
	fader.Update(0.25)
	require.InDelta(t, 0.5, a.Volume, 1e-9)
	fader.Update(0.25)
	require.False(t, a.IsPlaying())
	require.False(t, b.IsPlaying())
}

func TestMusicPlayer_NoClipStillToggles(t *testing.T) {
	m, _ := newTestMusic()
	def := &SoundDefinition{ID: "Empty", Category: CategoryMusic}
	require.Nil(t, m.Play(def, 1))
	require.True(t, m.toggle)
}
