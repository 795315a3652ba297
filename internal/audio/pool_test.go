package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelPool_RoundRobin(t *testing.T) {
	p := NewChannelPool(&channelFactory{}, 3, BusSFX)
	chs := p.Channels()

	require.Same(t, chs[0], p.Acquire())
	require.Same(t, chs[1], p.Acquire())
	require.Same(t, chs[2], p.Acquire())
	require.Same(t, chs[0], p.Acquire(), "cursor wraps")
}

func TestChannelPool_SkipsPlaying(t *testing.T) {
	p := NewChannelPool(&channelFactory{}, 4, BusSFX)
	chs := p.Channels()
	playing(chs[0])
	playing(chs[1])

	got := p.Acquire()
	require.Same(t, chs[2], got)
	require.False(t, got.IsPlaying())
	require.Zero(t, p.Steals())
}

func TestChannelPool_NeverReturnsPlayingUnlessFull(t *testing.T) {
	p := NewChannelPool(&channelFactory{}, 8, BusSFX)
	for i := 0; i < 8; i++ {
		ch := p.Acquire()
		require.False(t, ch.IsPlaying(), "acquire %d", i)
		playing(ch)
	}
	require.Equal(t, 8, p.Playing())
	require.Zero(t, p.Steals())
}

func TestChannelPool_StealWhenFull(t *testing.T) {
	p := NewChannelPool(&channelFactory{}, 4, BusSFX)
	for _, ch := range p.Channels() {
		playing(ch)
	}
	cursor := p.Channels()[p.next]

	got := p.Acquire()
	require.Same(t, cursor, got)
	require.Equal(t, Stopped, got.State())
	require.Equal(t, 3, p.Playing(), "exactly one channel stopped")
	require.Equal(t, 1, p.Steals())
}

func TestChannelPool_MinimumSize(t *testing.T) {
	p := NewChannelPool(&channelFactory{}, 0, BusSFX)
	require.Equal(t, 1, p.Len())
	require.NotNil(t, p.Acquire())
}

func TestChannel_AdvanceStopsOneShot(t *testing.T) {
	ch := newChannel(1, OwnerSFX, BusSFX, false)
	v := variant("shot", 0.5, 1)
	ch.Bind(&v, &SoundDefinition{}, NewRand(1))
	ch.Play()

	ch.advance(0.25)
	require.True(t, ch.IsPlaying())
	ch.advance(0.25)
	require.False(t, ch.IsPlaying())
}

func TestChannel_AdvanceLoops(t *testing.T) {
	ch := newChannel(1, OwnerAmbience, BusAmbience, true)
	v := variant("wind", 1, 1)
	ch.Bind(&v, &SoundDefinition{Loop: true}, NewRand(1))
	ch.Play()

	ch.advance(2.5)
	require.True(t, ch.IsPlaying())
	require.InDelta(t, 0.5, ch.Cursor(), 1e-9)
}

func TestChannel_PlayWithoutClipStaysStopped(t *testing.T) {
	ch := newChannel(1, OwnerSFX, BusSFX, false)
	ch.Play()
	require.Equal(t, Stopped, ch.State())
}
