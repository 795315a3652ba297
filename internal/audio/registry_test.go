package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_GetOrCreateReuses(t *testing.T) {
	r := NewRegistry[int](&channelFactory{}, OwnerCharacterVO, BusCharacterVO)

	a, created := r.GetOrCreate(1)
	require.True(t, created)
	require.Equal(t, OwnerCharacterVO, a.Owner())
	require.Equal(t, BusCharacterVO, a.Bus)

	again, created := r.GetOrCreate(1)
	require.False(t, created)
	require.Same(t, a, again)

	b, _ := r.GetOrCreate(2)
	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, 2, r.Len())
}

func TestRegistry_RemoveStops(t *testing.T) {
	r := NewRegistry[SoundID](&channelFactory{}, OwnerAmbience, BusAmbience)
	ch, _ := r.GetOrCreate("Rain")
	playing(ch)

	require.True(t, r.Remove("Rain"))
	require.False(t, ch.IsPlaying())
	_, ok := r.Get("Rain")
	require.False(t, ok)
	require.False(t, r.Remove("Rain"))
}

func TestRegistry_ClearAndOrder(t *testing.T) {
	r := NewRegistry[int](&channelFactory{}, OwnerCharacterVO, BusCharacterVO)
	for _, k := range []int{3, 1, 2} {
		ch, _ := r.GetOrCreate(k)
		playing(ch)
	}

	var keys []int
	r.Each(func(k int, _ *Channel) { keys = append(keys, k) })
	require.Equal(t, []int{3, 1, 2}, keys)

	r.Remove(1)
	keys = keys[:0]
	r.Each(func(k int, _ *Channel) { keys = append(keys, k) })
	require.Equal(t, []int{3, 2}, keys)

	r.Clear()
	require.Zero(t, r.Len())
}
