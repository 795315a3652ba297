package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_UnlimitedAlwaysAdmits(t *testing.T) {
	l := NewRateLimiter(&Scheduler{})
	def := &SoundDefinition{ID: "Click", Limits: Limits{Enabled: false, MaxInstances: 1, Cooldown: 10}}

	for i := 0; i < 100; i++ {
		require.True(t, l.TryAdmit(def.ID, def, 0))
	}
	_, ok := l.State(def.ID)
	require.False(t, ok, "unlimited sounds leave no state")
}

func TestRateLimiter_Cooldown(t *testing.T) {
	l := NewRateLimiter(&Scheduler{})
	def := &SoundDefinition{ID: "Hit", Limits: Limits{Enabled: true, MaxInstances: 10, Cooldown: 0.5}}

	require.True(t, l.TryAdmit(def.ID, def, 1.0))
	require.False(t, l.TryAdmit(def.ID, def, 1.25), "inside cooldown")
	require.True(t, l.TryAdmit(def.ID, def, 1.5), "exactly at cooldown")

	st, ok := l.State(def.ID)
	require.True(t, ok)
	require.Equal(t, 1.5, st.LastPlay)
	require.Equal(t, 2, st.Active)
}

func TestRateLimiter_MaxInstancesUntilExpiry(t *testing.T) {
	sched := &Scheduler{}
	l := NewRateLimiter(sched)
	def := &SoundDefinition{ID: "Coin", Limits: Limits{Enabled: true, MaxInstances: 2}}

	require.True(t, l.TryAdmit(def.ID, def, 0))
	l.Hold(def.ID, 0, 1.0)
	require.True(t, l.TryAdmit(def.ID, def, 0))
	l.Hold(def.ID, 0, 2.0)
	require.False(t, l.TryAdmit(def.ID, def, 0))

	sched.Drain(0.5)
	require.False(t, l.TryAdmit(def.ID, def, 0.5))

	sched.Drain(1.0)
	require.True(t, l.TryAdmit(def.ID, def, 1.0))
}

func TestRateLimiter_ReleaseClampsAtZero(t *testing.T) {
	sched := &Scheduler{}
	l := NewRateLimiter(sched)
	def := &SoundDefinition{ID: "Pop", Limits: Limits{Enabled: true, MaxInstances: 1}}

	require.True(t, l.TryAdmit(def.ID, def, 0))
	l.Hold(def.ID, 0, 0)
	l.Hold(def.ID, 0, 0)
	sched.Drain(0)

	st, _ := l.State(def.ID)
	require.Equal(t, 0, st.Active)
}

func TestRateLimiter_HoldUnknownIsNoop(t *testing.T) {
	sched := &Scheduler{}
	l := NewRateLimiter(sched)
	l.Hold("Nope", 0, 1)
	require.Zero(t, sched.Len())
}
