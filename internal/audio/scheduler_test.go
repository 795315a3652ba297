package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduler_OrderByDeadlineThenInsertion(t *testing.T) {
	s := &Scheduler{}
	var got []string
	s.After(0, 2, logAction{&got, "c"})
	s.After(0, 1, logAction{&got, "a"})
	s.After(0, 1, logAction{&got, "b"})

	require.Equal(t, 0, s.Drain(0.5))
	require.Equal(t, 2, s.Drain(1))
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 1, s.Len())

	s.Drain(10)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestScheduler_NegativeDelayFiresNextDrain(t *testing.T) {
	s := &Scheduler{}
	n := 0
	s.After(5, -1, countAction{&n})
	s.Drain(5)
	require.Equal(t, 1, n)
}
