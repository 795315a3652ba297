package audio

import "sort"

// Action is a deferred unit of work fired by the Scheduler.
type Action interface {
	Fire()
}

type scheduled struct {
	deadline float64
	seq      uint64
	action   Action
}

// Scheduler holds (deadline, action) pairs against unscaled time and fires
// them from Drain, earliest deadline first, ties in insertion order.
type Scheduler struct {
	queue []scheduled
	seq   uint64
}

// After schedules action to fire once now+delay has been reached.
func (s *Scheduler) After(now, delay float64, action Action) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	item := scheduled{deadline: now + delay, seq: s.seq, action: action}
	i := sort.Search(len(s.queue), func(i int) bool {
		q := s.queue[i]
		return q.deadline > item.deadline || (q.deadline == item.deadline && q.seq > item.seq)
	})
	s.queue = append(s.queue, scheduled{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = item
}

// Drain fires every action whose deadline is <= now and returns how many fired.
// Actions scheduled while draining with a deadline <= now also fire.
func (s *Scheduler) Drain(now float64) int {
	fired := 0
	for len(s.queue) > 0 && s.queue[0].deadline <= now {
		item := s.queue[0]
		s.queue = s.queue[1:]
		item.action.Fire()
		fired++
	}
	return fired
}

func (s *Scheduler) Len() int { return len(s.queue) }
