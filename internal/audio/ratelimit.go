package audio

// RateLimitState is the per-identifier limiter bookkeeping.
type RateLimitState struct {
	LastPlay float64
	Active   int
}

// RateLimiter gates limited sounds by cooldown and concurrent instance count.
// Entries are created on first limited play and live for the process.
type RateLimiter struct {
	sched  *Scheduler
	states map[SoundID]*RateLimitState
}

func NewRateLimiter(sched *Scheduler) *RateLimiter {
	return &RateLimiter{sched: sched, states: make(map[SoundID]*RateLimitState)}
}

// TryAdmit decides whether a play of def may proceed at now. Sounds without
// limits are always admitted and leave no state. An admitted limited play is
// stamped and counted; the caller must follow up with Hold.
func (l *RateLimiter) TryAdmit(id SoundID, def *SoundDefinition, now float64) bool {
	if def == nil || !def.Limits.Enabled {
		return true
	}
	st, ok := l.states[id]
	if ok {
		if now-st.LastPlay < def.Limits.Cooldown {
			return false
		}
		if st.Active >= def.Limits.MaxInstances {
			return false
		}
	} else {
		st = &RateLimitState{}
		l.states[id] = st
	}
	st.LastPlay = now
	st.Active++
	return true
}

// Hold schedules the release of one admitted instance of id after seconds.
func (l *RateLimiter) Hold(id SoundID, now, seconds float64) {
	if _, ok := l.states[id]; !ok {
		return
	}
	l.sched.After(now, seconds, release{limiter: l, id: id})
}

// State returns a copy of the bookkeeping for id.
func (l *RateLimiter) State(id SoundID) (RateLimitState, bool) {
	st, ok := l.states[id]
	if !ok {
		return RateLimitState{}, false
	}
	return *st, true
}

func (l *RateLimiter) release(id SoundID) {
	st, ok := l.states[id]
	if !ok {
		return
	}
	st.Active--
	if st.Active < 0 {
		st.Active = 0
	}
}

// release is the scheduled instance expiry for one identifier.
type release struct {
	limiter *RateLimiter
	id      SoundID
}

func (r release) Fire() { r.limiter.release(r.id) }
