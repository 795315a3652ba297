package audio

// FadeTask is an in-flight linear volume ramp on one channel.
type FadeTask struct {
	Channel    *Channel
	From, To   float64
	Duration   float64
	Elapsed    float64
	FadeIn     bool
	OnComplete func()
}

// Fader drives volume ramps from unscaled time. One ramp per channel; a new
// ramp replaces the old one and the old completion never fires.
type Fader struct {
	tasks map[*Channel]*FadeTask
	order []*FadeTask
}

func NewFader() *Fader {
	return &Fader{tasks: make(map[*Channel]*FadeTask)}
}

// Fade starts a ramp on ch. Fading in ramps 0 to target and starts playback
// if the channel is not playing; fading out ramps the current volume to 0 and
// pauses the channel when done.
func (f *Fader) Fade(ch *Channel, fadeIn bool, target, duration float64, onComplete func()) *FadeTask {
	if ch == nil {
		return nil
	}
	from, to := ch.Volume, 0.0
	if fadeIn {
		from, to = 0, clampUnit(target)
		if !ch.IsPlaying() {
			ch.Play()
		}
	}
	f.Cancel(ch)
	ch.Volume = from
	task := &FadeTask{
		Channel:    ch,
		From:       from,
		To:         to,
		Duration:   duration,
		FadeIn:     fadeIn,
		OnComplete: onComplete,
	}
	f.tasks[ch] = task
	f.order = append(f.order, task)
	return task
}

// Cancel drops the ramp on ch, if any, without completing it.
func (f *Fader) Cancel(ch *Channel) bool {
	task, ok := f.tasks[ch]
	if !ok {
		return false
	}
	delete(f.tasks, ch)
	for i, t := range f.order {
		if t == task {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the ramp currently driving ch.
func (f *Fader) Active(ch *Channel) (*FadeTask, bool) {
	task, ok := f.tasks[ch]
	return task, ok
}

func (f *Fader) Len() int { return len(f.order) }

// Update advances every ramp by dt seconds and completes the finished ones.
func (f *Fader) Update(dt float64) {
	if len(f.order) == 0 {
		return
	}
	if dt < 0 {
		dt = 0
	}
	tasks := append([]*FadeTask(nil), f.order...)
	for _, task := range tasks {
		if f.tasks[task.Channel] != task {
			continue // replaced by a completion callback earlier in this pass
		}
		task.Elapsed += dt
		progress := 1.0
		if task.Duration > 0 {
			progress = clampF(task.Elapsed/task.Duration, 0, 1)
		}
		task.Channel.Volume = task.From + (task.To-task.From)*progress
		if progress < 1 {
			continue
		}
		f.Cancel(task.Channel)
		task.Channel.Volume = task.To
		if !task.FadeIn {
			task.Channel.Pause()
		}
		if task.OnComplete != nil {
			task.OnComplete()
		}
	}
}
