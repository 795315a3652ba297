package audio

// Registry maps a stable key to a dedicated, lazily created channel.
type Registry[K comparable] struct {
	factory  *channelFactory
	owner    Owner
	bus      Bus
	channels map[K]*Channel
	order    []K
}

func NewRegistry[K comparable](f *channelFactory, owner Owner, bus Bus) *Registry[K] {
	return &Registry[K]{
		factory:  f,
		owner:    owner,
		bus:      bus,
		channels: make(map[K]*Channel),
	}
}

// GetOrCreate returns the channel for key, creating it on first use.
// created reports whether a new channel was made.
func (r *Registry[K]) GetOrCreate(key K) (ch *Channel, created bool) {
	if ch, ok := r.channels[key]; ok {
		return ch, false
	}
	ch = r.factory.make(r.owner, r.bus, false)
	r.channels[key] = ch
	r.order = append(r.order, key)
	return ch, true
}

func (r *Registry[K]) Get(key K) (*Channel, bool) {
	ch, ok := r.channels[key]
	return ch, ok
}

// Remove stops and forgets the channel for key.
func (r *Registry[K]) Remove(key K) bool {
	ch, ok := r.channels[key]
	if !ok {
		return false
	}
	ch.Stop()
	delete(r.channels, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear stops and forgets every channel.
func (r *Registry[K]) Clear() {
	for _, ch := range r.channels {
		ch.Stop()
	}
	clear(r.channels)
	r.order = r.order[:0]
}

// Each visits channels in creation order.
func (r *Registry[K]) Each(fn func(key K, ch *Channel)) {
	for _, k := range r.order {
		fn(k, r.channels[k])
	}
}

func (r *Registry[K]) Len() int { return len(r.channels) }
