package audio

// Catalog resolves sound identifiers to definitions. It is owned by the
// caller and treated as read-only for the life of a Manager.
type Catalog interface {
	Lookup(id SoundID) (*SoundDefinition, bool)
}

// MapCatalog is a Catalog backed by a map.
type MapCatalog map[SoundID]*SoundDefinition

func (c MapCatalog) Lookup(id SoundID) (*SoundDefinition, bool) {
	def, ok := c[id]
	if !ok || def == nil {
		return nil, false
	}
	return def, true
}

// Add registers def under its own ID, replacing any previous entry.
func (c MapCatalog) Add(def *SoundDefinition) {
	c[def.ID] = def
}
