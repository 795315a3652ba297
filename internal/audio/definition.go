package audio

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// SoundID names a logical sound in the catalog.
type SoundID string

// Category classifies a sound definition and decides which player and bus it uses.
type Category int

const (
	CategoryMusic Category = iota
	CategorySFX
	CategoryMeta
	CategoryNotifications
	CategoryGameplayObjects
	CategoryToolsWeapons
	CategoryCharacterFoley
	CategoryCrowdReactions
	CategoryEnvironment
	CategoryUI
	CategoryCharacterVO
	CategoryCommentatorVO
)

var categoryNames = [...]string{
	CategoryMusic:           "music",
	CategorySFX:             "sfx",
	CategoryMeta:            "meta",
	CategoryNotifications:   "notifications",
	CategoryGameplayObjects: "gameplay_objects",
	CategoryToolsWeapons:    "tools_weapons",
	CategoryCharacterFoley:  "character_foley",
	CategoryCrowdReactions:  "crowd_reactions",
	CategoryEnvironment:     "environment",
	CategoryUI:              "ui",
	CategoryCharacterVO:     "character_vo",
	CategoryCommentatorVO:   "commentator_vo",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts the snake_case names produced by String, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// IsVO reports whether the category carries voice-over.
func (c Category) IsVO() bool {
	return c == CategoryCharacterVO || c == CategoryCommentatorVO
}

// Range is a closed [Min, Max] interval drawn uniformly.
type Range struct {
	Min, Max float64
}

// Fixed returns a degenerate range that always draws v.
func Fixed(v float64) Range { return Range{Min: v, Max: v} }

// Clip is a decoded audio asset. Length is in seconds.
type Clip interface {
	Name() string
	Length() float64
}

// ClipVariant is one candidate asset with its own randomization ranges.
type ClipVariant struct {
	Clip   Clip
	Volume Range
	Pitch  Range
}

// Limits configures per-identifier rate limiting.
type Limits struct {
	Enabled      bool
	MaxInstances int
	Cooldown     float64 // seconds
}

// SoundDefinition is the immutable description of a logical sound.
type SoundDefinition struct {
	ID           SoundID
	Category     Category
	Loop         bool
	Spatial      bool
	SpatialBlend float64
	Limits       Limits
	Clips        []ClipVariant
	Localized    map[language.Tag][]ClipVariant

	// Descriptive only.
	Character    string
	Commentator  string
	CanInterrupt bool
}

// HasClips reports whether the definition has at least one plain clip variant.
func (d *SoundDefinition) HasClips() bool {
	return d != nil && len(d.Clips) > 0
}

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float64
}
