package catalog

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"soundcore/internal/audio"
)

// Problem is one authoring rule a definition breaks.
type Problem struct {
	ID  audio.SoundID
	Msg string
}

func (p Problem) String() string { return fmt.Sprintf("%s: %s", p.ID, p.Msg) }

func canLoop(c audio.Category) bool {
	switch c {
	case audio.CategoryMusic, audio.CategoryEnvironment, audio.CategoryCrowdReactions:
		return true
	}
	return false
}

func canBeSpatial(c audio.Category) bool {
	switch c {
	case audio.CategoryGameplayObjects, audio.CategoryToolsWeapons, audio.CategoryCharacterFoley,
		audio.CategoryCharacterVO, audio.CategoryCrowdReactions, audio.CategoryEnvironment:
		return true
	}
	return false
}

func canLimit(c audio.Category) bool {
	switch c {
	case audio.CategoryGameplayObjects, audio.CategoryToolsWeapons, audio.CategoryCharacterFoley,
		audio.CategoryNotifications, audio.CategoryCrowdReactions, audio.CategoryEnvironment:
		return true
	}
	return false
}

// Validate checks a single definition. A nil definition is one problem.
func Validate(def *audio.SoundDefinition) []Problem {
	if def == nil {
		return []Problem{{Msg: "nil definition"}}
	}
	var out []Problem
	add := func(format string, args ...any) {
		out = append(out, Problem{ID: def.ID, Msg: fmt.Sprintf(format, args...)})
	}

	c := def.Category
	if def.ID == "" {
		add("empty id")
	}
	if def.Loop && !canLoop(c) {
		add("%s sounds cannot loop", c)
	}
	if def.Spatial && !canBeSpatial(c) {
		add("%s sounds cannot be spatial", c)
	}
	if def.SpatialBlend < 0 || def.SpatialBlend > 1 {
		add("spatial blend %g outside [0,1]", def.SpatialBlend)
	}
	if def.Limits.Enabled {
		if !canLimit(c) {
			add("%s sounds cannot be rate limited", c)
		}
		if def.Limits.MaxInstances < 1 {
			add("max instances %d must be at least 1", def.Limits.MaxInstances)
		}
		if def.Limits.Cooldown < 0 {
			add("cooldown %g must not be negative", def.Limits.Cooldown)
		}
	}
	if def.Character != "" && c != audio.CategoryCharacterVO {
		add("character is only used by character_vo")
	}
	if (def.Commentator != "" || def.CanInterrupt) && c != audio.CategoryCommentatorVO {
		add("commentator settings are only used by commentator_vo")
	}

	if c == audio.CategoryCharacterVO {
		n := 0
		tags := make([]language.Tag, 0, len(def.Localized))
		for tag, vs := range def.Localized {
			n += len(vs)
			tags = append(tags, tag)
		}
		if n == 0 {
			add("character_vo needs localized clips")
		}
		sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
		for _, tag := range tags {
			checkVariants(def.Localized[tag], "localized "+tag.String(), add)
		}
		if len(def.Clips) > 0 {
			add("character_vo plays localized clips; plain clips are ignored")
		}
	} else {
		if len(def.Clips) == 0 {
			add("no clips")
		}
		checkVariants(def.Clips, "clip", add)
	}
	return out
}

func checkVariants(vs []audio.ClipVariant, label string, add func(string, ...any)) {
	for i, v := range vs {
		if v.Clip == nil {
			add("%s #%d has no clip", label, i)
		}
		if v.Volume.Min > v.Volume.Max {
			add("%s #%d volume min %g > max %g", label, i, v.Volume.Min, v.Volume.Max)
		}
		if v.Volume.Min < 0 || v.Volume.Max > 1 {
			add("%s #%d volume outside [0,1]", label, i)
		}
		if v.Pitch.Min > v.Pitch.Max {
			add("%s #%d pitch min %g > max %g", label, i, v.Pitch.Min, v.Pitch.Max)
		}
		if v.Pitch.Min <= 0 {
			add("%s #%d pitch must be positive", label, i)
		}
	}
}

// ValidateCatalog checks every definition, ordered by id.
func ValidateCatalog(cat audio.MapCatalog) []Problem {
	ids := make([]string, 0, len(cat))
	for id := range cat {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	var out []Problem
	for _, id := range ids {
		def := cat[audio.SoundID(id)]
		if def != nil && def.ID != audio.SoundID(id) {
			out = append(out, Problem{ID: audio.SoundID(id), Msg: fmt.Sprintf("registered under a different id %q", def.ID)})
		}
		problems := Validate(def)
		for i := range problems {
			if problems[i].ID == "" {
				problems[i].ID = audio.SoundID(id)
			}
		}
		out = append(out, problems...)
	}
	return out
}
