// Package catalog reads sound definitions from YAML and checks them against
// the authoring rules.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"soundcore/internal/asset"
	"soundcore/internal/audio"
	"soundcore/internal/log"
)

// Limits applied when a definition enables limiting without values.
const (
	DefaultMaxInstances = 3
	DefaultCooldown     = 0.05
)

var (
	ErrDuplicateID = errors.New("duplicate sound id")
	ErrMissingID   = errors.New("sound id is empty")
	ErrBadRange    = errors.New("range needs one or two values")
	ErrBadLanguage = errors.New("invalid language tag")
)

type document struct {
	Sounds []soundDoc `yaml:"sounds"`
}

type soundDoc struct {
	ID           string               `yaml:"id"`
	Type         string               `yaml:"type"`
	Loop         bool                 `yaml:"loop,omitempty"`
	Spatial      bool                 `yaml:"spatial,omitempty"`
	SpatialBlend float64              `yaml:"spatial_blend,omitempty"`
	Limits       *limitsDoc           `yaml:"limits,omitempty"`
	Clips        []clipDoc            `yaml:"clips,omitempty"`
	Localized    map[string][]clipDoc `yaml:"localized,omitempty"`
	Character    string               `yaml:"character,omitempty"`
	Commentator  string               `yaml:"commentator,omitempty"`
	CanInterrupt bool                 `yaml:"can_interrupt,omitempty"`
}

type limitsDoc struct {
	Enabled      bool     `yaml:"enabled"`
	MaxInstances *int     `yaml:"max_instances,omitempty"`
	Cooldown     *float64 `yaml:"cooldown,omitempty"`
}

type clipDoc struct {
	Clip   string    `yaml:"clip"`
	Volume []float64 `yaml:"volume,omitempty,flow"`
	Pitch  []float64 `yaml:"pitch,omitempty,flow"`
}

// Load reads the catalog at path. Clip files resolve relative to the
// catalog's directory unless bank is given.
func Load(path string, bank *asset.Bank) (audio.MapCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	if bank == nil {
		bank = asset.NewBank(filepath.Dir(path), asset.DefaultSampleRate)
	}
	cat, err := Decode(f, bank)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info(log.CatCatalog, "Catalog loaded", "path", path, "sounds", len(cat), "clips", bank.Len())
	return cat, nil
}

// Parse is Decode over an in-memory document.
func Parse(data []byte, bank *asset.Bank) (audio.MapCatalog, error) {
	return Decode(bytes.NewReader(data), bank)
}

// Decode builds a catalog from a YAML document, loading every referenced
// clip through bank. A nil bank resolves files against the working directory.
func Decode(r io.Reader, bank *asset.Bank) (audio.MapCatalog, error) {
	if bank == nil {
		bank = asset.NewBank("", asset.DefaultSampleRate)
	}
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := make(audio.MapCatalog, len(doc.Sounds))
	for i, sd := range doc.Sounds {
		if sd.ID == "" {
			return nil, fmt.Errorf("sound #%d: %w", i, ErrMissingID)
		}
		id := audio.SoundID(sd.ID)
		if _, dup := cat[id]; dup {
			return nil, fmt.Errorf("sound %q: %w", sd.ID, ErrDuplicateID)
		}
		def, err := sd.definition(bank)
		if err != nil {
			return nil, fmt.Errorf("sound %q: %w", sd.ID, err)
		}
		cat.Add(def)
	}
	return cat, nil
}

func (sd soundDoc) definition(bank *asset.Bank) (*audio.SoundDefinition, error) {
	category, err := audio.ParseCategory(sd.Type)
	if err != nil {
		return nil, err
	}
	def := &audio.SoundDefinition{
		ID:           audio.SoundID(sd.ID),
		Category:     category,
		Loop:         sd.Loop,
		Spatial:      sd.Spatial,
		SpatialBlend: sd.SpatialBlend,
		Character:    sd.Character,
		Commentator:  sd.Commentator,
		CanInterrupt: sd.CanInterrupt,
	}
	if l := sd.Limits; l != nil {
		def.Limits = audio.Limits{Enabled: l.Enabled, MaxInstances: DefaultMaxInstances, Cooldown: DefaultCooldown}
		if l.MaxInstances != nil {
			def.Limits.MaxInstances = *l.MaxInstances
		}
		if l.Cooldown != nil {
			def.Limits.Cooldown = *l.Cooldown
		}
	}
	if def.Clips, err = variants(sd.Clips, bank); err != nil {
		return nil, err
	}
	if len(sd.Localized) > 0 {
		def.Localized = make(map[language.Tag][]audio.ClipVariant, len(sd.Localized))
		for key, docs := range sd.Localized {
			tag, err := language.Parse(key)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %v", ErrBadLanguage, key, err)
			}
			vs, err := variants(docs, bank)
			if err != nil {
				return nil, fmt.Errorf("language %s: %w", key, err)
			}
			def.Localized[tag] = append(def.Localized[tag], vs...)
		}
	}
	return def, nil
}

func variants(docs []clipDoc, bank *asset.Bank) ([]audio.ClipVariant, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]audio.ClipVariant, 0, len(docs))
	for _, cd := range docs {
		volume, err := parseRange(cd.Volume)
		if err != nil {
			return nil, fmt.Errorf("clip %q volume: %w", cd.Clip, err)
		}
		pitch, err := parseRange(cd.Pitch)
		if err != nil {
			return nil, fmt.Errorf("clip %q pitch: %w", cd.Clip, err)
		}
		v := audio.ClipVariant{Volume: volume, Pitch: pitch}
		if cd.Clip != "" {
			clip, err := bank.Clip(cd.Clip)
			if err != nil {
				return nil, err
			}
			v.Clip = clip
		}
		out = append(out, v)
	}
	return out, nil
}

// parseRange accepts [v] or [min, max]. Missing ranges mean 1.
func parseRange(vals []float64) (audio.Range, error) {
	switch len(vals) {
	case 0:
		return audio.Fixed(1), nil
	case 1:
		return audio.Fixed(vals[0]), nil
	case 2:
		return audio.Range{Min: vals[0], Max: vals[1]}, nil
	}
	return audio.Range{}, fmt.Errorf("%w, got %d", ErrBadRange, len(vals))
}
