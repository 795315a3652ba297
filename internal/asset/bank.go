package asset

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"soundcore/internal/log"
)

// Bank resolves clip references and caches the decoded clips. References are
// either SynthPrefix plus a synth name or a file path relative to root.
type Bank struct {
	mu    sync.Mutex
	root  string
	rate  int
	clips map[string]*Clip
}

func NewBank(root string, rate int) *Bank {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Bank{root: root, rate: rate, clips: make(map[string]*Clip)}
}

func (b *Bank) Rate() int { return b.rate }

// Clip returns the clip for ref, loading it on first use.
func (b *Bank) Clip(ref string) (*Clip, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.clips[ref]; ok {
		return c, nil
	}

	var (
		c   *Clip
		err error
	)
	if name, ok := strings.CutPrefix(ref, SynthPrefix); ok {
		c, err = Synthesize(name, b.rate)
	} else {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.root, path)
		}
		c, err = Load(path, b.rate)
	}
	if err != nil {
		return nil, err
	}
	b.clips[ref] = c
	log.Debug(log.CatAsset, "Clip loaded", "ref", ref,
		"length", c.Length(), "size", humanize.IBytes(uint64(c.Bytes())))
	return c, nil
}

// Refs lists the cached references in sorted order.
func (b *Bank) Refs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	refs := make([]string, 0, len(b.clips))
	for ref := range b.clips {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clips)
}

// Bytes is the memory held by every cached clip.
func (b *Bank) Bytes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, c := range b.clips {
		total += c.Bytes()
	}
	return total
}
