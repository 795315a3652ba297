// Package prefs persists the volume sliders as a small JSON file.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"soundcore/internal/audio"
	"soundcore/internal/log"
)

var _ audio.Preferences = (*File)(nil)

// File is a Preferences store backed by a JSON object of float values.
// Every change is written through immediately.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]float64
}

// Open loads path if it exists. A missing file starts empty.
func Open(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]float64)}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Float(key string, def float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[key]; ok {
		return v
	}
	return def
}

// SetFloat stores v and rewrites the file. Write failures are logged; the
// in-memory value is kept either way.
func (f *File) SetFloat(key string, v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = v
	if err := f.save(); err != nil {
		log.Error(log.CatConfig, "Failed to save preferences", "path", f.path, "err", err)
	}
}

func (f *File) save() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "prefs.*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename preferences: %w", err)
	}
	return nil
}
