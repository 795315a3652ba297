// Package log provides categorized structured logging for the sound core.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Category tags a log record with the subsystem that produced it.
type Category string

const (
	CatAudio   Category = "audio"
	CatMixer   Category = "mixer"
	CatCatalog Category = "catalog"
	CatAsset   Category = "asset"
	CatOutput  Category = "output"
	CatConfig  Category = "config"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	limitMu sync.Mutex
	limits  = make(map[string]*rate.Limiter)
)

// Repeated warnings with the same key are let through at most once per
// warnInterval, with a small burst.
const (
	warnInterval = 5 * time.Second
	warnBurst    = 3
)

// Init replaces the package logger. level is one of debug, info, warn, error.
func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	mu.Lock()
	logger = slog.New(h)
	mu.Unlock()
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(cat Category, msg string, kv ...any) {
	current().Debug(msg, append([]any{"cat", string(cat)}, kv...)...)
}

func Info(cat Category, msg string, kv ...any) {
	current().Info(msg, append([]any{"cat", string(cat)}, kv...)...)
}

func Warn(cat Category, msg string, kv ...any) {
	current().Warn(msg, append([]any{"cat", string(cat)}, kv...)...)
}

func Error(cat Category, msg string, kv ...any) {
	current().Error(msg, append([]any{"cat", string(cat)}, kv...)...)
}

// WarnLimited logs a warning unless the same key has been logged too often
// recently. Content errors hit every frame would otherwise flood the log.
func WarnLimited(cat Category, key, msg string, kv ...any) {
	if !allow(string(cat) + "/" + key) {
		return
	}
	Warn(cat, msg, kv...)
}

func allow(key string) bool {
	limitMu.Lock()
	l, ok := limits[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(warnInterval), warnBurst)
		limits[key] = l
	}
	limitMu.Unlock()
	return l.Allow()
}
