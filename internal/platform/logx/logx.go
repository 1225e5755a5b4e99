// Package logx is the key=value logger shared by every qdev command.
// Diagnostics go to stderr so they never interleave with build output on stdout.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// EnvLevel names the environment variable read by New.
const EnvLevel = "QDEV_LOG_LEVEL"

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type kvLogger struct {
	mu    *sync.Mutex
	lvl   *Level
	scope []string
	lg    *log.Logger
}

// New returns a stderr logger whose level comes from QDEV_LOG_LEVEL.
func New() Logger {
	return NewWithWriter(os.Stderr, ParseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel returns a stderr logger fixed at lvl.
func NewWithLevel(lvl Level) Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	return &kvLogger{
		mu:  &sync.Mutex{},
		lvl: &lvl,
		lg:  log.New(w, "", 0),
	}
}

// Discard drops everything. Handy in tests.
func Discard() Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

// With returns a child logger carrying extra fields. Children share the
// parent's level so a later SetLevel applies to the whole tree.
func (s *kvLogger) With(kv ...any) Logger {
	return &kvLogger{
		mu:    s.mu,
		lvl:   s.lvl,
		scope: append(append([]string{}, s.scope...), kvPairs(kv...)...),
		lg:    s.lg,
	}
}

func (s *kvLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.lvl = lvl
}

func (s *kvLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *kvLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *kvLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *kvLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *kvLogger) log(l Level, tag, msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l < *s.lvl {
		return
	}

	parts := []string{time.Now().Format("15:04:05"), tag}
	if strings.TrimSpace(msg) != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, s.scope...)
	parts = append(parts, kvPairs(kv...)...)
	s.lg.Println(strings.Join(parts, " "))
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%s", kv[i], quote(v)))
	}
	return out
}

// quote wraps values containing spaces so a line stays splittable on " ".
func quote(v any) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// ParseLevel maps a level name to a Level; unknown names mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
