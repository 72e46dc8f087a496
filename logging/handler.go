// Package logging provides the diagnostic output used by the game.
//
// Diagnostics are best-effort: a handler that cannot write drops the record
// and carries on, and a discarded logger must never change how the game runs.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Options configures a LineHandler.
type Options struct {
	Level     slog.Leveler
	AddSource bool
	// Indent pretty-prints each record across several lines.
	Indent bool
}

// LineHandler is a slog.Handler that writes one JSON object per record.
// Write failures are counted and swallowed.
type LineHandler struct {
	w       io.Writer
	mu      *sync.Mutex
	dropped *atomic.Int64
	opts    Options

	attrs  []groupedAttr
	groups []string
}

// groupedAttr remembers which groups were open when an attr was added.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewLineHandler(w io.Writer, opts *Options) *LineHandler {
	h := &LineHandler{
		w:       w,
		mu:      &sync.Mutex{},
		dropped: &atomic.Int64{},
	}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 6)

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	if h.opts.AddSource {
		payload["source"] = sourceFromPC(r.PC)
	}

	for _, ga := range h.attrs {
		addAttr(payload, ga.groups, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, h.groups, a)
		return true
	})

	var b []byte
	var err error
	if h.opts.Indent {
		b, err = json.MarshalIndent(payload, "", "  ")
	} else {
		b, err = json.Marshal(payload)
	}
	if err != nil {
		b = []byte("{\"time\":" + strconv.Quote(payload["time"].(string)) + ",\"level\":" + strconv.Quote(r.Level.String()) + ",\"msg\":" + strconv.Quote(r.Message) + "}")
	}

	h.mu.Lock()
	_, err = h.w.Write(append(b, '\n'))
	h.mu.Unlock()
	if err != nil {
		h.dropped.Add(1)
	}
	return nil
}

// Dropped returns how many records could not be written.
func (h *LineHandler) Dropped() int64 {
	return h.dropped.Load()
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]groupedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// New returns a logger writing JSON lines to w, tagged with a fresh run id.
func New(w io.Writer, opts *Options) *slog.Logger {
	return slog.New(NewLineHandler(w, opts)).With("run", uuid.NewString())
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

func addAttr(root map[string]any, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Key == "" && attr.Value.Kind() != slog.KindGroup {
		return
	}

	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}
	addAttrToMap(dst, attr)
}

func addAttrToMap(dst map[string]any, attr slog.Attr) {
	v := attr.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		// An unnamed group inlines its members.
		child := dst
		if attr.Key != "" {
			child = map[string]any{}
			dst[attr.Key] = child
		}
		for _, ga := range v.Group() {
			if ga.Key != "" {
				addAttrToMap(child, ga)
			}
		}
		return
	}

	dst[attr.Key] = valueToAny(v)
}

func valueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(interface{ String() string }); ok {
			return s.String()
		}
		return v.Any()
	default:
		return v.String()
	}
}

func sourceFromPC(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	file := f.File
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(f.Line)
}
