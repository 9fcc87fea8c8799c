package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured record. Attribute keys inside groups are
// prefixed with the group name ("group.key").
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that keeps every record at every level.
// Loggers derived with With or WithGroup write into the same capture.
type LogCapture struct {
	sink   *captureSink
	attrs  []slog.Attr
	prefix string
	t      *testing.T
}

type captureSink struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger and the capture behind it. Records are
// echoed to t.Log so failing tests show what was logged.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogCapture) {
	c := &LogCapture{sink: &captureSink{}, t: t}
	return slog.New(c), c
}

func (c *LogCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.attrs)+r.NumAttrs())
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[c.prefix+a.Key] = a.Value.Any()
		return true
	})

	c.sink.mu.Lock()
	c.sink.records = append(c.sink.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.sink.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *c
	next.attrs = append([]slog.Attr(nil), c.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: c.prefix + a.Key, Value: a.Value})
	}
	return &next
}

func (c *LogCapture) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	next := *c
	next.prefix = c.prefix + name + "."
	return &next
}

// Records returns a copy of everything captured so far
func (c *LogCapture) Records() []LogRecord {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	return append([]LogRecord(nil), c.sink.records...)
}

// AtLevel returns the records logged at exactly level
func (c *LogCapture) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range c.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// CountMessage counts records at level whose message contains substr
func (c *LogCapture) CountMessage(level slog.Level, substr string) int {
	n := 0
	for _, r := range c.AtLevel(level) {
		if strings.Contains(r.Message, substr) {
			n++
		}
	}
	return n
}

// ContainsMessage reports whether any record's message contains substr
func (c *LogCapture) ContainsMessage(substr string) bool {
	for _, r := range c.Records() {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any record carries key with exactly value
func (c *LogCapture) ContainsAttr(key string, value any) bool {
	for _, r := range c.Records() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

func (c *LogCapture) Count() int {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	return len(c.sink.records)
}

func (c *LogCapture) Clear() {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	c.sink.records = nil
}

// AssertLogContains fails t unless a record at level contains message
func AssertLogContains(t *testing.T, c *LogCapture, level slog.Level, message string) {
	t.Helper()
	if c.CountMessage(level, message) == 0 {
		t.Errorf("no %s record containing %q; captured: %s", level, message, summarize(c.Records()))
	}
}

// AssertLogCount fails t unless exactly n records at level contain message
func AssertLogCount(t *testing.T, c *LogCapture, level slog.Level, message string, n int) {
	t.Helper()
	if got := c.CountMessage(level, message); got != n {
		t.Errorf("%d %s records containing %q, want %d; captured: %s", got, level, message, n, summarize(c.Records()))
	}
}

// AssertLogAttr fails t unless some record carries key=value
func AssertLogAttr(t *testing.T, c *LogCapture, key string, value any) {
	t.Helper()
	if !c.ContainsAttr(key, value) {
		t.Errorf("no record with %s=%v; captured: %s", key, value, summarize(c.Records()))
	}
}

// AssertNoErrors fails t if anything was logged at ERROR
func AssertNoErrors(t *testing.T, c *LogCapture) {
	t.Helper()
	if errs := c.AtLevel(slog.LevelError); len(errs) > 0 {
		t.Errorf("unexpected error records: %s", summarize(errs))
	}
}

func summarize(records []LogRecord) string {
	msgs := make([]string, len(records))
	for i, r := range records {
		msgs[i] = r.Level.String() + " " + r.Message
	}
	return "[" + strings.Join(msgs, "; ") + "]"
}
