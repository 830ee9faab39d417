// Package audit maintains the append-only trail of every gateway attempt.
// Writes never surface errors to the caller: a broken audit sink must not
// break the API path, so failures are logged and swallowed.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry types written by the gateway and the fallback resolver.
const (
	TypeAPICall      = "api_call"
	TypeFallbackMiss = "fallback_miss"
)

// Entry is one immutable audit record.
type Entry struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	Endpoint         string    `json:"endpoint"`
	EstimatedCostUSD float64   `json:"estimated_cost_usd"`
	OK               bool      `json:"ok"`
	LatencyMs        int64     `json:"latency_ms"`
	Error            string    `json:"error,omitempty"`
	Note             string    `json:"note,omitempty"`
}

// Logger is an append-only audit sink.
type Logger interface {
	Write(entry Entry)
}

// stamp fills in the generated fields of an entry before it is persisted.
func stamp(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

type multiLogger struct {
	sinks []Logger
}

// Multi fans every entry out to all given sinks. Entries share one ID and
// timestamp across sinks.
func Multi(sinks ...Logger) Logger {
	return &multiLogger{sinks: sinks}
}

func (m *multiLogger) Write(entry Entry) {
	stamp(&entry)
	for _, s := range m.sinks {
		s.Write(entry)
	}
}

// Nop discards all entries. Used where no sink is configured.
type Nop struct{}

func (Nop) Write(Entry) {}
