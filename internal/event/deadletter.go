package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/osse101/FactorySim_Go/internal/logger"
)

// DeadLetterSchemaVersion tags every line of the dead-letter log
const DeadLetterSchemaVersion = "1.0"

// DeadLetter is one line of the dead-letter log: an event some handler rejected.
// Read back, Event.Payload is a generic JSON value; DecodePayload turns it
// into the typed payload.
type DeadLetter struct {
	SchemaVersion string    `json:"schema_version"`
	RecordedAt    time.Time `json:"recorded_at"`
	Event         Event     `json:"event"`
	Cause         string    `json:"cause,omitempty"`
}

// DeadLetterWriter appends rejected events to a JSON-lines file
type DeadLetterWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
	now func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it when missing
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter log: %w", err)
	}
	return &DeadLetterWriter{f: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Write appends evt with the error its handlers returned
func (w *DeadLetterWriter) Write(ctx context.Context, evt Event, cause error) error {
	entry := DeadLetter{SchemaVersion: DeadLetterSchemaVersion, Event: evt}
	if cause != nil {
		entry.Cause = cause.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	entry.RecordedAt = w.now().UTC()
	logger.FromContext(ctx).Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "cause", entry.Cause)
	return w.enc.Encode(entry)
}

func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

// ReadDeadLetters parses a dead-letter log. Blank lines are skipped; a
// malformed line fails with its line number.
func ReadDeadLetters(r io.Reader) ([]DeadLetter, error) {
	var out []DeadLetter
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxDeadLetterLine)
	for n := 1; sc.Scan(); n++ {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var dl DeadLetter
		if err := json.Unmarshal(line, &dl); err != nil {
			return out, fmt.Errorf("dead-letter line %d: %w", n, err)
		}
		out = append(out, dl)
	}
	return out, sc.Err()
}

// ReadDeadLetterFile reads the log at path; a missing file is an empty log
func ReadDeadLetterFile(path string) ([]DeadLetter, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDeadLetters(f)
}

// GuardedPublisher keeps handler failures away from publishers. A failed
// event is logged, counted through OnFailure and, with a writer, dead-lettered.
type GuardedPublisher struct {
	inner      Bus
	deadLetter *DeadLetterWriter
	onFailure  func(Type)
}

// NewGuardedPublisher wraps inner; deadLetter may be nil
func NewGuardedPublisher(inner Bus, deadLetter *DeadLetterWriter) *GuardedPublisher {
	return &GuardedPublisher{inner: inner, deadLetter: deadLetter}
}

func (p *GuardedPublisher) OnFailure(fn func(Type)) {
	p.onFailure = fn
}

// Publish always returns nil once the event was handed to the inner bus
func (p *GuardedPublisher) Publish(ctx context.Context, evt Event) error {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return nil
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	if p.onFailure != nil {
		p.onFailure(evt.Type)
	}
	if p.deadLetter == nil {
		return nil
	}
	if werr := p.deadLetter.Write(ctx, evt, err); werr != nil {
		log.Error(LogMsgDeadLetterWriteFailed, "error", werr)
	}
	return nil
}

func (p *GuardedPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
