package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/manav03panchal/blockstage/internal/logging"
)

// Sink receives notices.
type Sink interface {
	Send(n Notice) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(n Notice) error

// Send calls f.
func (f SinkFunc) Send(n Notice) error {
	return f(n)
}

// Notifier is what the engine emits notices through.
type Notifier interface {
	Notify(n Notice)
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Dispatcher sends each notice to every registered sink in registration
// order. A failing sink is logged and does not stop the others.
type Dispatcher struct {
	mu    sync.RWMutex
	sinks []Sink
}

// NewDispatcher creates a dispatcher with the given sinks.
func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks}
}

// Add registers another sink.
func (d *Dispatcher) Add(s Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, s)
}

// Len returns the number of registered sinks.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sinks)
}

// Notify delivers n to all sinks.
func (d *Dispatcher) Notify(n Notice) {
	d.mu.RLock()
	sinks := make([]Sink, len(d.sinks))
	copy(sinks, d.sinks)
	d.mu.RUnlock()

	for i, s := range sinks {
		if err := s.Send(n); err != nil {
			logging.Warn("notice sink failed",
				"sink", i,
				logging.KeyError, err,
			)
		}
	}
}

// Recorder keeps every notice it receives. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Send records n.
func (r *Recorder) Send(n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

// Notify records n.
func (r *Recorder) Notify(n Notice) {
	_ = r.Send(n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Titles returns the titles of the recorded notices.
func (r *Recorder) Titles() []string {
	notices := r.Notices()
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Title
	}
	return out
}

// WriterSink prints one line per notice.
type WriterSink struct {
	W      io.Writer
	Format func(Notice) string
}

// Send writes n to the writer.
func (w WriterSink) Send(n Notice) error {
	line := n.String()
	if w.Format != nil {
		line = w.Format(n)
	}
	_, err := fmt.Fprintln(w.W, line)
	return err
}
