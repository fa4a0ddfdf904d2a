// Package trace carries the verbose, per-document decision trace of the
// generator. The algorithm only talks to the Tracer interface; callers pick a
// sink that logs, buffers, filters or drops the events.
package trace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Batch is the document index used for corpus-level events (vocabulary and
// frequency table construction) that do not belong to a single document.
const Batch = -1

// Tracer receives trace events for a document index.
type Tracer interface {
	Trace(doc int, msg string, keyvals ...any)
}

// Nop drops every event.
type Nop struct{}

// Trace implements Tracer.
func (Nop) Trace(int, string, ...any) {}

type logSink struct {
	logger *log.Logger
}

func (s logSink) Trace(doc int, msg string, keyvals ...any) {
	if doc != Batch {
		keyvals = append([]any{"doc", doc}, keyvals...)
	}
	s.logger.Info(msg, keyvals...)
}

// NewLogTracer writes events to logger. With a non-empty docs list only those
// document indices are traced and batch-level events are suppressed.
func NewLogTracer(logger *log.Logger, docs []int) Tracer {
	var sink Tracer = logSink{logger: logger}
	if len(docs) > 0 {
		sink = Only(sink, docs...)
	}
	return sink
}

type filter struct {
	next Tracer
	docs map[int]struct{}
}

// Only forwards events for the listed document indices to next.
func Only(next Tracer, docs ...int) Tracer {
	set := make(map[int]struct{}, len(docs))
	for _, d := range docs {
		set[d] = struct{}{}
	}
	return &filter{next: next, docs: set}
}

func (f *filter) Trace(doc int, msg string, keyvals ...any) {
	if _, ok := f.docs[doc]; ok {
		f.next.Trace(doc, msg, keyvals...)
	}
}

// Event is a recorded trace line.
type Event struct {
	Doc     int
	Msg     string
	KeyVals []any
}

// String renders the event in logfmt-like form.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	for i := 0; i+1 < len(e.KeyVals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.KeyVals[i], e.KeyVals[i+1])
	}
	return b.String()
}

// Recorder buffers events in memory. Not safe for concurrent use.
type Recorder struct {
	Events []Event
}

// Trace implements Tracer.
func (r *Recorder) Trace(doc int, msg string, keyvals ...any) {
	r.Events = append(r.Events, Event{Doc: doc, Msg: msg, KeyVals: keyvals})
}

// Messages returns the messages recorded for doc, in order.
func (r *Recorder) Messages(doc int) []string {
	var out []string
	for _, e := range r.Events {
		if e.Doc == doc {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Docs returns the distinct document indices seen, in first-seen order.
func (r *Recorder) Docs() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, e := range r.Events {
		if _, ok := seen[e.Doc]; ok {
			continue
		}
		seen[e.Doc] = struct{}{}
		out = append(out, e.Doc)
	}
	return out
}
