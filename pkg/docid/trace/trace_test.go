package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Trace(Batch, "vocabulary built", "size", 3)
	rec.Trace(0, "added", "word", "alpha")
	rec.Trace(1, "added", "word", "beta")
	rec.Trace(0, "final id", "id", "alpha")

	msgs := rec.Messages(0)
	if len(msgs) != 2 || msgs[0] != "added" || msgs[1] != "final id" {
		t.Errorf("Unexpected messages for doc 0: %v", msgs)
	}

	docs := rec.Docs()
	if len(docs) != 3 || docs[0] != Batch || docs[1] != 0 || docs[2] != 1 {
		t.Errorf("Unexpected docs: %v", docs)
	}

	if got := rec.Events[1].String(); got != "added word=alpha" {
		t.Errorf("Unexpected event string: %q", got)
	}
}

func TestOnlyFiltersByIndex(t *testing.T) {
	rec := &Recorder{}
	tr := Only(rec, 2, 5)

	tr.Trace(Batch, "batch")
	tr.Trace(1, "one")
	tr.Trace(2, "two")
	tr.Trace(5, "five")

	if len(rec.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(rec.Events))
	}
	if rec.Events[0].Doc != 2 || rec.Events[1].Doc != 5 {
		t.Errorf("Unexpected docs: %+v", rec.Events)
	}
}

func TestLogTracerAllDocuments(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	tr := NewLogTracer(logger, nil)
	tr.Trace(Batch, "vocabulary built", "size", 4)
	tr.Trace(3, "selected", "word", "translate")

	out := buf.String()
	if !strings.Contains(out, "vocabulary built") {
		t.Error("batch event should be logged when no documents are listed")
	}
	if !strings.Contains(out, "doc=3") || !strings.Contains(out, "word=translate") {
		t.Errorf("document event missing fields: %q", out)
	}
}

func TestLogTracerRestricted(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	tr := NewLogTracer(logger, []int{1})
	tr.Trace(Batch, "vocabulary built")
	tr.Trace(0, "skipped doc")
	tr.Trace(1, "kept doc")

	out := buf.String()
	if strings.Contains(out, "vocabulary built") || strings.Contains(out, "skipped doc") {
		t.Errorf("restricted tracer leaked events: %q", out)
	}
	if !strings.Contains(out, "kept doc") {
		t.Error("allow-listed document should be traced")
	}
}

func TestNop(t *testing.T) {
	var tr Tracer = Nop{}
	tr.Trace(0, "ignored", "k", "v")
}
