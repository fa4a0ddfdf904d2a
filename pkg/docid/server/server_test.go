package server

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/cognicore/docid/internal/logger"
	"github.com/cognicore/docid/pkg/docid"
	"github.com/cognicore/docid/pkg/docid/store/memstore"
)

func encodeRequests(t *testing.T, reqs ...Request) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	return &buf
}

func readReplies(t *testing.T, out *bytes.Buffer) []msgpack.RawMessage {
	t.Helper()
	dec := msgpack.NewDecoder(out)
	var replies []msgpack.RawMessage
	for out.Len() > 0 {
		raw, err := dec.DecodeRaw()
		if err != nil {
			t.Fatalf("decode reply: %v", err)
		}
		replies = append(replies, raw)
	}
	return replies
}

func isError(t *testing.T, raw msgpack.RawMessage) (ErrorResponse, bool) {
	t.Helper()
	var fields map[string]interface{}
	if err := msgpack.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if _, ok := fields["e"]; !ok {
		return ErrorResponse{}, false
	}
	var e ErrorResponse
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		t.Fatalf("unmarshal error reply: %v", err)
	}
	return e, true
}

func TestServe(t *testing.T) {
	negative := -1.0
	in := encodeRequests(t,
		Request{ID: "ok", Documents: []string{"test document", "test document"}, MinLength: 5},
		Request{ID: "empty"},
		Request{ID: "bad-mean", Documents: []string{"x"}, MaxMean: &negative},
	)

	st := memstore.New()
	var out bytes.Buffer
	srv := New(in, &out, docid.Options{MinIDLength: docid.DefaultMinIDLength}, st, logger.Discard())
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	replies := readReplies(t, &out)
	if len(replies) != 3 {
		t.Fatalf("got %d replies, want 3", len(replies))
	}

	if e, ok := isError(t, replies[0]); ok {
		t.Fatalf("unexpected error reply: %+v", e)
	}
	var resp Response
	if err := msgpack.Unmarshal(replies[0], &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != "ok" || resp.RunID == "" {
		t.Errorf("unexpected response header: %+v", resp)
	}
	if len(resp.IDs) != 2 || resp.IDs[0] != "test_document" || resp.IDs[1] != "test_document_2" {
		t.Errorf("IDs = %v", resp.IDs)
	}

	e, ok := isError(t, replies[1])
	if !ok || e.ID != "empty" || e.Kind != "input" {
		t.Errorf("reply 2 = %+v, want input error", e)
	}
	e, ok = isError(t, replies[2])
	if !ok || e.ID != "bad-mean" || e.Kind != "config" {
		t.Errorf("reply 3 = %+v, want config error", e)
	}

	run, found, err := st.LatestRun(context.Background())
	if err != nil || !found {
		t.Fatalf("LatestRun: %v %v", found, err)
	}
	if run.ID != resp.RunID || len(run.Assignments) != 2 || run.MinIDLength != 5 {
		t.Errorf("recorded run = %+v", run)
	}
}

func TestServeSavesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freq.csv")
	in := encodeRequests(t, Request{ID: "1", Documents: []string{"translate french"}, CachePath: path, Save: true})

	var out bytes.Buffer
	srv := New(in, &out, docid.Options{MinIDLength: 10}, nil, logger.Discard())
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("word,count\n")) {
		t.Errorf("unexpected cache content %q", data)
	}
}

func TestServeInvalidInput(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1}) // never-used msgpack code
	var out bytes.Buffer
	srv := New(in, &out, docid.Options{MinIDLength: 10}, nil, logger.Discard())
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}

	replies := readReplies(t, &out)
	if len(replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(replies))
	}
	if e, ok := isError(t, replies[0]); !ok || e.Kind != "input" {
		t.Errorf("reply = %+v, want input error", e)
	}
}

func TestServeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := encodeRequests(t, Request{ID: "1", Documents: []string{"a"}})
	var out bytes.Buffer
	srv := New(in, &out, docid.Options{MinIDLength: 10}, nil, logger.Discard())
	if err := srv.Serve(ctx); err != context.Canceled {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
}
