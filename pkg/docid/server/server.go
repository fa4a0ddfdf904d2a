/*
Package server implements msgpack IPC for ID generation.

Clients write a stream of msgpack-encoded requests to the server's input and
read one msgpack-encoded reply per request from its output. msgpack values are
self-delimiting, so no framing is needed.

	{"id": "req_1", "d": ["Translate this French document", "..."], "m": 20}

A successful reply carries the run ID, the generated IDs and the time taken in
microseconds:

	{"id": "req_1", "r": "01J...", "i": ["Translate_French_document", "..."], "t": 812}

A failed request gets an error reply with the error kind:

	{"id": "req_1", "e": "docid.GenerateIDs: documents cannot be empty", "k": "input"}

Every request uses a fresh generator.
*/
package server

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cognicore/docid/pkg/docid"
	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/internalerr"
	"github.com/cognicore/docid/pkg/docid/store"
)

// Request asks for IDs for a batch of documents.
type Request struct {
	ID        string   `msgpack:"id"`
	Documents []string `msgpack:"d"`
	CachePath string   `msgpack:"c,omitempty"`
	MinLength int      `msgpack:"m,omitempty"`
	MaxMean   *float64 `msgpack:"x,omitempty"`
	Save      bool     `msgpack:"s,omitempty"` // write the frequency table back to CachePath
}

// Response carries the IDs for a Request, index-aligned with its documents.
type Response struct {
	ID        string   `msgpack:"id"`
	RunID     string   `msgpack:"r"`
	IDs       []string `msgpack:"i"`
	TimeTaken int64    `msgpack:"t"`
}

// ErrorResponse reports a failed Request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Kind  string `msgpack:"k"`
}

// Server answers requests read from an input stream.
type Server struct {
	opts   docid.Options
	store  store.Store
	logger *log.Logger
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// New creates a server reading from r and writing to w. opts are the defaults
// every request starts from. st may be nil; when set, runs are recorded in it
// and its frequency snapshot is used for requests without a cache path.
func New(r io.Reader, w io.Writer, opts docid.Options, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Server{
		opts:   opts,
		store:  st,
		logger: logger,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Serve handles requests until the input ends or ctx is done. A clean end of
// input returns nil.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("Starting server")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Error("decoding request", "err", err)
			s.sendError("", "invalid request: "+err.Error(), internalerr.KindInput)
			return err
		}

		if err := s.handle(ctx, req); err != nil {
			return err
		}
	}
}

// handle answers one request. Only write failures are returned.
func (s *Server) handle(ctx context.Context, req Request) error {
	start := time.Now()

	opts := s.opts
	if req.MinLength > 0 {
		opts.MinIDLength = req.MinLength
	}
	if req.MaxMean != nil {
		opts.MaxMeanFrequency = req.MaxMean
	}

	gen, err := docid.New(opts)
	if err != nil {
		return s.sendError(req.ID, err.Error(), internalerr.KindOf(err))
	}

	var src freq.Source
	switch {
	case req.CachePath != "":
		src = freq.CSVFile(req.CachePath)
	case s.store != nil:
		src = store.FrequencySource(s.store)
	}

	ids, err := gen.GenerateIDsFrom(ctx, req.Documents, src)
	if err != nil {
		return s.sendError(req.ID, err.Error(), internalerr.KindOf(err))
	}

	if req.Save && req.CachePath != "" {
		if err := gen.CacheFrequencies(req.CachePath); err != nil {
			s.logger.Warn("caching frequencies", "id", req.ID, "err", err)
		}
	}

	run := gen.NewRun(req.Documents, ids)
	if s.store != nil {
		if err := s.store.RecordRun(ctx, run); err != nil {
			s.logger.Warn("recording run", "id", req.ID, "run", run.ID, "err", err)
		}
	}

	return s.send(Response{
		ID:        req.ID,
		RunID:     run.ID,
		IDs:       ids,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) send(v interface{}) error {
	if err := s.enc.Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, msg string, kind internalerr.Kind) error {
	return s.send(ErrorResponse{ID: id, Error: msg, Kind: kind.String()})
}
