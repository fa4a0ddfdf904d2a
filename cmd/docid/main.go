package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cognicore/docid/internal/logger"
	"github.com/cognicore/docid/pkg/docid"
	"github.com/cognicore/docid/pkg/docid/config"
	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/server"
	"github.com/cognicore/docid/pkg/docid/store"
	"github.com/cognicore/docid/pkg/docid/store/sqlite"
)

const usage = `Usage: docid [flags] <documents.json> [minIdLength] [maxMeanFrequency]
       docid -serve [flags]
       docid -mean <doc_word_count.csv>

Reads a JSON array of strings and writes <base>_IDs.json next to it, caching
word frequencies in <base>_doc_word_count.csv.

Flags:
`

type cliOptions struct {
	cfg       *config.Generator
	inputPath string
	meanPath  string
	serve     bool
}

func main() {
	l := logger.New("docid")

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		l.Error(err)
		os.Exit(1)
	}

	l = newLogger(opts.cfg.Verbose)
	if err := run(context.Background(), opts, os.Stdin, os.Stdout, l); err != nil {
		l.Error(err)
		os.Exit(1)
	}
}

// newLogger logs at debug level when verbose so cache fallbacks and the
// generator settings show up next to the trace lines.
func newLogger(verbose bool) *log.Logger {
	if verbose {
		return logger.NewWithConfig(os.Stderr, "docid", log.DebugLevel, false, log.TextFormatter)
	}
	return logger.New("docid")
}

func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("docid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		verbose    = fs.Bool("v", false, "Enable verbose trace output")
		docs       = fs.String("docs", "", "Comma-separated document indices to trace (implies -v)")
		configPath = fs.String("config", "", "Config file (.yaml, .yml or .toml)")
		cachePath  = fs.String("cache", "", "Frequency cache path (default <base>_doc_word_count.csv)")
		dbPath     = fs.String("db", "", "SQLite database for frequency snapshots and run history")
		html       = fs.Bool("html", false, "Strip HTML markup from documents")
		serve      = fs.Bool("serve", false, "Serve msgpack requests on stdin/stdout")
		mean       = fs.String("mean", "", "Print the average count of a frequency cache CSV and exit")
	)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cliOptions{}, err
		}
		cfg = loaded
	}

	// Flags override the config file only when set.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = *verbose
		case "cache":
			cfg.CachePath = *cachePath
		case "db":
			cfg.DBPath = *dbPath
		case "html":
			cfg.HTML = *html
		}
	})
	if *docs != "" {
		indices, err := parseIndices(*docs)
		if err != nil {
			return cliOptions{}, err
		}
		cfg.Verbose = true
		cfg.VerboseDocuments = indices
	}

	opts := cliOptions{cfg: cfg, serve: *serve, meanPath: *mean}
	rest := fs.Args()
	if opts.meanPath != "" {
		if opts.serve || len(rest) > 0 {
			fs.Usage()
			return cliOptions{}, errors.New("-mean takes no other mode or arguments")
		}
		return opts, nil
	}
	if !opts.serve {
		if len(rest) < 1 || len(rest) > 3 {
			fs.Usage()
			return cliOptions{}, errors.New("expected <documents.json> [minIdLength] [maxMeanFrequency]")
		}
		opts.inputPath = rest[0]
		rest = rest[1:]
	}

	if len(rest) > 0 {
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return cliOptions{}, fmt.Errorf("invalid minIdLength %q: %w", rest[0], err)
		}
		cfg.MinIDLength = n
	}
	if len(rest) > 1 {
		v, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return cliOptions{}, fmt.Errorf("invalid maxMeanFrequency %q: %w", rest[1], err)
		}
		cfg.MaxMeanFrequency = &v
	}

	if err := cfg.Validate(); err != nil {
		return cliOptions{}, err
	}
	return opts, nil
}

func parseIndices(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid document index %q", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no document indices in %q", s)
	}
	return out, nil
}

func run(ctx context.Context, opts cliOptions, stdin io.Reader, stdout io.Writer, l *log.Logger) error {
	if opts.meanPath != "" {
		return printMean(opts.meanPath, stdout, l)
	}

	genOpts := opts.cfg.Options()
	genOpts.Logger = l

	var st store.Store
	if opts.cfg.DBPath != "" {
		s, err := sqlite.Open(ctx, opts.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()
		st = s
	}

	if opts.serve {
		return server.New(stdin, stdout, genOpts, st, l).Serve(ctx)
	}

	documents, err := readDocuments(opts.inputPath)
	if err != nil {
		return err
	}

	cachePath := opts.cfg.CachePath
	if cachePath == "" {
		cachePath = outputBase(opts.inputPath) + "_doc_word_count.csv"
	}

	gen, err := docid.New(genOpts)
	if err != nil {
		return err
	}
	ids, err := gen.GenerateIDs(documents, cachePath)
	if err != nil {
		return err
	}
	summary := []any{"documents", len(ids), "entries", gen.Frequencies().Len(), "vocabulary", gen.Vocabulary().Len()}
	if threshold, ok := gen.MaxMeanFrequency(); ok {
		summary = append(summary, "max_mean_frequency", threshold)
	}
	l.Debug("batch finished", summary...)

	if err := gen.CacheFrequencies(cachePath); err != nil {
		l.Warn("could not cache frequencies", "path", cachePath, "err", err)
	}

	batch := gen.NewRun(documents, ids)
	if st != nil {
		if err := gen.SaveFrequencies(ctx, st); err != nil {
			l.Warn("could not store frequencies", "db", opts.cfg.DBPath, "err", err)
		}
		if err := st.RecordRun(ctx, batch); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	outputPath := outputBase(opts.inputPath) + "_IDs.json"
	if err := writeResults(outputPath, documents, ids); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Generated IDs written to: %s\n", outputPath)
	fmt.Fprintf(stdout, "Document word counts cached to: %s\n", cachePath)
	fmt.Fprintf(stdout, "Run: %s\n", batch.ID)
	return nil
}

// printMean reports the corpus mean of a frequency cache, the default
// maxMeanFrequency for a batch counted from the same documents.
func printMean(path string, stdout io.Writer, l *log.Logger) error {
	table, skipped, err := freq.LoadCSV(path)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		l.Warn("skipped malformed cache row", "path", path, "line", s.Line, "reason", s.Reason, "row", s.Text)
	}

	mean, _ := table.Mean()
	fmt.Fprintf(stdout, "Average word count: %.2f\n", mean)
	fmt.Fprintf(stdout, "Total words: %d\n", table.Len())
	fmt.Fprintf(stdout, "Total count: %d\n", table.TotalCount())
	return nil
}

// result is one entry of the _IDs.json output.
type result struct {
	ID       string `json:"id"`
	Document string `json:"document"`
}

func readDocuments(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s does not exist", path)
		}
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, errors.New("JSON file must contain an array of strings")
	}

	docs := make([]string, len(raw))
	for i, r := range raw {
		if err := json.Unmarshal(r, &docs[i]); err != nil || string(r) == "null" {
			return nil, fmt.Errorf("all elements in the array must be strings (element %d)", i)
		}
	}
	return docs, nil
}

func writeResults(path string, documents, ids []string) error {
	results := make([]result, len(ids))
	for i, id := range ids {
		results[i] = result{ID: id, Document: documents[i]}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputBase strips a .json extension (any case) from path.
func outputBase(path string) string {
	if ext := filepath.Ext(path); strings.EqualFold(ext, ".json") {
		return strings.TrimSuffix(path, ext)
	}
	return path
}
