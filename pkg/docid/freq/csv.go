package freq

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cognicore/docid/pkg/docid/internalerr"
)

// Header is the first line of a frequency cache file.
const Header = "word,count"

// SortLimit is the entry count from which WriteCSV keeps insertion order
// instead of sorting by descending count.
const SortLimit = 10000

// Skipped describes a malformed cache row that was ignored on load.
type Skipped struct {
	Line   int
	Text   string
	Reason string
}

func (s Skipped) String() string {
	return fmt.Sprintf("line %d: %s (%q)", s.Line, s.Reason, s.Text)
}

// LoadCSV reads a frequency cache file. Missing, empty or header-only files
// fail with a cache error; malformed rows are skipped and reported.
func LoadCSV(path string) (*Table, []Skipped, error) {
	const op = "freq.LoadCSV"

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, internalerr.Wrap(internalerr.KindCache, op, fmt.Errorf("%s: file does not exist: %w", path, internalerr.ErrNotFound))
		}
		return nil, nil, internalerr.Wrap(internalerr.KindCache, op, err)
	}

	table, skipped, err := ReadCSV(strings.NewReader(string(data)))
	if err != nil {
		return nil, skipped, internalerr.Wrap(internalerr.KindCache, op, fmt.Errorf("%s: %w", path, err))
	}
	return table, skipped, nil
}

// ReadCSV parses cache content. The first line is the header and is not
// interpreted.
func ReadCSV(r io.Reader) (*Table, []Skipped, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return nil, nil, errors.New("file is empty")
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 || !hasDataLine(lines[1:]) {
		return nil, nil, errors.New("file must have at least a header and one data line")
	}

	table := NewTable()
	var skipped []Skipped
	for i, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 2

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			skipped = append(skipped, Skipped{Line: lineNo, Text: line, Reason: "expected 2 columns"})
			continue
		}
		word := parts[0]
		if word == "" {
			skipped = append(skipped, Skipped{Line: lineNo, Text: line, Reason: "empty word"})
			continue
		}
		count, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			skipped = append(skipped, Skipped{Line: lineNo, Text: line, Reason: "invalid count"})
			continue
		}
		if count < 0 {
			skipped = append(skipped, Skipped{Line: lineNo, Text: line, Reason: "negative count"})
			continue
		}
		table.Set(word, count)
	}

	if table.Len() == 0 {
		return nil, skipped, errors.New("no valid rows")
	}
	return table, skipped, nil
}

func hasDataLine(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// WriteCSV writes t to path, creating missing parent directories.
func WriteCSV(path string, t *Table) error {
	const op = "freq.WriteCSV"

	if strings.TrimSpace(path) == "" {
		return internalerr.New(internalerr.KindInput, op, "cache path must be a non-empty string")
	}
	if t == nil || t.Len() == 0 {
		return internalerr.New(internalerr.KindCache, op, "no frequencies to cache")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return internalerr.Wrap(internalerr.KindCache, op, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return internalerr.Wrap(internalerr.KindCache, op, err)
	}
	if err := Encode(f, t); err != nil {
		f.Close()
		return internalerr.Wrap(internalerr.KindCache, op, err)
	}
	return internalerr.Wrap(internalerr.KindCache, op, f.Close())
}

// Encode writes the header and one row per entry to w. Tables below
// SortLimit are written by descending count.
func Encode(w io.Writer, t *Table) error {
	entries := t.Entries()
	if len(entries) < SortLimit {
		entries = t.Sorted()
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	bw.WriteByte('\n')
	for _, e := range entries {
		bw.WriteString(e.Word)
		bw.WriteByte(',')
		bw.WriteString(strconv.FormatInt(e.Count, 10))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Source yields a persisted frequency table.
type Source interface {
	Load(ctx context.Context) (*Table, []Skipped, error)
	String() string
}

// CSVFile is a Source backed by a cache file.
type CSVFile string

// Load implements Source.
func (f CSVFile) Load(ctx context.Context) (*Table, []Skipped, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return LoadCSV(string(f))
}

func (f CSVFile) String() string {
	return string(f)
}
