package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/docid/internal/logger"
)

func main() {
	l := logger.New("docid-diff")

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: docid-diff <a_IDs.json> <b_IDs.json>")
		os.Exit(1)
	}

	if _, _, err := diffFiles(os.Args[1], os.Args[2], os.Stdout); err != nil {
		l.Error(err)
		os.Exit(1)
	}
}

// assignment is one entry of an _IDs.json file.
type assignment struct {
	ID       string `json:"id"`
	Document string `json:"document"`
}

// idsByDocument keeps the last ID seen per document, in first-seen order.
type idsByDocument struct {
	order []string
	ids   map[string]string
}

func (m *idsByDocument) set(doc, id string) {
	if _, ok := m.ids[doc]; !ok {
		m.order = append(m.order, doc)
	}
	m.ids[doc] = id
}

func (m *idsByDocument) get(doc string) (string, bool) {
	id, ok := m.ids[doc]
	return id, ok
}

// difference is one output row. Keys are written in a fixed order: the ID from
// the first file, the ID from the second file, then the document.
type difference struct {
	keyA, idA string
	keyB, idB string
	document  string
}

func (d difference) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(k, v string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := marshal(k)
		if err != nil {
			return err
		}
		vb, err := marshal(v)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}
	if d.keyA != "" {
		if err := write(d.keyA, d.idA); err != nil {
			return nil, err
		}
	}
	if d.keyB != "" {
		if err := write(d.keyB, d.idB); err != nil {
			return nil, err
		}
	}
	if err := write("document", d.document); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshal(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// diffFiles compares two result files and writes <a>_<b>_diff.json next to
// the first one. It returns the output path and the number of differences.
func diffFiles(pathA, pathB string, stdout io.Writer) (string, int, error) {
	a, err := loadAssignments(pathA)
	if err != nil {
		return "", 0, err
	}
	b, err := loadAssignments(pathB)
	if err != nil {
		return "", 0, err
	}

	nameA := baseName(pathA)
	nameB := baseName(pathB)
	keyA, keyB := "id_"+nameA, "id_"+nameB
	if keyA == keyB {
		// Same file name in two directories.
		keyA, keyB = keyA+"_1", keyB+"_2"
	}
	diffs := compare(a, b, keyA, keyB)

	out := filepath.Join(filepath.Dir(pathA), nameA+"_"+nameB+"_diff.json")
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diffs); err != nil {
		return "", 0, err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", 0, err
	}

	fmt.Fprintf(stdout, "Diff file created: %s\n", out)
	fmt.Fprintf(stdout, "Total documents with differences: %d\n", len(diffs))
	return out, len(diffs), nil
}

func compare(a, b *idsByDocument, keyA, keyB string) []difference {
	diffs := []difference{}
	for _, doc := range a.order {
		idA, _ := a.get(doc)
		idB, ok := b.get(doc)
		switch {
		case !ok:
			diffs = append(diffs, difference{keyA: keyA, idA: idA, document: doc})
		case idA != idB:
			diffs = append(diffs, difference{keyA: keyA, idA: idA, keyB: keyB, idB: idB, document: doc})
		}
	}
	for _, doc := range b.order {
		if _, ok := a.get(doc); !ok {
			idB, _ := b.get(doc)
			diffs = append(diffs, difference{keyB: keyB, idB: idB, document: doc})
		}
	}
	return diffs
}

func loadAssignments(path string) (*idsByDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s does not exist", path)
		}
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, fmt.Errorf("%s: JSON file must contain an array", path)
	}

	m := &idsByDocument{ids: make(map[string]string)}
	for _, r := range raw {
		var a assignment
		// Entries that are not objects or lack an id or document are ignored.
		if err := json.Unmarshal(r, &a); err != nil {
			continue
		}
		if a.ID == "" || a.Document == "" {
			continue
		}
		m.set(a.Document, a.ID)
	}
	return m, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
