// Package groundtruth loads the CSV declaring, per image, which objects are
// known to be absent. Those (image, object) pairs are the only legitimate
// true-negative probes.
package groundtruth

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one ground-truth row: an image and the objects absent from it.
type Entry struct {
	Foldername string
	Filename   string
	Absent     []string
}

// Load reads the ground-truth CSV (columns: foldername, filename, no).
// A row whose absent-object list cannot be parsed aborts the load: a
// malformed list means the dataset is corrupt, and silently narrowing the
// probe universe would bias every downstream rate.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read ground truth header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"foldername", "filename", "no"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("ground truth missing column %q", required)
		}
	}

	var entries []Entry
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ground truth row: %w", err)
		}
		line++

		absent, err := ParseObjectList(row[col["no"]])
		if err != nil {
			return nil, fmt.Errorf("ground truth line %d: %w", line, err)
		}
		entries = append(entries, Entry{
			Foldername: row[col["foldername"]],
			Filename:   row[col["filename"]],
			Absent:     absent,
		})
	}
	return entries, nil
}

// ParseObjectList parses a textual object list like ['person', 'car'].
//
// The source format looks like a scripting-language literal, but it is never
// evaluated: only a bracketed sequence of quoted names is accepted, and
// anything else (expressions, escapes, bare words) is rejected.
func ParseObjectList(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("object list %q is not a bracketed list", raw)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, nil
	}

	var items []string
	i := 0
	for {
		for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i >= len(inner) {
			return nil, fmt.Errorf("object list %q: expected item", raw)
		}
		quote := inner[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("object list %q: item must be quoted", raw)
		}
		i++
		start := i
		for i < len(inner) && inner[i] != quote {
			if inner[i] == '\\' {
				return nil, fmt.Errorf("object list %q: escape sequences not allowed", raw)
			}
			i++
		}
		if i >= len(inner) {
			return nil, fmt.Errorf("object list %q: unterminated quote", raw)
		}
		item := inner[start:i]
		if item == "" {
			return nil, fmt.Errorf("object list %q: empty object name", raw)
		}
		items = append(items, item)
		i++

		for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i == len(inner) {
			break
		}
		if inner[i] != ',' {
			return nil, fmt.Errorf("object list %q: expected ',' between items", raw)
		}
		i++
	}
	return items, nil
}
