// Package record defines the per-query result record and its on-disk store.
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// QueryRecord is one probe result: the model was shown an image and asked
// about an object the ground truth marks absent.
//
// Flag marks the probe kind: 0 means declared-absent (true-negative) check.
// It is reserved for future true-positive probes, so consumers must filter on
// it explicitly rather than assume a constant.
type QueryRecord struct {
	Model        string `json:"model"`
	Prompt       string `json:"prompt"`
	Filename     string `json:"filename"`
	Foldername   string `json:"foldername"`
	Object       string `json:"object"`
	Flag         int    `json:"flag"`
	GPTRawAnswer string `json:"gpt_raw_answer"`
}

// FileName is the collection file for a (model, prompt variant) pair.
func FileName(model, prompt string) string {
	return fmt.Sprintf("%s_%s_results.json", model, prompt)
}

// Store persists record collections as JSON documents, one file per
// (model, prompt variant) pair.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the full collection as a single atomic unit: the document is
// staged in a temp file and renamed into place, so a reader never observes a
// half-written collection. Returns the final path.
func (s *Store) Save(model, prompt string, records []QueryRecord) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	if records == nil {
		records = []QueryRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".results-*.tmp")
	if err != nil {
		return "", fmt.Errorf("stage results file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write results file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close results file: %w", err)
	}

	final := filepath.Join(s.Dir, FileName(model, prompt))
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publish results file: %w", err)
	}
	return final, nil
}

// Load reads the collection for one (model, prompt variant) pair.
func (s *Store) Load(model, prompt string) ([]QueryRecord, error) {
	return readCollection(filepath.Join(s.Dir, FileName(model, prompt)))
}

// LoadAll reads every persisted collection in the store, in stable file-name
// order so repeated aggregations see records in the same order.
func (s *Store) LoadAll() ([]QueryRecord, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list results dir: %w", err)
	}
	sort.Strings(paths)

	var all []QueryRecord
	for _, p := range paths {
		records, err := readCollection(p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func readCollection(path string) ([]QueryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file %q: %w", path, err)
	}
	var records []QueryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse results file %q: %w", path, err)
	}
	return records, nil
}
