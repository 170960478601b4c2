package eval

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/agenthands/mirage/internal/record"
)

// RateRow is one aggregation output row at some granularity. Object and
// Foldername are empty at granularities that do not group by them.
//
// Unknown counts answers that normalized to neither yes nor no. They stay in
// Total (the published rate definition) but are surfaced so the ambiguity
// volume is visible.
type RateRow struct {
	Model             string  `json:"model"`
	Prompt            string  `json:"prompt"`
	Object            string  `json:"object,omitempty"`
	Foldername        string  `json:"foldername,omitempty"`
	Total             int     `json:"total"`
	FalsePositives    int     `json:"fp"`
	Unknown           int     `json:"unknown"`
	HallucinationRate float64 `json:"hallucination_rate"`
}

type groupKey struct {
	Model, Prompt, Object, Foldername string
}

// Overall groups by (model, prompt).
func Overall(records []record.QueryRecord) []RateRow {
	return aggregate(records, func(r record.QueryRecord) groupKey {
		return groupKey{Model: r.Model, Prompt: r.Prompt}
	})
}

// ByObject groups by (model, prompt, object).
func ByObject(records []record.QueryRecord) []RateRow {
	return aggregate(records, func(r record.QueryRecord) groupKey {
		return groupKey{Model: r.Model, Prompt: r.Prompt, Object: r.Object}
	})
}

// ByFolder groups by (model, prompt, foldername).
func ByFolder(records []record.QueryRecord) []RateRow {
	return aggregate(records, func(r record.QueryRecord) groupKey {
		return groupKey{Model: r.Model, Prompt: r.Prompt, Foldername: r.Foldername}
	})
}

// aggregate computes per-group totals and the hallucination rate. A record is
// a false positive iff flag == 0 and the normalized answer is yes: the object
// was declared absent but the model affirmed it. Grouping keys are compared
// exactly as stored; normalization applies to answers only, never to keys.
// Groups only exist for keys present in the data, so Total is never zero.
func aggregate(records []record.QueryRecord, keyOf func(record.QueryRecord) groupKey) []RateRow {
	groups := make(map[groupKey]*RateRow)
	for _, r := range records {
		k := keyOf(r)
		row, ok := groups[k]
		if !ok {
			row = &RateRow{
				Model:      k.Model,
				Prompt:     k.Prompt,
				Object:     k.Object,
				Foldername: k.Foldername,
			}
			groups[k] = row
		}
		row.Total++
		switch NormalizeAnswer(r.GPTRawAnswer) {
		case AnswerYes:
			if r.Flag == 0 {
				row.FalsePositives++
			}
		case AnswerUnknown:
			row.Unknown++
		}
	}

	rows := make([]RateRow, 0, len(groups))
	for _, row := range groups {
		row.HallucinationRate = float64(row.FalsePositives) / float64(row.Total)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		if a.Prompt != b.Prompt {
			return a.Prompt < b.Prompt
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Foldername < b.Foldername
	})
	return rows
}

// WriteOverallCSV exports overall rate rows.
func WriteOverallCSV(path string, rows []RateRow) error {
	return writeRateCSV(path, rows, "")
}

// WriteObjectCSV exports object-level rate rows.
func WriteObjectCSV(path string, rows []RateRow) error {
	return writeRateCSV(path, rows, "object")
}

// WriteFolderCSV exports folder-level rate rows.
func WriteFolderCSV(path string, rows []RateRow) error {
	return writeRateCSV(path, rows, "foldername")
}

func writeRateCSV(path string, rows []RateRow, extraCol string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"model", "prompt"}
	if extraCol != "" {
		header = append(header, extraCol)
	}
	header = append(header, "total", "fp", "unknown", "hallucination_rate")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		rec := []string{row.Model, row.Prompt}
		switch extraCol {
		case "object":
			rec = append(rec, row.Object)
		case "foldername":
			rec = append(rec, row.Foldername)
		}
		rec = append(rec,
			strconv.Itoa(row.Total),
			strconv.Itoa(row.FalsePositives),
			strconv.Itoa(row.Unknown),
			strconv.FormatFloat(row.HallucinationRate, 'f', -1, 64),
		)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
