package eval

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/agenthands/mirage/internal/record"
)

// Transition is a probe whose normalized answer flipped between two prompt
// variants on the same (image, object) tuple.
type Transition struct {
	Filename      string `json:"filename"`
	Foldername    string `json:"foldername"`
	Object        string `json:"object"`
	Flag          int    `json:"flag"`
	BaseAnswer    Answer `json:"base_answer"`
	VariantAnswer Answer `json:"variant_answer"`
	BaseRaw       string `json:"base_raw"`
	VariantRaw    string `json:"variant_raw"`
}

type joinKey struct {
	Filename, Object, Foldername string
	Flag                         int
}

// FindTransitions inner-joins two record sets on (filename, object,
// foldername, flag) and classifies each matched pair:
//
//   - induced: base answered no, variant answered yes (the variant prompt
//     talked the model into a hallucination)
//   - corrected: base answered yes, variant answered no (the variant prompt
//     suppressed one)
//
// Unmatched records on either side are dropped; the comparison is only
// meaningful when both runs covered the tuple. If a key appears more than
// once per side the join fans out; deduplication is the caller's job.
func FindTransitions(base, variant []record.QueryRecord) (induced, corrected []Transition) {
	byKey := make(map[joinKey][]record.QueryRecord, len(variant))
	for _, v := range variant {
		k := joinKey{v.Filename, v.Object, v.Foldername, v.Flag}
		byKey[k] = append(byKey[k], v)
	}

	for _, b := range base {
		if b.Flag != 0 {
			continue
		}
		k := joinKey{b.Filename, b.Object, b.Foldername, b.Flag}
		baseAnswer := NormalizeAnswer(b.GPTRawAnswer)
		for _, v := range byKey[k] {
			variantAnswer := NormalizeAnswer(v.GPTRawAnswer)
			t := Transition{
				Filename:      b.Filename,
				Foldername:    b.Foldername,
				Object:        b.Object,
				Flag:          b.Flag,
				BaseAnswer:    baseAnswer,
				VariantAnswer: variantAnswer,
				BaseRaw:       b.GPTRawAnswer,
				VariantRaw:    v.GPTRawAnswer,
			}
			switch {
			case baseAnswer == AnswerNo && variantAnswer == AnswerYes:
				induced = append(induced, t)
			case baseAnswer == AnswerYes && variantAnswer == AnswerNo:
				corrected = append(corrected, t)
			}
		}
	}
	return induced, corrected
}

// WriteTransitionsCSV exports transitions for report use.
func WriteTransitionsCSV(path string, transitions []Transition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"filename", "foldername", "object", "flag", "base_answer", "variant_answer", "base_raw", "variant_raw"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, t := range transitions {
		rec := []string{
			t.Filename, t.Foldername, t.Object,
			strconv.Itoa(t.Flag),
			string(t.BaseAnswer), string(t.VariantAnswer),
			t.BaseRaw, t.VariantRaw,
		}
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
