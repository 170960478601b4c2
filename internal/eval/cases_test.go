package eval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/mirage/internal/record"
)

func baseRec(file, object, answer string) record.QueryRecord {
	return record.QueryRecord{
		Model: "gpt-5.1", Prompt: "baseline",
		Filename: file, Foldername: "person", Object: object,
		Flag: 0, GPTRawAnswer: answer,
	}
}

func variantRec(file, object, answer string) record.QueryRecord {
	r := baseRec(file, object, answer)
	r.Prompt = "misleading1"
	return r
}

func TestFindTransitionsInduced(t *testing.T) {
	base := []record.QueryRecord{baseRec("a.jpg", "dog", "no")}
	variant := []record.QueryRecord{variantRec("a.jpg", "dog", "yes")}

	induced, corrected := FindTransitions(base, variant)
	require.Len(t, induced, 1)
	assert.Empty(t, corrected)
	assert.Equal(t, "a.jpg", induced[0].Filename)
	assert.Equal(t, AnswerNo, induced[0].BaseAnswer)
	assert.Equal(t, AnswerYes, induced[0].VariantAnswer)
}

func TestFindTransitionsCorrected(t *testing.T) {
	base := []record.QueryRecord{baseRec("a.jpg", "dog", "yes")}
	variant := []record.QueryRecord{variantRec("a.jpg", "dog", "no")}

	induced, corrected := FindTransitions(base, variant)
	assert.Empty(t, induced)
	require.Len(t, corrected, 1)
	assert.Equal(t, AnswerYes, corrected[0].BaseAnswer)
	assert.Equal(t, AnswerNo, corrected[0].VariantAnswer)
}

func TestFindTransitionsInnerJoinDropsUnmatched(t *testing.T) {
	base := []record.QueryRecord{
		baseRec("a.jpg", "dog", "no"),
		baseRec("only-in-base.jpg", "cat", "no"),
	}
	variant := []record.QueryRecord{
		variantRec("a.jpg", "dog", "yes"),
		variantRec("only-in-variant.jpg", "cup", "yes"),
	}

	induced, corrected := FindTransitions(base, variant)
	require.Len(t, induced, 1)
	assert.Empty(t, corrected)
	assert.Equal(t, "a.jpg", induced[0].Filename)
}

func TestFindTransitionsKeyIsExact(t *testing.T) {
	base := []record.QueryRecord{baseRec("a.jpg", "dog", "no")}

	// same file, different object: no join
	variant := []record.QueryRecord{variantRec("a.jpg", "cat", "yes")}
	induced, corrected := FindTransitions(base, variant)
	assert.Empty(t, induced)
	assert.Empty(t, corrected)

	// differing flag: no join
	v := variantRec("a.jpg", "dog", "yes")
	v.Flag = 1
	induced, corrected = FindTransitions(base, []record.QueryRecord{v})
	assert.Empty(t, induced)
	assert.Empty(t, corrected)
}

func TestFindTransitionsIgnoresStableAnswers(t *testing.T) {
	base := []record.QueryRecord{
		baseRec("a.jpg", "dog", "no"),
		baseRec("b.jpg", "cat", "yes"),
		baseRec("c.jpg", "cup", "maybe"),
	}
	variant := []record.QueryRecord{
		variantRec("a.jpg", "dog", "no"),
		variantRec("b.jpg", "cat", "yes"),
		variantRec("c.jpg", "cup", "yes"),
	}

	induced, corrected := FindTransitions(base, variant)
	assert.Empty(t, induced, "unknown base answers are not transitions")
	assert.Empty(t, corrected)
}

func TestFindTransitionsFansOutOnDuplicateKeys(t *testing.T) {
	base := []record.QueryRecord{baseRec("a.jpg", "dog", "no")}
	variant := []record.QueryRecord{
		variantRec("a.jpg", "dog", "yes"),
		variantRec("a.jpg", "dog", "yes"),
	}

	induced, _ := FindTransitions(base, variant)
	assert.Len(t, induced, 2, "duplicate keys fan out; dedup is the caller's job")
}

func TestWriteTransitionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typical_caseA_misleading.csv")
	induced, _ := FindTransitions(
		[]record.QueryRecord{baseRec("a.jpg", "dog", "No.")},
		[]record.QueryRecord{variantRec("a.jpg", "dog", "Yes")},
	)
	require.NoError(t, WriteTransitionsCSV(path, induced))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "filename,foldername,object,flag,base_answer,variant_answer,base_raw,variant_raw", lines[0])
	assert.Contains(t, lines[1], "a.jpg,person,dog,0,no,yes,No.,Yes")
}
