// Package eval turns raw query records into hallucination-rate tables and
// prompt-transition cases.
package eval

import "strings"

// Answer is the ternary normalization of a raw model response.
type Answer string

const (
	AnswerYes     Answer = "yes"
	AnswerNo      Answer = "no"
	AnswerUnknown Answer = "unknown"
)

// NormalizeAnswer maps free text to yes/no/unknown by first character.
//
// This is a prefix classifier, not a full-word match: a response beginning
// "Yes, partially..." normalizes to yes, while one starting with punctuation
// or a digit normalizes to unknown. Every input has a defined output.
func NormalizeAnswer(raw string) Answer {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "y"):
		return AnswerYes
	case strings.HasPrefix(s, "n"):
		return AnswerNo
	default:
		return AnswerUnknown
	}
}
