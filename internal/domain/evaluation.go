package domain

import "strings"

// Verdict classifies a doctor's question against the patient history
type Verdict string

const (
	VerdictRelevant   Verdict = "RELEVANT"
	VerdictIrrelevant Verdict = "IRRELEVANT"
	VerdictRepetitive Verdict = "REPETITIVE"
	VerdictWarn       Verdict = "WARN"
	VerdictError      Verdict = "ERROR"
)

// ParseVerdict maps a raw model string onto the verdict enum. Anything
// outside the enum degrades to WARN so unparsed model output never leaks
// into responses.
func ParseVerdict(raw string) Verdict {
	switch Verdict(strings.ToUpper(strings.TrimSpace(raw))) {
	case VerdictRelevant:
		return VerdictRelevant
	case VerdictIrrelevant:
		return VerdictIrrelevant
	case VerdictRepetitive:
		return VerdictRepetitive
	case VerdictError:
		return VerdictError
	default:
		return VerdictWarn
	}
}

// Evaluation is the structured result of classifying one doctor question
type Evaluation struct {
	Verdict    Verdict `json:"verdict"`
	Reason     string  `json:"reason"`
	Suggestion string  `json:"suggestion,omitempty"`
}
