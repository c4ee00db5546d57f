package sim

import "strings"

// symptomKeywords maps a symptom tag to the phrases that count as the
// simulated patient having disclosed it.
var symptomKeywords = map[string][]string{
	"headache": {"headache", "head hurt", "head pain"},
	"fatigue":  {"tired", "fatigue", "exhausted", "no energy"},
	"nausea":   {"nausea", "nauseous", "sick", "queasy"},
}

// DetectSymptoms returns the symptom tags mentioned in a reply. Matching is
// a case-insensitive substring scan against the fixed keyword table.
func DetectSymptoms(reply string) []string {
	lower := strings.ToLower(reply)

	var found []string
	for symptom, keywords := range symptomKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				found = append(found, symptom)
				break
			}
		}
	}
	return found
}

// interrogatives are the cue words that, next to a question mark, mark a
// reply as a clarification question.
var interrogatives = []string{
	"how", "when", "what", "which", "should i", "do i", "can i",
}

// clarificationPhrases mark a clarification even without a question mark
var clarificationPhrases = []string{
	"could you clarify",
	"could you explain",
	"i'm not sure",
}

// IsClarification reports whether a generated reply asks the doctor a
// follow-up question about the prescription. A question mark alone is not
// enough; it has to co-occur with an interrogative cue so that rhetorical
// punctuation does not count.
func IsClarification(reply string) bool {
	lower := strings.ToLower(reply)

	if strings.Contains(lower, "?") {
		for _, w := range interrogatives {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}

	for _, p := range clarificationPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
