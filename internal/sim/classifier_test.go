package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSymptoms(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		found := DetectSymptoms("My HEAD HURT all morning and I feel queasy.")
		assert.ElementsMatch(t, []string{"headache", "nausea"}, found)
	})

	t.Run("one tag per symptom even with multiple keywords", func(t *testing.T) {
		found := DetectSymptoms("I'm tired, exhausted really, no energy at all.")
		assert.Equal(t, []string{"fatigue"}, found)
	})

	t.Run("no match on unrelated text", func(t *testing.T) {
		assert.Empty(t, DetectSymptoms("I went for a walk yesterday."))
	})
}

func TestIsClarification(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"question mark with interrogative", "Should I take it before or after meals?", true},
		{"how question", "How many times a day should I apply it?", true},
		{"trigger phrase without question mark", "Could you clarify the dosage for me.", true},
		{"plain acceptance", "Thank you doctor, I'll take it as prescribed.", false},
		{"question mark without interrogative cue", "Really? Thank you so much doctor.", false},
		{"interrogative word without question mark", "I know how to take it, thank you.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClarification(tt.reply))
		})
	}
}
