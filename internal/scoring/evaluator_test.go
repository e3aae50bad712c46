package scoring

import (
	"testing"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func TestEvaluate(t *testing.T) {
	ev := NewEvaluator(model.DefaultCatalog().Lexicon())

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"single char", "y", 0},
		{"exact no", "No", 1},
		{"exact no padded", "  no  ", 1},
		{"exact yes", "Yes", 4},
		{"no keywords", "Average performance overall", 3},
		{"one positive", "Fully integrated with the platform", 4},
		{"three positives no negatives", "Modern cloud automation", 5},
		{"one negative", "There are some manual steps", 2},
		{"two negatives", "A legacy system with manual workarounds", 1},
		{"negatives dominate positives", "Modern cloud automation, but manual legacy processes remain", 1},
		{"security gap", "Security controls are not centrally managed, no corporate integration", 1},
		{"iam gap", "IAM is not connected to the corporate directory", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ev.Evaluate(tc.answer); got != tc.want {
				t.Errorf("Evaluate(%q) = %d, want %d", tc.answer, got, tc.want)
			}
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	ev := NewEvaluator(model.DefaultCatalog().Lexicon())
	const answer = "Stable cloud deployment with some legacy components"
	first := ev.Evaluate(answer)
	for i := 0; i < 50; i++ {
		if got := ev.Evaluate(answer); got != first {
			t.Fatalf("run %d: Evaluate returned %d, previously %d", i, got, first)
		}
	}
}

func TestEvaluateRange(t *testing.T) {
	ev := NewEvaluator(model.DefaultCatalog().Lexicon())
	answers := []string{
		"", "no", "yes", "maybe later", "manual legacy obsolete",
		"modern secure strategic cloud", "security but no iam",
	}
	for _, a := range answers {
		got := ev.Evaluate(a)
		if got < 0 || got > 5 {
			t.Errorf("Evaluate(%q) = %d, outside 0..5", a, got)
		}
	}
}
