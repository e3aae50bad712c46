package scoring

import (
	"testing"

	"github.com/ghcastellano/avangrid-apm/internal/model"
)

func TestLevenshteinRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "is the app used", "is the app used", 1},
		{"case and spacing", "Is  The App Used", "is the app used", 1},
		{"both empty", "", "", 1},
		{"one empty", "something", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LevenshteinRatio(tc.a, tc.b); got != tc.want {
				t.Errorf("LevenshteinRatio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}

	got := LevenshteinRatio("Is usage mandatory or optional for users?", "Is usage mandatory or optional for user?")
	if got < MasterMatchCutoff {
		t.Errorf("near-identical questions scored %v, want >= %v", got, MasterMatchCutoff)
	}
	if LevenshteinRatio("abc", "xyz") > 0.1 {
		t.Error("disjoint strings should score near zero")
	}
}

func TestMatchCanonical(t *testing.T) {
	r := NewResolver(model.DefaultCatalog(), nil)

	tests := []struct {
		name      string
		question  string
		wantText  string
		wantFound bool
	}{
		{
			"exact",
			"Is usage mandatory or optional for users?",
			"Is usage mandatory or optional for users?",
			true,
		},
		{
			"case insensitive",
			"is usage MANDATORY or optional for users?",
			"Is usage mandatory or optional for users?",
			true,
		},
		{
			"small typo",
			"Is usage mandatory or optionl for users?",
			"Is usage mandatory or optional for users?",
			true,
		},
		{"unrelated", "What did you have for breakfast?", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cq, ok := r.MatchCanonical(tc.question)
			if ok != tc.wantFound {
				t.Fatalf("MatchCanonical(%q) found=%v, want %v", tc.question, ok, tc.wantFound)
			}
			if ok && cq.Text != tc.wantText {
				t.Errorf("MatchCanonical(%q) = %q, want %q", tc.question, cq.Text, tc.wantText)
			}
		})
	}
}

func TestResolveMergesBySourceRank(t *testing.T) {
	r := NewResolver(model.DefaultCatalog(), nil)
	const question = "Is usage mandatory or optional for users?"

	resolved := r.Resolve(nil, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Optional"},
	}, model.RankTranscript, model.SourceTranscript)

	if got := resolved[question]; got == nil || got.AnswerText != "Optional" {
		t.Fatalf("initial resolve: got %+v", resolved[question])
	}

	// A lower-priority source must not overwrite
	r.Resolve(resolved, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Mandatory"},
	}, model.RankQuestionnaire, model.SourceQuestionnaire)
	if got := resolved[question].AnswerText; got != "Optional" {
		t.Errorf("lower rank overwrote: got %q", got)
	}

	// An equal-priority source wins, last write
	r.Resolve(resolved, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Mandatory for field crews"},
	}, model.RankTranscript, model.SourceTranscript)
	if got := resolved[question].AnswerText; got != "Mandatory for field crews" {
		t.Errorf("equal rank did not overwrite: got %q", got)
	}

	// A higher-priority source wins
	r.Resolve(resolved, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Mandatory everywhere"},
	}, model.RankExpertNotes, model.SourceExpertNotes)
	got := resolved[question]
	if got.AnswerText != "Mandatory everywhere" || got.LastSourceRank != model.RankExpertNotes {
		t.Errorf("higher rank did not overwrite: %+v", got)
	}
}

func TestResolveTrivialAnswerNeverOverwrites(t *testing.T) {
	r := NewResolver(model.DefaultCatalog(), nil)
	const question = "Is usage mandatory or optional for users?"

	resolved := r.Resolve(nil, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Optional"},
	}, model.RankQuestionnaire, model.SourceQuestionnaire)

	for _, trivial := range []string{"", " ", "-", "?"} {
		r.Resolve(resolved, []model.RawAnswer{
			{QuestionText: question, AnswerText: trivial},
		}, model.RankExpertNotes, model.SourceExpertNotes)
		if got := resolved[question].AnswerText; got != "Optional" {
			t.Errorf("trivial answer %q overwrote: got %q", trivial, got)
		}
	}
}

func TestResolveCarryForward(t *testing.T) {
	r := NewResolver(model.DefaultCatalog(), nil)
	const question = "What are the main technical challenges or limitations?"

	resolved := r.Resolve(nil, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Scaling problems"},
		{QuestionText: "also no offline mode on tablets", AnswerText: ""},
	}, model.RankQuestionnaire, model.SourceQuestionnaire)

	if got := resolved[question].AnswerText; got != "also no offline mode on tablets" {
		t.Errorf("continuation line not carried onto previous question: got %q", got)
	}

	// An unmatched row that looks like a question is dropped, not carried
	before := len(resolved)
	r.Resolve(resolved, []model.RawAnswer{
		{QuestionText: question, AnswerText: "Scaling problems"},
		{QuestionText: "What about something unrelated entirely?", AnswerText: ""},
	}, model.RankQuestionnaire, model.SourceQuestionnaire)
	if len(resolved) != before {
		t.Errorf("question-shaped orphan row created an entry: %d -> %d", before, len(resolved))
	}
	if got := resolved[question].AnswerText; got != "Scaling problems" {
		t.Errorf("orphan question row altered the previous answer: got %q", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(model.DefaultCatalog(), nil)
	batch := []model.RawAnswer{
		{QuestionText: "Is usage mandatory or optional for users?", AnswerText: "Mandatory"},
		{QuestionText: "What is the overall level of user satisfaction?", AnswerText: "Generally positive"},
	}

	resolved := r.Resolve(nil, batch, model.RankQuestionnaire, model.SourceQuestionnaire)
	snapshot := make(map[string]string, len(resolved))
	for k, v := range resolved {
		snapshot[k] = v.AnswerText
	}

	r.Resolve(resolved, batch, model.RankQuestionnaire, model.SourceQuestionnaire)
	if len(resolved) != len(snapshot) {
		t.Fatalf("re-resolving the same batch changed entry count: %d -> %d", len(snapshot), len(resolved))
	}
	for k, want := range snapshot {
		if got := resolved[k].AnswerText; got != want {
			t.Errorf("entry %q changed: %q -> %q", k, want, got)
		}
	}
}
