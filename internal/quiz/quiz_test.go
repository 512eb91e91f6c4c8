package quiz

import (
	"reflect"
	"strings"
	"testing"
)

func authored(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			Question:   "Authored question " + string(rune('A'+i)),
			Options:    []string{"a", "b", "c", "d"},
			Answer:     "a",
			Difficulty: DifficultyEasy,
			Type:       "code",
		}
	}
	return qs
}

func TestEnsureMinimum_FillsDeficit(t *testing.T) {
	got := EnsureMinimum(authored(3), "Python Programming", "Functions and Scope in Python", 10)

	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}

	seen := map[string]bool{}
	for _, q := range got {
		if seen[q.Question] {
			t.Errorf("duplicate question %q", q.Question)
		}
		seen[q.Question] = true
	}

	for i, q := range got[3:] {
		if q.Difficulty != DifficultyMedium || q.Type != TypeTheory {
			t.Errorf("filler %d tagged %s/%s, want medium/theory", i, q.Difficulty, q.Type)
		}
		if !q.Generated {
			t.Errorf("filler %d not marked generated", i)
		}
		if len(q.Options) != 4 {
			t.Errorf("filler %d has %d options, want 4", i, len(q.Options))
		}
	}
	for i, q := range got[:3] {
		if q.Generated {
			t.Errorf("authored question %d marked generated", i)
		}
	}
}

func TestEnsureMinimum_AlreadyEnough(t *testing.T) {
	in := authored(12)
	got := EnsureMinimum(in, "Rust", "Ownership", 10)
	if len(got) != 12 {
		t.Errorf("len = %d, want 12 (unchanged)", len(got))
	}
}

func TestEnsureMinimum_WrapsTemplatePool(t *testing.T) {
	got := EnsureMinimum(nil, "Go", "Channels", 30)
	if len(got) != 30 {
		t.Fatalf("len = %d, want 30", len(got))
	}

	seen := map[string]bool{}
	suffixed := 0
	for _, q := range got {
		if seen[q.Question] {
			t.Errorf("duplicate question %q", q.Question)
		}
		seen[q.Question] = true
		if strings.Contains(q.Question, "(Concept ") {
			suffixed++
		}
	}
	if want := 30 - len(templates); suffixed != want {
		t.Errorf("suffixed = %d, want %d", suffixed, want)
	}
}

func TestEnsureMinimum_Deterministic(t *testing.T) {
	a := EnsureMinimum(authored(2), "Modern JavaScript", "Closures", 10)
	b := EnsureMinimum(authored(2), "Modern JavaScript", "Closures", 10)
	if !reflect.DeepEqual(a, b) {
		t.Error("EnsureMinimum is not deterministic for identical inputs")
	}
}

func TestEnsureMinimum_EmptyTopic(t *testing.T) {
	got := EnsureMinimum(nil, "", "Loops", 12)
	found := false
	for _, q := range got {
		if strings.Contains(q.Question, "Programming") {
			found = true
		}
		if strings.Contains(q.Question, "{topic}") || strings.Contains(q.Question, "{module}") {
			t.Errorf("unreplaced placeholder in %q", q.Question)
		}
	}
	if !found {
		t.Error("empty topic should be replaced by Programming")
	}
}

func TestEnsureMinimum_DoesNotMutateInput(t *testing.T) {
	in := authored(3)
	in = in[:3:3]
	_ = EnsureMinimum(in, "C", "Pointers", 10)
	if len(in) != 3 {
		t.Errorf("input length changed to %d", len(in))
	}
}

func TestQuestion_WithDefaults(t *testing.T) {
	q := Question{Question: "x"}.WithDefaults()
	if q.Difficulty != DifficultyMedium || q.Type != TypeTheory {
		t.Errorf("WithDefaults() = %s/%s, want medium/theory", q.Difficulty, q.Type)
	}
	q = Question{Difficulty: DifficultyHard, Type: "code"}.WithDefaults()
	if q.Difficulty != DifficultyHard || q.Type != "code" {
		t.Errorf("WithDefaults() overwrote set fields: %s/%s", q.Difficulty, q.Type)
	}
}
