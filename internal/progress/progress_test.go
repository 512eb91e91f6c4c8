package progress_test

import (
	"errors"
	"testing"
	"time"

	"github.com/p-n-ai/mentai/internal/progress"
)

func score(v float64) *float64 { return &v }

// exerciseStore runs the same scenario against any Store implementation.
func exerciseStore(t *testing.T, store progress.Store) {
	t.Helper()
	ctx := t.Context()

	if _, err := store.Get(ctx, "ada@example.com", "python"); !errors.Is(err, progress.ErrNotFound) {
		t.Fatalf("Get() before update error = %v, want ErrNotFound", err)
	}

	steps := []progress.Update{
		{UserID: "ada@example.com", TopicSlug: "python", ModuleID: 1},
		{UserID: "ada@example.com", TopicSlug: "python", ModuleID: 1, IsCompleted: true, QuizScore: score(80)},
		{UserID: "ada@example.com", TopicSlug: "python", ModuleID: 3, IsCompleted: true},
		{UserID: "ada@example.com", TopicSlug: "python", ModuleID: 1, IsCompleted: true, QuizScore: score(90)},
		{UserID: "ada@example.com", TopicSlug: "python"},
	}
	var p *progress.Progress
	var err error
	for i, u := range steps {
		p, err = store.Update(ctx, u)
		if err != nil {
			t.Fatalf("Update() step %d error = %v", i, err)
		}
	}

	if p.DisplayTitle != "Python" {
		t.Errorf("DisplayTitle = %q, want Python", p.DisplayTitle)
	}
	if p.CurrentModuleID != 1 {
		t.Errorf("CurrentModuleID = %d, want 1", p.CurrentModuleID)
	}
	if len(p.CompletedModules) != 2 || p.CompletedModules[0] != 1 || p.CompletedModules[1] != 3 {
		t.Errorf("CompletedModules = %v, want [1 3]", p.CompletedModules)
	}
	if p.QuizScores[1] != 90 || len(p.QuizScores) != 1 {
		t.Errorf("QuizScores = %v, want map[1:90]", p.QuizScores)
	}

	got, err := store.Get(ctx, "ada@example.com", "python")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.CompletedModules) != 2 || got.QuizScores[1] != 90 {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := store.Update(ctx, progress.Update{UserID: "ada@example.com", TopicSlug: "rust", DisplayTitle: "Rust Systems Programming", ModuleID: 2}); err != nil {
		t.Fatal(err)
	}
	list, err := store.List(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].TopicSlug != "python" || list[1].DisplayTitle != "Rust Systems Programming" {
		t.Errorf("List() = %+v", list)
	}

	empty, err := store.List(ctx, "nobody")
	if err != nil || len(empty) != 0 {
		t.Errorf("List(nobody) = %v, %v", empty, err)
	}

	for _, bad := range []progress.Update{{TopicSlug: "python"}, {UserID: "ada@example.com"}, {UserID: " ", TopicSlug: " "}} {
		if _, err := store.Update(ctx, bad); !errors.Is(err, progress.ErrInvalidUpdate) {
			t.Errorf("Update(%+v) error = %v, want ErrInvalidUpdate", bad, err)
		}
	}
	for _, id := range []int{-1, progress.TotalModules + 1} {
		bad := progress.Update{UserID: "ada@example.com", TopicSlug: "python", ModuleID: id, IsCompleted: true}
		if _, err := store.Update(ctx, bad); !errors.Is(err, progress.ErrInvalidModule) {
			t.Errorf("Update(module %d) error = %v, want ErrInvalidModule", id, err)
		}
	}
	if p, err := store.Get(ctx, "ada@example.com", "python"); err != nil || len(p.CompletedModules) != 2 {
		t.Errorf("rejected updates changed progress: %+v, %v", p, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, progress.NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := progress.NewMemoryStore()
	p, _ := store.Update(t.Context(), progress.Update{UserID: "u", TopicSlug: "go", ModuleID: 1, IsCompleted: true})
	p.CompletedModules[0] = 99

	got, _ := store.Get(t.Context(), "u", "go")
	if got.CompletedModules[0] != 1 {
		t.Errorf("stored progress mutated through returned value: %v", got.CompletedModules)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []progress.Progress{
		{TopicSlug: "python", DisplayTitle: "Python Programming", CurrentModuleID: 4, CompletedModules: []int{1, 2, 3}, LastVisitedAt: now.Add(-time.Hour)},
		{TopicSlug: "rust", DisplayTitle: "Rust Systems Programming", CurrentModuleID: 10, CompletedModules: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, LastVisitedAt: now},
		{TopicSlug: "react", DisplayTitle: "React Development", LastVisitedAt: now.Add(-2 * time.Hour)},
	}

	got := progress.Dashboard(records)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := []struct {
		slug    string
		count   int
		percent int
	}{
		{"rust", 10, 100},
		{"python", 3, 30},
		{"react", 0, 0},
	}
	for i, w := range want {
		if got[i].TopicSlug != w.slug || got[i].CompletedCount != w.count || got[i].PercentComplete != w.percent {
			t.Errorf("entry %d = %+v, want %s %d %d%%", i, got[i], w.slug, w.count, w.percent)
		}
	}
}

func TestDashboard_NeverExceedsFullCourse(t *testing.T) {
	store := progress.NewMemoryStore()
	for id := 1; id <= 15; id++ {
		u := progress.Update{UserID: "u", TopicSlug: "python", ModuleID: id, IsCompleted: true}
		_, err := store.Update(t.Context(), u)
		if id <= progress.TotalModules && err != nil {
			t.Fatalf("Update(module %d) error = %v", id, err)
		}
		if id > progress.TotalModules && !errors.Is(err, progress.ErrInvalidModule) {
			t.Errorf("Update(module %d) error = %v, want ErrInvalidModule", id, err)
		}
	}

	list, err := store.List(t.Context(), "u")
	if err != nil {
		t.Fatal(err)
	}
	got := progress.Dashboard(list)
	if len(got) != 1 || got[0].PercentComplete != 100 || got[0].CompletedCount != progress.TotalModules {
		t.Errorf("Dashboard() = %+v, want 100%% with %d modules", got, progress.TotalModules)
	}
}

func TestDashboard_Empty(t *testing.T) {
	got := progress.Dashboard(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Dashboard(nil) = %#v, want empty slice", got)
	}
}
