package course_test

import (
	"sync"
	"testing"

	"github.com/p-n-ai/mentai/internal/course"
)

func TestMemoryCache(t *testing.T) {
	ctx := t.Context()
	mc := course.NewMemoryCache()

	if _, ok, err := mc.Get(ctx, "python programming"); ok || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v", ok, err)
	}

	in := &course.Course{Title: "Python", Modules: []course.Module{{ID: 1, Title: "Intro"}}}
	if err := mc.Put(ctx, "python programming", in); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	in.Title = "changed after put"

	got, ok, err := mc.Get(ctx, "python programming")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got.Title != "Python" || got.Modules[0].Title != "Intro" {
		t.Errorf("Get() = %+v", got)
	}

	if err := mc.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if mc.Len() != 0 {
		t.Errorf("Len() after Clear = %d", mc.Len())
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := t.Context()
	mc := course.NewMemoryCache()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := []string{"a", "b", "c"}[i%3]
			_ = mc.Put(ctx, key, &course.Course{Title: key})
			if c, ok, _ := mc.Get(ctx, key); ok && c.Title != key {
				t.Errorf("Get(%q).Title = %q", key, c.Title)
			}
		}()
	}
	wg.Wait()

	if mc.Len() != 3 {
		t.Errorf("Len() = %d, want 3", mc.Len())
	}
}
