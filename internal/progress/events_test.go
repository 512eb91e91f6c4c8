package progress_test

import (
	"testing"

	"github.com/p-n-ai/mentai/internal/progress"
)

func TestMemoryEventLogger_LogEvent(t *testing.T) {
	logger := progress.NewMemoryEventLogger()

	err := logger.LogEvent(t.Context(), progress.Event{
		UserID:    "user-1",
		EventType: progress.EventCourseGenerated,
		Data: map[string]any{
			"topic": "Python Programming",
		},
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events := logger.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].EventType != progress.EventCourseGenerated {
		t.Errorf("EventType = %q, want %s", events[0].EventType, progress.EventCourseGenerated)
	}
	if events[0].CreatedAt.IsZero() || events[0].ID == "" {
		t.Error("CreatedAt and ID should be set")
	}
}

func TestMemoryEventLogger_RequiresType(t *testing.T) {
	if err := progress.NewMemoryEventLogger().LogEvent(t.Context(), progress.Event{}); err == nil {
		t.Fatal("expected error for missing event type")
	}
}

func TestPostgresEventLogger_LogEvent_NilPool(t *testing.T) {
	logger := progress.NewPostgresEventLogger(nil)

	err := logger.LogEvent(t.Context(), progress.Event{
		EventType: progress.EventMentorAsked,
	})
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}

func TestNewPostgresStore_NilPool(t *testing.T) {
	if _, err := progress.NewPostgresStore(nil); err == nil {
		t.Fatal("expected error for nil pool")
	}
}
