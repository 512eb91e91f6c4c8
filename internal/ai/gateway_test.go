package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/p-n-ai/mentai/internal/ai"
)

func TestMockProvider_Complete(t *testing.T) {
	mock := ai.NewMockProvider("test response")

	resp, err := mock.Complete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "user", Content: "Hello"},
		},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "test response" {
		t.Errorf("Content = %q, want %q", resp.Content, "test response")
	}
	if resp.Model != "mock" {
		t.Errorf("Model = %q, want %q", resp.Model, "mock")
	}
	if got := mock.LastRequest(); got == nil || got.Messages[0].Content != "Hello" {
		t.Errorf("LastRequest() = %+v, want the Hello request", got)
	}
}

func TestMockProvider_Reply(t *testing.T) {
	mock := &ai.MockProvider{Reply: func(req ai.CompletionRequest) (string, error) {
		if req.Task == ai.TaskMentor {
			return "", errors.New("no mentor")
		}
		return req.Task.String(), nil
	}}

	resp, err := mock.Complete(context.Background(), ai.CompletionRequest{Task: ai.TaskModuleContent})
	if err != nil || resp.Content != "module_content" {
		t.Errorf("Complete() = %q, %v; want module_content", resp.Content, err)
	}
	if _, err := mock.Complete(context.Background(), ai.CompletionRequest{Task: ai.TaskMentor}); err == nil {
		t.Error("Complete() should surface the Reply error")
	}
	if n := len(mock.Requests()); n != 2 {
		t.Errorf("Requests() = %d, want 2", n)
	}
}

func TestMockProvider_StreamComplete(t *testing.T) {
	mock := ai.NewMockProvider("streamed")
	ch, err := mock.StreamComplete(context.Background(), ai.CompletionRequest{})
	if err != nil {
		t.Fatalf("StreamComplete() error = %v", err)
	}
	chunk := <-ch
	if chunk.Content != "streamed" || !chunk.Done || chunk.InputTokens != 10 || chunk.OutputTokens != len("streamed") {
		t.Errorf("chunk = %+v", chunk)
	}
}

func TestMockProvider_HealthCheck(t *testing.T) {
	mock := ai.NewMockProvider("response")
	if err := mock.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestTaskType_String(t *testing.T) {
	tests := []struct {
		task     ai.TaskType
		expected string
	}{
		{ai.TaskCourseStructure, "course_structure"},
		{ai.TaskModuleContent, "module_content"},
		{ai.TaskMentor, "mentor"},
		{ai.TaskType(99), "unknown"},
	}
	for _, tt := range tests {
		if tt.task.String() != tt.expected {
			t.Errorf("TaskType.String() = %q, want %q", tt.task.String(), tt.expected)
		}
	}
}

func TestCompletionResponse_TotalTokens(t *testing.T) {
	resp := ai.CompletionResponse{InputTokens: 100, OutputTokens: 50}
	if got := resp.TotalTokens(); got != 150 {
		t.Errorf("TotalTokens() = %d, want 150", got)
	}
}
