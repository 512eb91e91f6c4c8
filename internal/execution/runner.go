package execution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/mentai/internal/classifier"
	"github.com/p-n-ai/mentai/internal/registry"
)

var (
	// ErrExecutionDisabled is returned for topics whose type does not
	// allow running code.
	ErrExecutionDisabled = errors.New("code execution is not enabled for this topic")
	// ErrUnsupportedLanguage is returned when the topic's language has no
	// sandbox runtime.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrEmptyCode is returned when there is nothing to run.
	ErrEmptyCode = errors.New("code is required")
)

// Submitter sends a submission to a sandbox.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (Result, error)
}

// Runner classifies a topic and runs code in its language.
type Runner struct {
	sandbox Submitter
}

// NewRunner creates a Runner. A nil sandbox makes every run fail with
// ErrNotConfigured.
func NewRunner(sandbox Submitter) *Runner {
	return &Runner{sandbox: sandbox}
}

// Run executes code for topic.
func (r *Runner) Run(ctx context.Context, topic, code, stdin string) (Result, error) {
	if code == "" {
		return Result{}, ErrEmptyCode
	}

	res := classifier.Classify(topic)
	if !res.ExecutionEnabled {
		return Result{}, fmt.Errorf("%w: %s", ErrExecutionDisabled, res.ContentType)
	}

	runtimeID, ok := registry.RuntimeID(res.LanguageSlug)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, res.LanguageSlug)
	}

	if r.sandbox == nil {
		return Result{}, ErrNotConfigured
	}
	if c, ok := r.sandbox.(*Judge0Client); ok && !c.Configured() {
		return Result{}, ErrNotConfigured
	}

	out, err := r.sandbox.Submit(ctx, Submission{
		LanguageID: runtimeID,
		SourceCode: code,
		Stdin:      stdin,
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("code executed",
		"language", res.LanguageSlug,
		"runtime_id", runtimeID,
		"status", out.Status.Description,
	)
	return out, nil
}
