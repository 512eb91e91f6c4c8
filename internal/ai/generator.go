package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/quiz"
)

// GeneralLanguage is the syntax language of topics nothing is authored for.
const GeneralLanguage = "general"

// Structure is an AI-generated course outline.
type Structure struct {
	Title       string            `json:"course_title"`
	Description string            `json:"course_description"`
	Modules     []StructureModule `json:"modules"`
}

// StructureModule is one module of an outline.
type StructureModule struct {
	Number     int      `json:"module_number"`
	Title      string   `json:"title"`
	Objectives []string `json:"learning_objectives"`
	// Description and Difficulty are advisory; difficulty is always
	// recomputed from the module number.
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

// ModuleContent is the AI-generated body of one module.
type ModuleContent struct {
	Content      string                     `json:"content"`
	CodeExamples []content.CodeExample      `json:"code_examples"`
	MiniLabs     []Lab                      `json:"mini_labs"`
	Quizzes      []quiz.Question            `json:"quizzes"`
	RealWorld    []content.RealWorldExample `json:"real_world_examples"`
}

// Lab is an AI-generated mini lab. It carries no starter code.
type Lab struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Tasks           []string `json:"tasks"`
	ExpectedOutcome string   `json:"expected_outcome"`
}

// rawModule mirrors the reply, whose quiz answers use "correct_answer".
type rawModule struct {
	Content      string                     `json:"content"`
	CodeExamples []content.CodeExample      `json:"code_examples"`
	MiniLabs     []Lab                      `json:"mini_labs"`
	Quizzes      []rawQuestion              `json:"quizzes"`
	RealWorld    []content.RealWorldExample `json:"real_world_examples"`
}

type rawQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"correct_answer"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
	Type        string   `json:"type"`
}

// Generator produces course material with an AI provider. Every method
// reports failure as a false second result and never returns an error.
type Generator struct {
	provider  Provider
	maxTokens int
}

// NewGenerator creates a Generator. A nil provider yields a Generator that
// is never available.
func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider, maxTokens: 8192}
}

// Available reports whether a provider is configured.
func (g *Generator) Available() bool {
	if g == nil || g.provider == nil {
		return false
	}
	if r, ok := g.provider.(interface{ HasProvider() bool }); ok {
		return r.HasProvider()
	}
	return true
}

// GenerateStructure asks for a course outline. The outline must hold at
// least one titled module.
func (g *Generator) GenerateStructure(ctx context.Context, topic, language string) (*Structure, bool) {
	if !g.Available() {
		return nil, false
	}

	raw, ok := g.complete(ctx, TaskCourseStructure, StructurePrompt(topic, language), "topic", topic)
	if !ok {
		return nil, false
	}
	s, err := decodeReply[Structure](raw, structureValidator)
	if err != nil {
		slog.Warn("discarding AI course structure", "topic", topic, "error", err)
		return nil, false
	}
	return &s, true
}

// GenerateModuleContent asks for the body of one module. Nothing is
// requested for the general language.
func (g *Generator) GenerateModuleContent(ctx context.Context, topic, language, moduleTitle string, moduleNumber int) (*ModuleContent, bool) {
	if !g.Available() || language == GeneralLanguage {
		return nil, false
	}

	prompt := ModulePrompt(topic, language, moduleTitle, moduleNumber)
	raw, ok := g.complete(ctx, TaskModuleContent, prompt, "topic", topic, "module", moduleNumber)
	if !ok {
		return nil, false
	}
	m, err := decodeReply[rawModule](raw, moduleValidator)
	if err != nil {
		slog.Warn("discarding AI module content",
			"topic", topic,
			"module", moduleNumber,
			"error", err,
		)
		return nil, false
	}

	out := &ModuleContent{
		Content:      m.Content,
		CodeExamples: m.CodeExamples,
		MiniLabs:     m.MiniLabs,
		RealWorld:    m.RealWorld,
	}
	for _, q := range m.Quizzes {
		out.Quizzes = append(out.Quizzes, quiz.Question{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Difficulty:  strings.ToLower(q.Difficulty),
			Type:        q.Type,
		}.WithDefaults())
	}
	return out, true
}

func (g *Generator) complete(ctx context.Context, task TaskType, prompt string, logAttrs ...any) (string, bool) {
	resp, err := g.provider.Complete(ctx, CompletionRequest{
		Messages:  []Message{{Role: "user", Content: prompt}},
		Task:      task,
		MaxTokens: g.maxTokens,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("AI generation failed", append(logAttrs, "task", task.String(), "error", err)...)
		return "", false
	}
	return resp.Content, true
}
