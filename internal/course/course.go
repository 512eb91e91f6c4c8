// Package course assembles ten-module courses from AI output and the
// authored content tables.
package course

import (
	"github.com/p-n-ai/mentai/internal/classifier"
	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/quiz"
)

// Difficulty bands, fixed by module number.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Module sources.
const (
	SourceStatic = "static"
	SourceAI     = "ai"
)

// Course is an assembled course.
type Course struct {
	Title       string   `json:"course_title"`
	Description string   `json:"course_content"`
	Topic       string   `json:"topic"`
	Modules     []Module `json:"modules"`
	Metadata    Metadata `json:"metadata"`
}

// Metadata describes how the course topic was classified.
type Metadata struct {
	Language         string                 `json:"language"`
	CanonicalSlug    string                 `json:"canonical_slug"`
	ExecutionEnabled bool                   `json:"execution_enabled"`
	TopicType        classifier.ContentType `json:"topic_type"`
	IsPending        bool                   `json:"is_pending"`
	WasCorrected     bool                   `json:"is_correction,omitempty"`
}

// Module is one of the ten modules of a course.
type Module struct {
	ID               int                        `json:"id"`
	Name             string                     `json:"name"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	Difficulty       string                     `json:"difficulty"`
	Order            int                        `json:"order"`
	Content          string                     `json:"content"`
	Subsections      []Subsection               `json:"subsections"`
	Theory           string                     `json:"theory"`
	MiniProject      content.MiniProject        `json:"mini_project"`
	CodeExamples     []content.CodeExample      `json:"code_examples"`
	RealWorld        []content.RealWorldExample `json:"real_world_examples"`
	MiniLabs         []content.MiniLab          `json:"mini_labs"`
	Quiz             Quiz                       `json:"quiz"`
	LearningOutcome  string                     `json:"learning_outcome"`
	PracticeProblems []content.PracticeLink     `json:"practice_problems"`
	PreloadedCode    string                     `json:"preloaded_code"`
	Source           string                     `json:"source"`
}

// Subsection is a learning objective rendered as a section heading.
type Subsection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Quiz is a module's question set.
type Quiz struct {
	Title     string          `json:"title"`
	Questions []quiz.Question `json:"questions"`
}

// DifficultyFor returns the band of a module number: 1-3 beginner, 4-7
// intermediate, 8 and up advanced.
func DifficultyFor(module int) string {
	switch {
	case module <= 3:
		return Beginner
	case module <= 7:
		return Intermediate
	default:
		return Advanced
	}
}

// Module returns the module with the given id.
func (c *Course) Module(id int) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

func subsections(objectives []string) []Subsection {
	out := make([]Subsection, len(objectives))
	for i, o := range objectives {
		out[i] = Subsection{Title: o, Content: o}
	}
	return out
}
