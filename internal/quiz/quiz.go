// Package quiz holds quiz question types and the filler that tops a quiz up
// to its minimum size.
package quiz

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// MinQuestions is the minimum number of questions in an assembled quiz.
const MinQuestions = 10

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	TypeTheory = "theory"
)

// Question is a single multiple-choice question.
type Question struct {
	Question    string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Answer      string   `json:"answer" yaml:"answer"`
	Explanation string   `json:"explanation" yaml:"explanation"`
	Difficulty  string   `json:"difficulty" yaml:"difficulty"`
	Type        string   `json:"type" yaml:"type"`
	Generated   bool     `json:"generated,omitempty" yaml:"-"`
}

// WithDefaults fills a missing difficulty or type.
func (q Question) WithDefaults() Question {
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.Type == "" {
		q.Type = TypeTheory
	}
	return q
}

type template struct {
	question    string
	options     []string
	answer      string
	explanation string
}

var templates = []template{
	{"What is a key benefit of {topic} in the context of {module}?", []string{"Efficiency", "Complexity", "Latency", "Cost"}, "Efficiency", "Core advantage."},
	{"In {topic}, how does {module} affect performance?", []string{"Optimizes it", "Degrades it", "No effect", "Random"}, "Optimizes it", "Performance impact."},
	{"Which keyword is most associated with {module} in {topic}?", []string{"import", "class", "function", "var"}, "import", "Key syntax."},
	{"True or False: {module} is essential for {topic} applications.", []string{"True", "False", "Maybe", "Deprecated"}, "True", "Importance."},
	{"What is the primary use case for {module}?", []string{"Data Processing", "UI Rendering", "Network", "Security"}, "Data Processing", "Usage."},
	{"Debug: If {module} fails in {topic}, check:", []string{"Logs", "Power", "Internet", "Hardware"}, "Logs", "Troubleshooting."},
	{"Advanced: {module} relies on?", []string{"Abstraction", "Magic", "Luck", "None"}, "Abstraction", "Concept."},
	{"When to avoid using {module}?", []string{"Never", "Small scripts", "Always", "Production"}, "Small scripts", "Overhead."},
	{"Best practice for {module}?", []string{"Consistency", "Speed", "Short code", "Comments"}, "Consistency", "Maintainability."},
	{"{module} is strictly typed in {topic}?", []string{"Depends on lang", "Yes", "No", "Always"}, "Depends on lang", "Type system."},
	{"Legacy alternative to {module}?", []string{"Manual code", "AI", "Cloud", "None"}, "Manual code", "Historical."},
	{"Security implication of {module}?", []string{"Input validation", "None", "Speed", "Color"}, "Input validation", "Safety."},
}

// EnsureMinimum returns questions topped up to target with templated filler.
// The template order is shuffled once per (topic, module) pair and reused,
// so the same inputs always produce the same quiz. Filler questions are
// tagged medium/theory and marked Generated. The input slice is not modified.
func EnsureMinimum(questions []Question, topic, moduleTitle string, target int) []Question {
	if len(questions) >= target {
		return questions
	}

	if topic == "" {
		topic = "Programming"
	}

	order := shuffledTemplates(topic, moduleTitle)

	out := make([]Question, len(questions), target)
	copy(out, questions)

	seen := make(map[string]struct{}, target)
	for _, q := range out {
		seen[q.Question] = struct{}{}
	}

	r := strings.NewReplacer("{topic}", topic, "{module}", moduleTitle)
	needed := target - len(questions)
	for i := 0; i < needed; i++ {
		t := order[i%len(order)]
		text := r.Replace(t.question)
		if _, dup := seen[text]; dup {
			text = fmt.Sprintf("%s (Concept %d)", text, i+1)
		}
		seen[text] = struct{}{}

		out = append(out, Question{
			Question:    text,
			Options:     append([]string(nil), t.options...),
			Answer:      t.answer,
			Explanation: t.explanation,
			Difficulty:  DifficultyMedium,
			Type:        TypeTheory,
			Generated:   true,
		})
	}
	return out
}

func shuffledTemplates(topic, moduleTitle string) []template {
	h := fnv.New64a()
	h.Write([]byte(topic))
	h.Write([]byte{0})
	h.Write([]byte(moduleTitle))
	seed := h.Sum64()

	order := make([]template, len(templates))
	copy(order, templates)
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}
