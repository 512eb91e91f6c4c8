package content

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/p-n-ai/mentai/internal/quiz"
)

const labsPerModule = 3

var defaultLabs = []LabContext{
	{Title: "Fundamentals & Basics", Description: "Start with the core concepts."},
	{Title: "Logic & Application", Description: "Apply what you've learned."},
	{Title: "Advanced Challenge", Description: "Solve a complex problem."},
}

var defaultProjectTasks = []string{
	"Analyze the requirements",
	"Implement the core logic",
	"Test with edge cases",
}

var useCases = []string{
	"banking transaction systems using %s in %s",
	"e-commerce platforms leveraging %s in %s",
	"IoT device management with %s in %s",
	"data analytics pipelines built with %s in %s",
	"cloud-native microservices using %s in %s",
	"mobile app development with %s in %s",
	"AI/ML model deployment using %s in %s",
	"blockchain solutions with %s in %s",
	"real-time chat applications using %s in %s",
	"cybersecurity tools built with %s in %s",
}

// ModuleTitles returns the ten-title syllabus for a language. ok is false
// when no syllabus has been authored; callers must not invent one.
func (l *Library) ModuleTitles(lang string) (titles []string, ok bool) {
	t, found := l.lookup(lang)
	if !found || len(t.Titles) == 0 {
		return nil, false
	}
	return append([]string(nil), t.Titles...), true
}

// Theory returns the authored theory text, or an explicit pending marker.
func (l *Library) Theory(lang, moduleTitle string, module int) string {
	if t, ok := l.lookup(lang); ok {
		if text := t.Theory[module]; text != "" {
			return text
		}
	}
	return PendingTheory(lang, moduleTitle, module)
}

// PendingTheory is the placeholder shown when no theory has been authored.
func PendingTheory(lang, moduleTitle string, module int) string {
	return fmt.Sprintf("# %s\n## Content Pending\nSpecific theory content for **%s** - Module %d is currently being curated.\nPlease check back later or contribute to the curriculum.\n",
		moduleTitle, lang, module)
}

// IsPendingTheory reports whether text is the pending placeholder.
func IsPendingTheory(text string) bool {
	return strings.Contains(text, "\n## Content Pending\n")
}

// CodeExamples returns the examples of the latest band starting at or before
// module. Languages without authored examples get none.
func (l *Library) CodeExamples(lang string, module int) []CodeExample {
	t, ok := l.lookup(lang)
	if !ok {
		return []CodeExample{}
	}

	var band *ExampleBand
	for i := range t.Examples {
		b := &t.Examples[i]
		if b.From <= module && (band == nil || b.From > band.From) {
			band = b
		}
	}
	if band == nil {
		return []CodeExample{}
	}
	return append([]CodeExample(nil), band.Examples...)
}

// Snippet returns the starter code for a lab slot. Undefined slots fall back
// to the language's stub template.
func (l *Library) Snippet(lang string, module, lab int, moduleTitle string) string {
	t, ok := l.lookup(lang)
	if !ok {
		return fmt.Sprintf("// Code for %s", moduleTitle)
	}
	if slots := t.Snippets[module]; lab >= 0 && lab < len(slots) && slots[lab] != "" {
		return slots[lab]
	}
	if t.Stub == "" {
		return fmt.Sprintf("// Code for %s", moduleTitle)
	}
	return strings.NewReplacer(
		"{lab}", strconv.Itoa(lab+1),
		"{module}", moduleTitle,
	).Replace(t.Stub)
}

// MiniLabs returns exactly three labs for a module, easiest first.
func (l *Library) MiniLabs(lang, moduleTitle string, module int) []MiniLab {
	contexts := defaultLabs
	if t, ok := l.lookup(lang); ok && len(t.Labs) > 0 {
		contexts = t.Labs
	}

	labs := make([]MiniLab, labsPerModule)
	for i := range labs {
		ctx := LabContext{Title: fmt.Sprintf("Lab %d", i+1), Description: "Practice exercise."}
		if i < len(contexts) {
			ctx = contexts[i]
		}

		tasks := append([]string(nil), ctx.Tasks...)
		if len(tasks) == 0 {
			tasks = []string{
				fmt.Sprintf("Task %d.1: Analyze the code", i+1),
				fmt.Sprintf("Task %d.2: Modify and Run", i+1),
			}
		}

		labs[i] = MiniLab{
			Title:         fmt.Sprintf("Lab %d: %s", i+1, ctx.Title),
			Description:   ctx.Description,
			PreloadedCode: l.Snippet(lang, module, i, moduleTitle),
			Tasks:         tasks,
		}
	}
	return labs
}

// MiniProject returns the project for the module's early, mid or late bucket.
func (l *Library) MiniProject(lang, moduleTitle string, module int) MiniProject {
	p := MiniProject{
		Title:       moduleTitle + " Project",
		Description: "Apply what you've learned to build a functional tool.",
	}

	if t, ok := l.lookup(lang); ok && t.Projects != nil {
		idx := module - 1
		switch {
		case idx <= 2:
			p = t.Projects.Early
		case idx <= 6:
			p = t.Projects.Mid
		default:
			p = t.Projects.Late
		}
	}

	if len(p.Tasks) == 0 {
		p.Tasks = defaultProjectTasks
	}
	p.Tasks = append([]string(nil), p.Tasks...)
	return p
}

// Quiz returns the authored questions for a module, defaulted and topped up
// to quiz.MinQuestions.
func (l *Library) Quiz(lang, topic, moduleTitle string, module int) []quiz.Question {
	var qs []quiz.Question
	if t, ok := l.lookup(lang); ok {
		for _, q := range t.Quizzes[module] {
			qs = append(qs, q.WithDefaults())
		}
	}
	return quiz.EnsureMinimum(qs, topic, moduleTitle, quiz.MinQuestions)
}

// PracticeProblems returns curated links for the first rule whose match is a
// substring of topic, or generic search links.
func (l *Library) PracticeProblems(topic string) []PracticeLink {
	lower := strings.ToLower(topic)
	for _, r := range l.practice.Rules {
		if !strings.Contains(lower, r.Match) {
			continue
		}
		if r.Exclude != "" && strings.Contains(lower, r.Exclude) {
			continue
		}
		return append([]PracticeLink(nil), r.Links...)
	}

	tag := url.PathEscape(strings.Join(strings.Fields(lower), "-"))
	links := make([]PracticeLink, len(l.practice.Fallback))
	for i, f := range l.practice.Fallback {
		links[i] = PracticeLink{Name: f.Name, URL: strings.ReplaceAll(f.URL, "{topic}", tag)}
	}
	return links
}

// Objectives returns the learning objectives for a module.
func Objectives(lang, moduleTitle string) []string {
	return []string{
		fmt.Sprintf("Understand the core concepts of %s in %s", moduleTitle, lang),
		fmt.Sprintf("Apply %s techniques to solve problems", moduleTitle),
		fmt.Sprintf("Write clean, efficient %s code demonstrating %s", lang, moduleTitle),
		fmt.Sprintf("Debug and troubleshoot issues related to %s", moduleTitle),
	}
}

// RealWorld returns the industry example for a module, rotating through ten
// use cases by module position.
func RealWorld(lang, moduleTitle string, module int) RealWorldExample {
	lower := strings.ToLower(moduleTitle)
	idx := (module - 1) % len(useCases)
	if idx < 0 {
		idx = 0
	}
	useCase := fmt.Sprintf(useCases[idx], lower, lang)
	return RealWorldExample{
		Title:           moduleTitle + " in Industry",
		Description:     fmt.Sprintf("Discover how %s is applied in real-world %s projects, such as %s.", lower, lang, useCase),
		Solution:        fmt.Sprintf("Implement %s to address challenges in %s development.", lower, lang),
		LearningOutcome: fmt.Sprintf("Gain insight into the professional application of %s in %s.", lower, lang),
	}
}

// LearningOutcome is the closing statement of a module.
func LearningOutcome(lang, moduleTitle string) string {
	return fmt.Sprintf("After completing this module, you will be able to apply %s in %s to solve real-world problems and build advanced applications.",
		strings.ToLower(moduleTitle), lang)
}
