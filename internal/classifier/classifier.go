// Package classifier resolves a free-text topic into a canonical language
// entry: content type, syntax language and whether code can be executed.
package classifier

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ContentType is the kind of material a topic produces.
type ContentType string

const (
	Executable ContentType = "EXECUTABLE"
	Framework  ContentType = "FRAMEWORK"
	Theory     ContentType = "THEORY"
	Markup     ContentType = "MARKUP"
)

// GeneralSlug is the slug assigned to topics that match nothing.
const GeneralSlug = "general"

// FuzzyCutoff is the minimum similarity ratio for a fuzzy correction.
const FuzzyCutoff = 0.6

// Result is the outcome of classifying a topic.
type Result struct {
	ContentType      ContentType `json:"type"`
	LanguageSlug     string      `json:"language"`
	ExecutionEnabled bool        `json:"execution_enabled"`
	DisplayTitle     string      `json:"display_title"`
	CanonicalSlug    string      `json:"canonical_slug"`
	WasCorrected     bool        `json:"is_correction"`
}

// Unknown reports whether the topic fell through to the general fallback.
func (r Result) Unknown() bool {
	return r.CanonicalSlug == GeneralSlug
}

type entry struct {
	contentType ContentType
	language    string
	execution   bool
	title       string
}

var aliases = map[string]string{
	"py":      "python",
	"python3": "python",
	"js":      "javascript",
	"node":    "javascript",
	"nodejs":  "javascript",
	"ts":      "typescript",
	"cpp":     "c++",
	"rs":      "rust",
	"sol":     "solidity",
	"reactjs": "react",
	"nextjs":  "next.js",
	"next":    "next.js",
	"csharp":  "c#",
	"golang":  "go",
}

var registry = map[string]entry{
	"python":     {Executable, "python", true, "Python Programming"},
	"java":       {Executable, "java", true, "Java Programming"},
	"c++":        {Executable, "cpp", true, "C++ Programming"},
	"javascript": {Executable, "javascript", true, "Modern JavaScript"},
	"rust":       {Executable, "rust", true, "Rust Systems Programming"},
	"go":         {Executable, "go", true, "Go (Golang)"},
	"c":          {Executable, "c", true, "C Programming"},

	"react":   {Framework, "javascript", false, "React Development"},
	"next.js": {Framework, "javascript", false, "Next.js Framework"},
	"vue":     {Framework, "javascript", false, "Vue.js"},
	"angular": {Framework, "javascript", false, "Angular"},
	"express": {Framework, "javascript", false, "Express.js"},
	"django":  {Framework, "python", false, "Django Web Framework"},
	"flask":   {Framework, "python", false, "Flask Web Development"},
	"spring":  {Framework, "java", false, "Spring Boot"},

	"html":     {Markup, "html", false, "HTML5"},
	"css":      {Markup, "css", false, "CSS3"},
	"sql":      {Theory, GeneralSlug, false, "SQL Database Design"},
	"mongodb":  {Theory, GeneralSlug, false, "MongoDB Fundamentals"},
	"solidity": {Theory, GeneralSlug, false, "Solidity & Smart Contracts"},
	"dart":     {Theory, GeneralSlug, false, "Dart & Flutter"},

	"ruby":   {Executable, "ruby", true, "Ruby Programming"},
	"c#":     {Executable, "csharp", true, "C# Development"},
	"swift":  {Executable, "swift", true, "Swift iOS Development"},
	"kotlin": {Executable, "kotlin", true, "Kotlin Android Development"},
	"php":    {Executable, "php", true, "PHP Web Development"},
}

// keys is the registry key set in a stable order so fuzzy ties resolve the
// same way on every run.
var keys = sortedKeys()

func sortedKeys() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Classify resolves a topic. It never fails: unknown topics become a
// THEORY/general result with execution disabled.
func Classify(topic string) Result {
	cleaned := Normalize(topic)

	if canonical, ok := aliases[cleaned]; ok {
		cleaned = canonical
	}

	if _, ok := registry[cleaned]; ok {
		return resultFor(cleaned, false)
	}

	if best, ok := closestKey(cleaned); ok {
		return resultFor(best, true)
	}

	return Result{
		ContentType:      Theory,
		LanguageSlug:     GeneralSlug,
		ExecutionEnabled: false,
		DisplayTitle:     "Introduction to " + cases.Title(language.Und).String(strings.TrimSpace(topic)),
		CanonicalSlug:    GeneralSlug,
	}
}

// Normalize folds a topic into the form used for lookups.
func Normalize(topic string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(topic)))
}

// Known reports whether slug is a registry key.
func Known(slug string) bool {
	_, ok := registry[slug]
	return ok
}

func resultFor(key string, corrected bool) Result {
	e := registry[key]
	return Result{
		ContentType:      e.contentType,
		LanguageSlug:     e.language,
		ExecutionEnabled: e.execution,
		DisplayTitle:     e.title,
		CanonicalSlug:    key,
		WasCorrected:     corrected,
	}
}

// closestKey returns the single registry key most similar to word, provided
// it clears FuzzyCutoff. Near ties are not reported; the higher key wins.
func closestKey(word string) (string, bool) {
	if word == "" {
		return "", false
	}

	m := difflib.NewMatcher(nil, splitChars(word))
	bestKey := ""
	bestRatio := 0.0
	for _, k := range keys {
		m.SetSeq1(splitChars(k))
		if m.RealQuickRatio() < FuzzyCutoff || m.QuickRatio() < FuzzyCutoff {
			continue
		}
		r := m.Ratio()
		if r < FuzzyCutoff {
			continue
		}
		if r > bestRatio || (r == bestRatio && k > bestKey) {
			bestKey, bestRatio = k, r
		}
	}
	return bestKey, bestKey != ""
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
