package content

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// markers identify code that belongs to a specific language family.
var markers = map[string]*regexp.Regexp{
	"python": regexp.MustCompile(`(?m)^\s*def \w+\(`),
	"js":     regexp.MustCompile(`console\.log\(`),
	"java":   regexp.MustCompile(`System\.out\.print`),
	"cinc":   regexp.MustCompile(`#include\s*<`),
	"cout":   regexp.MustCompile(`cout\s*<<`),
	"rust":   regexp.MustCompile(`fn main\(\)|println!\(`),
	"go":     regexp.MustCompile(`fmt\.Println\(`),
}

// allowedMarkers lists the families each language's code may contain.
var allowedMarkers = map[string][]string{
	"python":     {"python"},
	"javascript": {"js"},
	"typescript": {"js"},
	"react":      {"js"},
	"java":       {"java"},
	"cpp":        {"cinc", "cout"},
	"c":          {"cinc"},
	"rust":       {"rust"},
	"go":         {"go"},
}

// Issue is one problem found by Lint.
type Issue struct {
	Language string
	Module   int
	Marker   string
	Line     string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s module %d contains %s code: %q", i.Language, i.Module, i.Marker, i.Line)
}

// Lint scans every language's starter code and examples for code from
// another language family.
func (l *Library) Lint() []Issue {
	var issues []Issue
	names := slices.Sorted(maps.Keys(markers))
	for _, lang := range l.keys {
		allowed := map[string]bool{}
		for _, m := range allowedMarkers[lang] {
			allowed[m] = true
		}

		for module := 1; module <= ModuleCount; module++ {
			var code []string
			for _, lab := range l.MiniLabs(lang, "Module", module) {
				code = append(code, lab.PreloadedCode)
			}
			for _, ex := range l.CodeExamples(lang, module) {
				code = append(code, ex.Code)
			}

			for _, c := range code {
				for _, name := range names {
					if allowed[name] {
						continue
					}
					if loc := markers[name].FindStringIndex(c); loc != nil {
						issues = append(issues, Issue{Language: lang, Module: module, Marker: name, Line: lineAt(c, loc[0])})
					}
				}
			}
		}
	}
	return issues
}

// Pending returns the languages without an authored syllabus.
func (l *Library) Pending() []string {
	var out []string
	for _, key := range l.keys {
		if len(l.languages[key].Titles) == 0 {
			out = append(out, key)
		}
	}
	return out
}

func lineAt(s string, offset int) string {
	start := strings.LastIndexByte(s[:offset], '\n') + 1
	end := strings.IndexByte(s[offset:], '\n')
	if end < 0 {
		return strings.TrimSpace(s[start:])
	}
	return strings.TrimSpace(s[start : offset+end])
}
