package content

import "github.com/p-n-ai/mentai/internal/quiz"

// Language is one language's authored tables, loaded from a YAML file.
type Language struct {
	Key      string                  `yaml:"key"`
	Name     string                  `yaml:"name"`
	Aliases  []string                `yaml:"aliases"`
	Titles   []string                `yaml:"titles"`
	Theory   map[int]string          `yaml:"theory"`
	Quizzes  map[int][]quiz.Question `yaml:"quizzes"`
	Labs     []LabContext            `yaml:"labs"`
	Snippets map[int][]string        `yaml:"snippets"`
	Stub     string                  `yaml:"stub"`
	Projects *ProjectSet             `yaml:"projects"`
	Examples []ExampleBand           `yaml:"examples"`
}

// LabContext is the title and description shared by one lab slot.
type LabContext struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tasks       []string `yaml:"tasks"`
}

// ProjectSet holds mini projects bucketed by module range.
type ProjectSet struct {
	Early MiniProject `yaml:"early"`
	Mid   MiniProject `yaml:"mid"`
	Late  MiniProject `yaml:"late"`
}

// ExampleBand is a set of code examples used from module From onwards.
type ExampleBand struct {
	From     int           `yaml:"from"`
	Examples []CodeExample `yaml:"examples"`
}

// CodeExample is a worked code sample.
type CodeExample struct {
	Title       string `json:"title" yaml:"title"`
	Code        string `json:"code" yaml:"code"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Language    string `json:"language" yaml:"language"`
}

// MiniLab is a short exercise with runnable starter code.
type MiniLab struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PreloadedCode string   `json:"preloaded_code"`
	Tasks         []string `json:"tasks"`
}

// MiniProject is a case-based exercise larger than a lab.
type MiniProject struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tasks       []string `json:"tasks" yaml:"tasks"`
}

// PracticeLink points at an external practice resource.
type PracticeLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// RealWorldExample describes an industry application of a module.
type RealWorldExample struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Solution        string `json:"solution"`
	LearningOutcome string `json:"learning_outcome"`
}

type practiceRule struct {
	Match   string         `yaml:"match"`
	Exclude string         `yaml:"exclude"`
	Links   []PracticeLink `yaml:"links"`
}

type practiceTable struct {
	Rules    []practiceRule `yaml:"rules"`
	Fallback []PracticeLink `yaml:"fallback"`
}
