// Package registry holds the static table of languages the code execution
// sandbox and the editor understand.
package registry

import (
	"sort"
	"strings"
)

// DefaultEditorID is the editor syntax id used for unknown languages.
const DefaultEditorID = "plaintext"

// Language describes one executable language.
type Language struct {
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	RuntimeID int      `json:"runtime_id,omitempty"` // Judge0 language id; 0 means no runtime
	EditorID  string   `json:"editor_id"`
	Extension string   `json:"extension"`
	Aliases   []string `json:"aliases,omitempty"`
}

// Executable reports whether the sandbox has a runtime for the language.
func (l Language) Executable() bool {
	return l.RuntimeID > 0
}

var languages = []Language{
	{Slug: "python", Name: "Python", RuntimeID: 71, EditorID: "python", Extension: "py", Aliases: []string{"py", "python3"}},
	{Slug: "rust", Name: "Rust", RuntimeID: 73, EditorID: "rust", Extension: "rs", Aliases: []string{"rs"}},
	{Slug: "javascript", Name: "JavaScript", RuntimeID: 63, EditorID: "javascript", Extension: "js", Aliases: []string{"js", "node", "nodejs"}},
	{Slug: "java", Name: "Java", RuntimeID: 62, EditorID: "java", Extension: "java"},
	{Slug: "cpp", Name: "C++", RuntimeID: 54, EditorID: "cpp", Extension: "cpp", Aliases: []string{"cplusplus", "c++"}},
	{Slug: "c", Name: "C", RuntimeID: 50, EditorID: "c", Extension: "c", Aliases: []string{"clang"}},
	{Slug: "go", Name: "Go", RuntimeID: 60, EditorID: "go", Extension: "go", Aliases: []string{"golang"}},
	{Slug: "typescript", Name: "TypeScript", RuntimeID: 74, EditorID: "typescript", Extension: "ts", Aliases: []string{"ts"}},
	{Slug: "solidity", Name: "Solidity", EditorID: "sol", Extension: "sol", Aliases: []string{"sol"}},
}

var index = buildIndex()

func buildIndex() map[string]int {
	idx := make(map[string]int, len(languages)*2)
	for i, l := range languages {
		idx[l.Slug] = i
		for _, a := range l.Aliases {
			idx[a] = i
		}
	}
	return idx
}

// Lookup finds a language by slug or alias, case-insensitively.
func Lookup(nameOrAlias string) (Language, bool) {
	i, ok := index[strings.ToLower(strings.TrimSpace(nameOrAlias))]
	if !ok {
		return Language{}, false
	}
	return languages[i], true
}

// EditorID returns the editor syntax id for a language, or DefaultEditorID.
func EditorID(nameOrAlias string) string {
	if l, ok := Lookup(nameOrAlias); ok {
		return l.EditorID
	}
	return DefaultEditorID
}

// RuntimeID returns the sandbox runtime id for a language.
func RuntimeID(nameOrAlias string) (int, bool) {
	l, ok := Lookup(nameOrAlias)
	if !ok || !l.Executable() {
		return 0, false
	}
	return l.RuntimeID, true
}

// All returns every registered language sorted by slug.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
