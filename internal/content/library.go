// Package content serves the authored course tables: syllabi, theory, labs,
// quizzes, projects and practice links for each language.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModuleCount is the number of modules in every authored syllabus.
const ModuleCount = 10

const practiceFile = "practice.yaml"

//go:embed data/*.yaml
var embedded embed.FS

// Library is an immutable index over the loaded tables. It is safe for
// concurrent use.
type Library struct {
	languages map[string]*Language // keyed by key and every alias
	keys      []string
	practice  practiceTable
}

// NewEmbedded loads the tables compiled into the binary.
func NewEmbedded() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return Load(sub)
}

// LoadDir loads tables from a directory on disk.
func LoadDir(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %q is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads every YAML file in fsys. Each language file must carry a key
// and, when it has a syllabus, exactly ModuleCount titles.
func Load(fsys fs.FS) (*Library, error) {
	l := &Library{languages: make(map[string]*Language)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		if path.Base(p) == practiceFile {
			if err := yaml.Unmarshal(data, &l.practice); err != nil {
				return fmt.Errorf("parsing %s: %w", p, err)
			}
			return nil
		}
		return l.addLanguage(p, data)
	})
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	if len(l.keys) == 0 {
		return nil, fmt.Errorf("loading content: no language files found")
	}

	slog.Info("content loaded", "languages", len(l.keys), "practice_rules", len(l.practice.Rules))
	return l, nil
}

func (l *Library) addLanguage(p string, data []byte) error {
	var lang Language
	if err := yaml.Unmarshal(data, &lang); err != nil {
		return fmt.Errorf("parsing %s: %w", p, err)
	}
	if lang.Key == "" {
		slog.Warn("skipping content file without key", "path", p)
		return nil
	}
	if n := len(lang.Titles); n != 0 && n != ModuleCount {
		return fmt.Errorf("%s: syllabus has %d titles, want %d", p, n, ModuleCount)
	}
	if len(lang.Labs) > labsPerModule {
		return fmt.Errorf("%s: %d lab contexts, want at most %d", p, len(lang.Labs), labsPerModule)
	}

	key := strings.ToLower(lang.Key)
	if _, dup := l.languages[key]; dup {
		return fmt.Errorf("%s: duplicate language key %q", p, key)
	}

	l.languages[key] = &lang
	l.keys = append(l.keys, key)
	for _, a := range lang.Aliases {
		a = strings.ToLower(a)
		if _, taken := l.languages[a]; !taken {
			l.languages[a] = &lang
		}
	}
	return nil
}

// Languages returns the primary key of every loaded language.
func (l *Library) Languages() []string {
	return append([]string(nil), l.keys...)
}

// Name returns the display name for a language, or the input unchanged.
func (l *Library) Name(lang string) string {
	if t, ok := l.lookup(lang); ok && t.Name != "" {
		return t.Name
	}
	return lang
}

func (l *Library) lookup(lang string) (*Language, bool) {
	t, ok := l.languages[strings.ToLower(strings.TrimSpace(lang))]
	return t, ok
}
