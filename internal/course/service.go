package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/p-n-ai/mentai/internal/ai"
	"github.com/p-n-ai/mentai/internal/classifier"
	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/quiz"
)

// ErrEmptyTopic is returned when the requested topic is blank.
var ErrEmptyTopic = errors.New("topic is required")

// Config holds dependencies for the course service.
type Config struct {
	Library   *content.Library // required
	Generator *ai.Generator    // optional; nil disables AI generation
	Cache     Cache            // optional; defaults to a MemoryCache
}

// Service generates courses.
type Service struct {
	lib   *content.Library
	gen   *ai.Generator
	cache Cache
}

// NewService creates a course service.
func NewService(cfg Config) *Service {
	c := cfg.Cache
	if c == nil {
		c = NewMemoryCache()
	}
	return &Service{lib: cfg.Library, gen: cfg.Generator, cache: c}
}

// Library returns the content tables the service reads from.
func (s *Service) Library() *content.Library {
	return s.lib
}

// CacheKey is the cache key of a classified topic.
func CacheKey(res classifier.Result) string {
	return strings.ToLower(res.DisplayTitle)
}

// Generate returns the course for topic. The only error is ErrEmptyTopic;
// AI, cache and content gaps are recovered locally.
func (s *Service) Generate(ctx context.Context, topic string) (*Course, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}

	res := classifier.Classify(topic)
	key := CacheKey(res)

	if c, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("course cache read failed", "key", key, "error", err)
	} else if ok {
		slog.Debug("course cache hit", "key", key)
		return c, nil
	}

	c := s.assemble(ctx, res)

	if err := s.cache.Put(ctx, key, c); err != nil {
		slog.Warn("course cache write failed", "key", key, "error", err)
	}

	slog.Info("course generated",
		"topic", c.Topic,
		"slug", res.CanonicalSlug,
		"language", res.LanguageSlug,
		"modules", len(c.Modules),
		"pending", c.Metadata.IsPending,
	)
	return c, nil
}

// ClearCache drops every cached course.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// contentKey picks the tables a topic reads from: its own when a syllabus
// is authored for it, otherwise those of its syntax language. React keeps
// react.yaml while Django reads python.yaml.
func (s *Service) contentKey(res classifier.Result) string {
	if _, ok := s.lib.ModuleTitles(res.CanonicalSlug); ok {
		return res.CanonicalSlug
	}
	return res.LanguageSlug
}

func (s *Service) assemble(ctx context.Context, res classifier.Result) *Course {
	key := s.contentKey(res)

	if res.LanguageSlug != ai.GeneralLanguage && s.gen.Available() {
		if c, ok := s.fromAI(ctx, res, key); ok {
			return c
		}
	}

	titles, ok := s.lib.ModuleTitles(key)
	if !ok {
		return pendingCourse(res)
	}

	c := newCourse(res,
		fmt.Sprintf("Complete %s Mastery Course", res.DisplayTitle),
		fmt.Sprintf("A comprehensive course covering %s.", res.DisplayTitle),
	)
	for i, title := range titles {
		c.Modules = append(c.Modules, s.staticModule(res, key, title, i+1))
	}
	return c
}

func (s *Service) fromAI(ctx context.Context, res classifier.Result, key string) (*Course, bool) {
	topic, lang := res.DisplayTitle, res.LanguageSlug

	outline, ok := s.gen.GenerateStructure(ctx, topic, lang)
	if !ok {
		return nil, false
	}

	if len(outline.Modules) < content.ModuleCount {
		slog.Warn("discarding short AI course structure", "topic", topic, "modules", len(outline.Modules))
		return nil, false
	}
	mods := outline.Modules[:content.ModuleCount]

	title := outline.Title
	if title == "" {
		title = fmt.Sprintf("Complete %s Mastery Course", topic)
	}
	desc := outline.Description
	if desc == "" {
		desc = fmt.Sprintf("A comprehensive course covering %s.", topic)
	}
	c := newCourse(res, title, desc)

	for i, sm := range mods {
		n := i + 1
		m := s.staticModule(res, key, sm.Title, n)
		m.Description = sm.Description
		if len(sm.Objectives) > 0 {
			m.Subsections = subsections(sm.Objectives)
		}

		body, ok := s.gen.GenerateModuleContent(ctx, topic, lang, sm.Title, n)
		if !ok {
			slog.Info("using authored content for module", "topic", topic, "module", n)
			c.Modules = append(c.Modules, m)
			continue
		}
		c.Modules = append(c.Modules, s.mergeAI(res, m, body))
	}
	return c, true
}

// mergeAI overlays generated content on a table-built module, keeping the
// module's shape: three labs and at least quiz.MinQuestions questions.
func (s *Service) mergeAI(res classifier.Result, m Module, body *ai.ModuleContent) Module {
	m.Source = SourceAI
	if body.Content != "" {
		m.Content = body.Content
	}
	if len(body.CodeExamples) > 0 {
		m.CodeExamples = body.CodeExamples
	}
	if len(body.RealWorld) > 0 {
		m.RealWorld = body.RealWorld
	}

	for i := 0; i < len(m.MiniLabs) && i < len(body.MiniLabs); i++ {
		lab := body.MiniLabs[i]
		m.MiniLabs[i].Title = lab.Title
		m.MiniLabs[i].Description = lab.Description
		if len(lab.Tasks) > 0 {
			m.MiniLabs[i].Tasks = lab.Tasks
		}
	}

	seen := make(map[string]bool, len(body.Quizzes))
	var qs []quiz.Question
	for _, q := range body.Quizzes {
		if seen[q.Question] {
			continue
		}
		seen[q.Question] = true
		qs = append(qs, q)
	}
	if len(qs) > 0 {
		m.Quiz.Questions = quiz.EnsureMinimum(qs, res.DisplayTitle, m.Title, quiz.MinQuestions)
	}
	return m
}

func (s *Service) staticModule(res classifier.Result, slug, title string, n int) Module {
	lang, topic := res.LanguageSlug, res.DisplayTitle

	labs := s.lib.MiniLabs(slug, title, n)
	return Module{
		ID:               n,
		Name:             fmt.Sprintf("Module %d: %s", n, title),
		Title:            title,
		Difficulty:       DifficultyFor(n),
		Order:            n,
		Content:          fmt.Sprintf("Module %d: %s", n, title),
		Subsections:      subsections(content.Objectives(lang, title)),
		Theory:           s.lib.Theory(slug, title, n),
		MiniProject:      s.lib.MiniProject(slug, title, n),
		CodeExamples:     s.lib.CodeExamples(slug, n),
		RealWorld:        []content.RealWorldExample{content.RealWorld(lang, title, n)},
		MiniLabs:         labs,
		Quiz:             Quiz{Title: "Quiz: " + title, Questions: s.lib.Quiz(slug, topic, title, n)},
		LearningOutcome:  content.LearningOutcome(lang, title),
		PracticeProblems: s.lib.PracticeProblems(topic),
		PreloadedCode:    labs[0].PreloadedCode,
		Source:           SourceStatic,
	}
}

func newCourse(res classifier.Result, title, desc string) *Course {
	return &Course{
		Title:       title,
		Description: desc,
		Topic:       res.DisplayTitle,
		Modules:     []Module{},
		Metadata: Metadata{
			Language:         res.LanguageSlug,
			CanonicalSlug:    res.CanonicalSlug,
			ExecutionEnabled: res.ExecutionEnabled,
			TopicType:        res.ContentType,
			WasCorrected:     res.WasCorrected,
		},
	}
}

func pendingCourse(res classifier.Result) *Course {
	c := newCourse(res,
		fmt.Sprintf("%s (Pending Content)", res.DisplayTitle),
		fmt.Sprintf("We are actively building structured content for %s. Interactive modules are coming soon.", res.DisplayTitle),
	)
	c.Metadata.ExecutionEnabled = false
	c.Metadata.TopicType = classifier.Theory
	c.Metadata.IsPending = true
	return c
}
