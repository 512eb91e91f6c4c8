// Package progress tracks how far each learner has got through a course.
package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TotalModules is the module count progress percentages are computed over.
const TotalModules = 10

var (
	// ErrNotFound is returned when no progress exists for a user and topic.
	ErrNotFound = errors.New("progress not found")
	// ErrInvalidUpdate is returned when an update lacks a user or topic.
	ErrInvalidUpdate = errors.New("user and topic_slug are required")
	// ErrInvalidModule is returned when module_id is outside 0..TotalModules.
	ErrInvalidModule = errors.New("module_id out of range")
)

// Progress is one learner's state in one course.
type Progress struct {
	UserID           string          `json:"user"`
	TopicSlug        string          `json:"topic_slug"`
	DisplayTitle     string          `json:"display_title"`
	CurrentModuleID  int             `json:"current_module"`
	CompletedModules []int           `json:"completed_modules"`
	QuizScores       map[int]float64 `json:"quiz_scores"`
	LastVisitedAt    time.Time       `json:"last_visited"`
}

// Update is a progress change reported by the client.
type Update struct {
	UserID       string   `json:"user"`
	TopicSlug    string   `json:"topic_slug"`
	DisplayTitle string   `json:"display_title"`
	ModuleID     int      `json:"module_id"`
	IsCompleted  bool     `json:"is_completed"`
	QuizScore    *float64 `json:"quiz_score"`
}

// Validate checks the required fields and the module range. A zero
// ModuleID records a visit only.
func (u Update) Validate() error {
	if strings.TrimSpace(u.UserID) == "" || strings.TrimSpace(u.TopicSlug) == "" {
		return ErrInvalidUpdate
	}
	if u.ModuleID < 0 || u.ModuleID > TotalModules {
		return fmt.Errorf("%w: %d", ErrInvalidModule, u.ModuleID)
	}
	return nil
}

// Store persists progress.
type Store interface {
	Update(ctx context.Context, u Update) (*Progress, error)
	Get(ctx context.Context, userID, topicSlug string) (*Progress, error)
	List(ctx context.Context, userID string) ([]Progress, error)
}

func newProgress(u Update) *Progress {
	title := u.DisplayTitle
	if title == "" {
		title = cases.Title(language.Und).String(u.TopicSlug)
	}
	return &Progress{
		UserID:           u.UserID,
		TopicSlug:        u.TopicSlug,
		DisplayTitle:     title,
		CompletedModules: []int{},
		QuizScores:       map[int]float64{},
	}
}

// apply folds u into p. Module-scoped fields change only when a module id
// is given; completed modules stay unique in first-completion order.
func apply(p *Progress, u Update, now time.Time) {
	if u.ModuleID > 0 {
		p.CurrentModuleID = u.ModuleID
		if u.IsCompleted && !slices.Contains(p.CompletedModules, u.ModuleID) {
			p.CompletedModules = append(p.CompletedModules, u.ModuleID)
		}
		if u.QuizScore != nil {
			if p.QuizScores == nil {
				p.QuizScores = map[int]float64{}
			}
			p.QuizScores[u.ModuleID] = *u.QuizScore
		}
	}
	p.LastVisitedAt = now
}

// DashboardEntry summarizes one course for a learner.
type DashboardEntry struct {
	TopicSlug       string    `json:"topic_slug"`
	DisplayTitle    string    `json:"display_title"`
	CurrentModule   int       `json:"current_module"`
	CompletedCount  int       `json:"completed_count"`
	PercentComplete int       `json:"percent_complete"`
	LastVisited     time.Time `json:"last_visited"`
}

// Dashboard summarizes records, most recently visited first.
func Dashboard(records []Progress) []DashboardEntry {
	out := make([]DashboardEntry, 0, len(records))
	for _, p := range records {
		done := len(p.CompletedModules)
		out = append(out, DashboardEntry{
			TopicSlug:       p.TopicSlug,
			DisplayTitle:    p.DisplayTitle,
			CurrentModule:   p.CurrentModuleID,
			CompletedCount:  done,
			PercentComplete: done * 100 / TotalModules,
			LastVisited:     p.LastVisitedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LastVisited.After(out[j].LastVisited) })
	return out
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]*Progress // user -> topic -> progress
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]*Progress),
		now:     time.Now,
	}
}

func (s *MemoryStore) Update(_ context.Context, u Update) (*Progress, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	topics, ok := s.records[u.UserID]
	if !ok {
		topics = make(map[string]*Progress)
		s.records[u.UserID] = topics
	}
	p, ok := topics[u.TopicSlug]
	if !ok {
		p = newProgress(u)
		topics[u.TopicSlug] = p
	}
	apply(p, u, s.now())
	return clone(p), nil
}

func (s *MemoryStore) Get(_ context.Context, userID, topicSlug string) (*Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.records[userID][topicSlug]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Progress, 0, len(s.records[userID]))
	for _, p := range s.records[userID] {
		out = append(out, *clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicSlug < out[j].TopicSlug })
	return out, nil
}

func clone(p *Progress) *Progress {
	c := *p
	c.CompletedModules = append([]int{}, p.CompletedModules...)
	c.QuizScores = make(map[int]float64, len(p.QuizScores))
	for k, v := range p.QuizScores {
		c.QuizScores[k] = v
	}
	return &c
}
