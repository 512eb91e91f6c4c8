// Package mentor answers free-form learner questions as MentAI, keeping a
// short conversation history per session.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/p-n-ai/mentai/internal/ai"
)

const (
	defaultCompactThreshold      = 20
	defaultCompactTokenThreshold = 20000
	defaultKeepRecent            = 6
)

var (
	// ErrUnavailable is returned when no AI provider is configured.
	ErrUnavailable = errors.New("AI service unavailable")
	// ErrEmptyQuery is returned for blank questions.
	ErrEmptyQuery = errors.New("query is required")
	// ErrBudgetExceeded is returned when the user has spent their tokens.
	ErrBudgetExceeded = errors.New("token budget exceeded")
)

// Config holds dependencies for the mentor.
type Config struct {
	AI                    ai.Provider
	Store                 SessionStore     // defaults to a MemoryStore
	Budget                ai.BudgetChecker // optional
	CompactThreshold      int              // messages before compaction triggers (default 20)
	CompactTokenThreshold int              // estimated tokens before compaction triggers (default 20000)
	KeepRecent            int              // recent messages kept after compaction (default 6)
}

// Mentor is the MentAI learning assistant.
type Mentor struct {
	ai                    ai.Provider
	store                 SessionStore
	budget                ai.BudgetChecker
	compactThreshold      int
	compactTokenThreshold int
	keepRecent            int
}

// New creates a Mentor.
func New(cfg Config) *Mentor {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	threshold := cfg.CompactThreshold
	if threshold == 0 {
		threshold = defaultCompactThreshold
	}
	tokenThreshold := cfg.CompactTokenThreshold
	if tokenThreshold == 0 {
		tokenThreshold = defaultCompactTokenThreshold
	}
	keepRecent := cfg.KeepRecent
	if keepRecent == 0 {
		keepRecent = defaultKeepRecent
	}
	return &Mentor{
		ai:                    cfg.AI,
		store:                 store,
		budget:                cfg.Budget,
		compactThreshold:      threshold,
		compactTokenThreshold: tokenThreshold,
		keepRecent:            keepRecent,
	}
}

// Available reports whether an AI provider is configured.
func (m *Mentor) Available() bool {
	return ai.NewGenerator(m.ai).Available()
}

// NewSession starts a session for userID, which may be empty.
func (m *Mentor) NewSession(userID string) (string, error) {
	return m.store.Create(userID)
}

// EndSession discards a session and its history.
func (m *Mentor) EndSession(id string) error {
	return m.store.Delete(id)
}

// Ask answers query within a session. An empty sessionID asks without
// history.
func (m *Mentor) Ask(ctx context.Context, sessionID, query string) (string, error) {
	t, err := m.begin(ctx, sessionID, query)
	if err != nil {
		return "", err
	}

	resp, err := m.ai.Complete(ctx, t.request())
	if err != nil {
		return "", fmt.Errorf("mentor completion: %w", err)
	}

	m.finish(t, resp)
	return resp.Content, nil
}

// AskStream is Ask with the reply delivered piece by piece to emit as the
// provider produces it. It returns the full reply. An error from emit stops
// the stream and nothing is recorded in the session.
func (m *Mentor) AskStream(ctx context.Context, sessionID, query string, emit func(delta string) error) (string, error) {
	t, err := m.begin(ctx, sessionID, query)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := m.ai.StreamComplete(ctx, t.request())
	if err != nil {
		return "", fmt.Errorf("mentor stream: %w", err)
	}

	var (
		reply strings.Builder
		resp  ai.CompletionResponse
		done  bool
	)
	for chunk := range ch {
		if chunk.Error != nil {
			return "", fmt.Errorf("mentor stream: %w", chunk.Error)
		}
		if chunk.Content != "" {
			reply.WriteString(chunk.Content)
			if err := emit(chunk.Content); err != nil {
				return "", err
			}
		}
		if chunk.Done {
			done = true
			resp.InputTokens, resp.OutputTokens = chunk.InputTokens, chunk.OutputTokens
		}
	}
	if !done {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("mentor stream: %w", err)
		}
		return "", errors.New("mentor stream ended without completing")
	}

	resp.Content = reply.String()
	m.finish(t, resp)
	return resp.Content, nil
}

// turn is one question being answered.
type turn struct {
	query     string
	sess      *Session
	budgetKey string
	messages  []ai.Message
}

func (t *turn) request() ai.CompletionRequest {
	return ai.CompletionRequest{
		Messages:  t.messages,
		Task:      ai.TaskMentor,
		MaxTokens: 1024,
	}
}

// begin validates the question, checks the budget and builds the prompt.
func (m *Mentor) begin(ctx context.Context, sessionID, query string) (*turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if !m.Available() {
		return nil, ErrUnavailable
	}

	t := &turn{query: query, budgetKey: "anonymous"}
	if sessionID != "" {
		sess, err := m.store.Get(sessionID)
		if err != nil {
			return nil, err
		}
		t.sess = sess
		t.budgetKey = sess.ID
		if sess.UserID != "" {
			t.budgetKey = sess.UserID
		}
	}

	if m.budget != nil {
		ok, err := m.budget.Check(t.budgetKey)
		if err != nil {
			return nil, fmt.Errorf("checking budget: %w", err)
		}
		if !ok {
			return nil, ErrBudgetExceeded
		}
	}

	t.messages = []ai.Message{{Role: "system", Content: systemPrompt}}
	if t.sess != nil {
		m.maybeCompact(ctx, t.sess, t.budgetKey)
		t.messages = append(t.messages, buildContextMessages(t.sess)...)
	}
	t.messages = append(t.messages, ai.Message{Role: "user", Content: askPrompt(query)})
	return t, nil
}

// finish records token usage and appends the exchange to the session.
func (m *Mentor) finish(t *turn, resp ai.CompletionResponse) {
	m.record(t.budgetKey, resp.TotalTokens())

	if t.sess == nil {
		return
	}
	if err := m.store.Append(t.sess.ID, Message{Role: "user", Content: t.query}); err != nil {
		slog.Error("failed to store user message", "session_id", t.sess.ID, "error", err)
	}
	if err := m.store.Append(t.sess.ID, Message{
		Role:         "assistant",
		Content:      resp.Content,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}); err != nil {
		slog.Error("failed to store assistant message", "session_id", t.sess.ID, "error", err)
	}
}

func (m *Mentor) record(budgetKey string, tokens int) {
	if m.budget == nil {
		return
	}
	if err := m.budget.Record(budgetKey, tokens); err != nil {
		slog.Warn("failed to record token usage", "user", budgetKey, "error", err)
	}
}

const systemPrompt = `You are MentAI, an expert AI learning assistant for programming learners.
Focus on being a 'learning buddy' rather than just a search engine.`

func askPrompt(query string) string {
	return fmt.Sprintf(`You are MentAI, an expert AI learning assistant.
The user is asking: %q

Provide a concise, helpful, and encouraging response.
If the user asks for code, provide clean, well-commented code snippets.
Focus on being a 'learning buddy' rather than just a search engine.`, query)
}

// buildContextMessages returns the session history for the prompt, led by
// the summary when older turns have been compacted.
func buildContextMessages(sess *Session) []ai.Message {
	var messages []ai.Message

	from := 0
	if sess.Summary != "" {
		messages = append(messages,
			ai.Message{Role: "user", Content: "Previous conversation summary:\n" + sess.Summary},
			ai.Message{Role: "assistant", Content: "Understood, I'll continue based on our previous conversation."},
		)
		from = sess.CompactedAt
	}
	for _, msg := range sess.Messages[from:] {
		messages = append(messages, ai.Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// estimateTokens gives a rough token count for messages (1 token ≈ 4 chars).
func estimateTokens(messages []Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content) / 4
	}
	return total
}

// maybeCompact summarizes older turns once the uncompacted history grows
// past either threshold. The summary's tokens count against budgetKey.
func (m *Mentor) maybeCompact(ctx context.Context, sess *Session, budgetKey string) {
	uncompacted := sess.Messages[sess.CompactedAt:]
	if len(uncompacted) <= m.compactThreshold && estimateTokens(uncompacted) <= m.compactTokenThreshold {
		return
	}

	compactUpTo := len(sess.Messages) - m.keepRecent
	if compactUpTo <= sess.CompactedAt {
		return
	}

	var content strings.Builder
	if sess.Summary != "" {
		content.WriteString("Previous summary:\n")
		content.WriteString(sess.Summary)
		content.WriteString("\n\nNew messages to incorporate:\n")
	}
	for _, msg := range sess.Messages[sess.CompactedAt:compactUpTo] {
		role := "Learner"
		if msg.Role == "assistant" {
			role = "MentAI"
		}
		fmt.Fprintf(&content, "%s: %s\n", role, msg.Content)
	}

	resp, err := m.ai.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: "system", Content: `Summarize this programming mentoring conversation concisely. Capture:
- Languages, topics and concepts discussed
- What the learner understood or struggled with
- Code examples or exercises worked through
Keep the summary under 150 words.`},
			{Role: "user", Content: content.String()},
		},
		Task:      ai.TaskMentor,
		MaxTokens: 256,
	})
	if err != nil {
		slog.Warn("compaction failed, continuing without summary", "error", err)
		return
	}
	m.record(budgetKey, resp.TotalTokens())

	if err := m.store.SetSummary(sess.ID, resp.Content, compactUpTo); err != nil {
		slog.Warn("failed to save summary", "error", err)
		return
	}

	sess.Summary = resp.Content
	sess.CompactedAt = compactUpTo

	slog.Info("mentor session compacted",
		"session_id", sess.ID,
		"compacted_messages", compactUpTo,
		"remaining_messages", len(sess.Messages)-compactUpTo,
	)
}
