package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore creates a PostgresStore. The user_progress table must
// exist; see database.DB.Migrate.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool, now: time.Now}, nil
}

func (s *PostgresStore) Update(ctx context.Context, u Update) (*Progress, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin progress update: %w", err)
	}
	defer tx.Rollback(ctx)

	fresh := newProgress(u)
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_progress (user_id, topic_slug, display_title)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, topic_slug) DO NOTHING`,
		u.UserID,
		u.TopicSlug,
		fresh.DisplayTitle,
	); err != nil {
		return nil, fmt.Errorf("insert progress: %w", err)
	}

	p, err := scanProgress(tx.QueryRow(ctx,
		`SELECT user_id, topic_slug, display_title, current_module_id, completed_modules, quiz_scores, last_visited_at
		 FROM user_progress
		 WHERE user_id = $1 AND topic_slug = $2
		 FOR UPDATE`,
		u.UserID,
		u.TopicSlug,
	))
	if err != nil {
		return nil, err
	}

	apply(p, u, s.now())

	scores, err := encodeScores(p.QuizScores)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE user_progress
		 SET current_module_id = $3,
		     completed_modules = $4,
		     quiz_scores = $5::jsonb,
		     last_visited_at = $6
		 WHERE user_id = $1 AND topic_slug = $2`,
		u.UserID,
		u.TopicSlug,
		p.CurrentModuleID,
		toInt32s(p.CompletedModules),
		scores,
		p.LastVisitedAt,
	); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit progress update: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID, topicSlug string) (*Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return scanProgress(s.pool.QueryRow(ctx,
		`SELECT user_id, topic_slug, display_title, current_module_id, completed_modules, quiz_scores, last_visited_at
		 FROM user_progress
		 WHERE user_id = $1 AND topic_slug = $2`,
		userID,
		topicSlug,
	))
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT user_id, topic_slug, display_title, current_module_id, completed_modules, quiz_scores, last_visited_at
		 FROM user_progress
		 WHERE user_id = $1
		 ORDER BY topic_slug ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := []Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func scanProgress(row pgx.Row) (*Progress, error) {
	var p Progress
	var completed []int32
	var scores []byte
	err := row.Scan(
		&p.UserID,
		&p.TopicSlug,
		&p.DisplayTitle,
		&p.CurrentModuleID,
		&completed,
		&scores,
		&p.LastVisitedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan progress: %w", err)
	}

	p.CompletedModules = make([]int, len(completed))
	for i, m := range completed {
		p.CompletedModules[i] = int(m)
	}
	p.QuizScores, err = decodeScores(scores)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Quiz scores are stored as a JSON object keyed by module number.
func encodeScores(scores map[int]float64) (string, error) {
	raw := make(map[string]float64, len(scores))
	for k, v := range scores {
		raw[strconv.Itoa(k)] = v
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("marshal quiz scores: %w", err)
	}
	return string(data), nil
}

func decodeScores(data []byte) (map[int]float64, error) {
	out := map[int]float64{}
	if len(data) == 0 {
		return out, nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal quiz scores: %w", err)
	}
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[n] = v
	}
	return out, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}
