// Package report records the outcome of each ETL run in Redis.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fashionetl/internal/transform"
)

const (
	keyPrefix = "etl:run:"
	keyLast   = keyPrefix + "last"
)

// Report summarizes one run.
type Report struct {
	RunID       string                `json:"run_id"`
	StartedAt   time.Time             `json:"started_at"`
	FinishedAt  time.Time             `json:"finished_at"`
	Extracted   int                   `json:"extracted"`
	Transformed int                   `json:"transformed"`
	Dropped     transform.FilterStats `json:"dropped"`
	Sinks       map[string]bool       `json:"sinks"`
	Error       string                `json:"error,omitempty"`
}

type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

// Save stores the report under its run ID and as the latest run.
func (s *Store) Save(ctx context.Context, r Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	pipe := s.Client.TxPipeline()
	pipe.Set(ctx, keyPrefix+r.RunID, b, s.TTL)
	pipe.Set(ctx, keyLast, b, s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}
	return nil
}

// Get loads the report of a given run.
func (s *Store) Get(ctx context.Context, runID string) (*Report, error) {
	return s.get(ctx, keyPrefix+runID)
}

// Last loads the most recently saved report. It returns nil, nil when none
// exists.
func (s *Store) Last(ctx context.Context) (*Report, error) {
	return s.get(ctx, keyLast)
}

func (s *Store) get(ctx context.Context, key string) (*Report, error) {
	val, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", key, err)
	}
	return &r, nil
}
