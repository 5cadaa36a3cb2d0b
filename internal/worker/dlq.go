package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DLQEntry wraps a failed mail job with enough context to debug and
// replay it. FailedAt is UTC.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Kind     string          `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	Cause    string          `json:"cause"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

func newDLQEntry(queue, kind string, payload json.RawMessage, cause string, attempts int) DLQEntry {
	return DLQEntry{
		Queue:    queue,
		Kind:     kind,
		Payload:  payload,
		Cause:    cause,
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	}
}

// DeadLetter parks jobs that failed permanently. One redis list per
// source queue, keyed dlq:{queue}, inspected and replayed by operators.
type DeadLetter struct {
	rdb *redis.Client
}

func NewDeadLetter(rdb *redis.Client) *DeadLetter {
	return &DeadLetter{rdb: rdb}
}

// Push parks a failed job. Best effort: a DLQ write failure is logged,
// never propagated, because the caller already has a primary error.
func (d *DeadLetter) Push(ctx context.Context, queue, kind string, payload json.RawMessage, cause string, attempts int) {
	entry := newDLQEntry(queue, kind, payload, cause, attempts)
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry")
		return
	}
	if err := d.rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push entry")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("kind", kind).
		Str("cause", cause).
		Int("attempts", attempts).
		Msg("dlq: job parked")
}

// Len returns how many jobs are parked for a queue, for monitoring.
func (d *DeadLetter) Len(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, dlqPrefix+queue).Result()
}

// Replay moves up to n parked jobs back onto their source queue, oldest
// first. Returns how many were requeued.
func (d *DeadLetter) Replay(ctx context.Context, queue string, n int) (int, error) {
	moved := 0
	for i := 0; i < n; i++ {
		raw, err := d.rdb.RPop(ctx, dlqPrefix+queue).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return moved, err
		}
		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dlq: replay unmarshal, dropping")
			continue
		}
		job, err := json.Marshal(Job{Type: "email", Payload: entry.Payload})
		if err != nil {
			return moved, err
		}
		if err := d.rdb.LPush(ctx, entry.Queue, job).Err(); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}
