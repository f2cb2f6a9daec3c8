package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const maxAttempts = 3

// Job is the queued form of a Message.
type Job struct {
	ID         string    `json:"id"`
	Message    Message   `json:"message"`
	Attempts   int       `json:"attempts"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ListClient is the subset of *redis.Client used by Queue.
type ListClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Queue hands messages to a Redis list; the mail job drains it later.
// Jobs are pushed at the head and popped from the tail.
type Queue struct {
	client  ListClient
	key     string
	PollFor time.Duration
}

func NewQueue(client ListClient, key string) *Queue {
	return &Queue{client: client, key: key, PollFor: time.Second}
}

func (q *Queue) Send(ctx context.Context, msg Message) error {
	return q.push(ctx, Job{
		ID:         uuid.NewString(),
		Message:    msg,
		EnqueuedAt: time.Now().UTC(),
	})
}

func (q *Queue) push(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail job %s: %w", job.ID, err)
	}
	return nil
}

// Drain delivers up to max queued jobs through next and reports how many were
// sent. A failed job goes back on the queue until it has been tried maxAttempts times.
func (q *Queue) Drain(ctx context.Context, next Notifier, max int) (int, error) {
	sent := 0
	for i := 0; i < max; i++ {
		res, err := q.client.BRPop(ctx, q.PollFor, q.key).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return sent, fmt.Errorf("failed to pop mail job: %w", err)
		}
		if len(res) != 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Printf("⚠️  dropping unreadable mail job: %v", err)
			continue
		}

		if err := next.Send(ctx, job.Message); err != nil {
			job.Attempts++
			if job.Attempts >= maxAttempts {
				log.Printf("❌ giving up on mail job %s to %s after %d attempts: %v", job.ID, job.Message.To, job.Attempts, err)
				continue
			}
			log.Printf("⚠️  mail job %s failed (attempt %d), re-queued: %v", job.ID, job.Attempts, err)
			if err := q.push(ctx, job); err != nil {
				return sent, err
			}
			continue
		}
		sent++
	}
	return sent, nil
}
