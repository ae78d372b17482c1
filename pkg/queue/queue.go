package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// QueueSync is the Redis list key for record sync jobs.
	QueueSync = "worker:sync"
	// QueueDLQ is the dead-letter list for sync jobs that failed. Jobs are never retried automatically.
	QueueDLQ = "worker:sync:dlq"
	// PollTimeout bounds one BLPOP so the consumer notices cancellation.
	PollTimeout = 5 * time.Second
)

// JobType identifies the job kind.
type JobType string

const (
	JobTypeSyncWorkbook     JobType = "sync_workbook"
	JobTypeSyncBenefitPlans JobType = "sync_benefit_plans"
)

// SyncPayload identifies whose space a sync job reads.
type SyncPayload struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	SpaceType      string    `json:"space_type"`
	Topic          string    `json:"topic,omitempty"`
}

// Job is a generic job envelope.
type Job struct {
	ID        string          `json:"id"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	Error     string          `json:"error,omitempty"`
}

// SyncPayload decodes the job payload.
func (j *Job) SyncPayload() (SyncPayload, error) {
	var p SyncPayload
	if err := json.Unmarshal(j.Payload, &p); err != nil {
		return SyncPayload{}, fmt.Errorf("decode sync payload: %w", err)
	}
	return p, nil
}

// NewSyncJob builds a job envelope.
func NewSyncJob(t JobType, payload SyncPayload) (*Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return &Job{
		ID:        uuid.New().String(),
		Type:      t,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Queue enqueues and dequeues jobs via Redis.
type Queue struct {
	client *redis.Client
	logger *zap.Logger
}

// NewQueue creates a new Redis-backed job queue.
func NewQueue(client *redis.Client, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, logger: logger}
}

// EnqueueSync pushes a sync job and returns its id.
func (q *Queue) EnqueueSync(ctx context.Context, t JobType, payload SyncPayload) (string, error) {
	job, err := NewSyncJob(t, payload)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, QueueSync, raw).Err(); err != nil {
		return "", fmt.Errorf("rpush: %w", err)
	}
	q.logger.Debug("enqueued sync job",
		zap.String("job_id", job.ID),
		zap.String("type", string(t)),
		zap.String("organization_id", payload.OrganizationID.String()),
	)
	return job.ID, nil
}

// Dequeue waits up to PollTimeout for a job. Returns nil, nil on timeout or an undecodable entry.
func (q *Queue) Dequeue(ctx context.Context) (*Job, error) {
	result, err := q.client.BLPop(ctx, PollTimeout, QueueSync).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Warn("invalid job payload", zap.String("raw", result[1]), zap.Error(err))
		return nil, nil
	}
	return &job, nil
}

// DeadLetter parks a failed job with its error for manual inspection.
func (q *Queue) DeadLetter(ctx context.Context, job *Job, cause error) error {
	if cause != nil {
		job.Error = cause.Error()
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.client.RPush(ctx, QueueDLQ, raw).Err(); err != nil {
		q.logger.Error("dlq push failed", zap.Error(err), zap.String("job_id", job.ID))
		return err
	}
	q.logger.Warn("job moved to DLQ", zap.String("job_id", job.ID), zap.String("type", string(job.Type)), zap.String("error", job.Error))
	return nil
}

// DeadLetterSize reports how many jobs are parked.
func (q *Queue) DeadLetterSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, QueueDLQ).Result()
}
