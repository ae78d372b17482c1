package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/recordsync"
	"github.com/FlatFilers/HCMShow-sub000/pkg/metrics"
	"github.com/FlatFilers/HCMShow-sub000/pkg/queue"
)

// dequeueBackoff is the pause after a failed BLPOP.
const dequeueBackoff = 2 * time.Second

// Syncer runs sync batches.
type Syncer interface {
	SyncWorkbookRecords(ctx context.Context, p recordsync.Params) (recordsync.WorkbookResult, error)
	SyncBenefitPlanRecords(ctx context.Context, p recordsync.Params) (recordsync.BenefitResult, error)
}

// JobQueue is the consumer side of the sync queue.
type JobQueue interface {
	Dequeue(ctx context.Context) (*queue.Job, error)
	DeadLetter(ctx context.Context, job *queue.Job, cause error) error
}

// SyncProcessor consumes sync jobs and runs them through the orchestrator.
// A failed job goes to the dead-letter list; nothing is retried.
type SyncProcessor struct {
	syncer Syncer
	queue  JobQueue
	logger *zap.Logger
}

// NewSyncProcessor creates a sync job processor.
func NewSyncProcessor(syncer Syncer, q JobQueue, logger *zap.Logger) *SyncProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncProcessor{syncer: syncer, queue: q, logger: logger}
}

// Process executes one sync job.
func (p *SyncProcessor) Process(ctx context.Context, job *queue.Job) error {
	payload, err := job.SyncPayload()
	if err != nil {
		return err
	}
	if payload.UserID == uuid.Nil || payload.OrganizationID == uuid.Nil {
		return fmt.Errorf("job %s: missing user or organization", job.ID)
	}
	params := recordsync.Params{
		UserID:         payload.UserID,
		OrganizationID: payload.OrganizationID,
		SpaceType:      models.SpaceType(payload.SpaceType),
	}
	if !params.SpaceType.Valid() {
		return fmt.Errorf("job %s: unknown space type %q", job.ID, payload.SpaceType)
	}

	switch job.Type {
	case queue.JobTypeSyncWorkbook:
		res, err := p.syncer.SyncWorkbookRecords(ctx, params)
		if err != nil {
			return err
		}
		p.logger.Info("workbook sync job done", zap.String("job_id", job.ID), zap.Bool("success", res.Success), zap.String("message", res.Message))
	case queue.JobTypeSyncBenefitPlans:
		res, err := p.syncer.SyncBenefitPlanRecords(ctx, params)
		if err != nil {
			return err
		}
		p.logger.Info("benefit sync job done", zap.String("job_id", job.ID), zap.Int("synced", len(res.SyncedFlatfileRecordIDs)))
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	return nil
}

// Run starts the worker loop until ctx is done.
func (p *SyncProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("sync worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(dequeueBackoff):
			}
			continue
		}
		if job == nil {
			continue
		}
		p.handle(ctx, job)
	}
}

func (p *SyncProcessor) handle(ctx context.Context, job *queue.Job) {
	p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
	if err := p.Process(ctx, job); err != nil {
		p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
		metrics.JobsProcessed.WithLabelValues(string(job.Type), "dead_letter").Inc()
		if dlErr := p.queue.DeadLetter(context.WithoutCancel(ctx), job, err); dlErr != nil {
			p.logger.Error("dead-letter push failed", zap.String("job_id", job.ID), zap.Error(dlErr))
		}
		return
	}
	metrics.JobsProcessed.WithLabelValues(string(job.Type), "ok").Inc()
}
