package webhooks

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/actions"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/spaces"
	"github.com/FlatFilers/HCMShow-sub000/pkg/metrics"
	"github.com/FlatFilers/HCMShow-sub000/pkg/queue"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// EventPayload is the body Flatfile listeners post to POST /webhooks/flatfile.
type EventPayload struct {
	SpaceID string `json:"spaceId" binding:"required"`
	Topic   string `json:"topic"`
}

// SpaceResolver maps an external space id to its owner.
type SpaceResolver interface {
	GetByFlatfileID(ctx context.Context, flatfileSpaceID string) (*models.Space, error)
}

// Enqueuer submits background sync jobs.
type Enqueuer interface {
	EnqueueSync(ctx context.Context, t queue.JobType, payload queue.SyncPayload) (string, error)
}

type ActionWriter interface {
	Create(ctx context.Context, p actions.CreateParams) (*models.Action, error)
}

// Handler turns Flatfile events into queued sync jobs.
type Handler struct {
	spaces  SpaceResolver
	queue   Enqueuer
	actions ActionWriter
	logger  *zap.Logger
}

// NewHandler creates a webhook handler.
func NewHandler(spaces SpaceResolver, q Enqueuer, actions ActionWriter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{spaces: spaces, queue: q, actions: actions, logger: logger}
}

// JobTypeFor picks the sync a space's events trigger. File-feed spaces carry benefit elections.
func JobTypeFor(t models.SpaceType) queue.JobType {
	if t == models.SpaceTypeFileFeed {
		return queue.JobTypeSyncBenefitPlans
	}
	return queue.JobTypeSyncWorkbook
}

// Flatfile handles POST /webhooks/flatfile. It answers as soon as the job is queued;
// the outcome of the run is only visible through the activity log.
func (h *Handler) Flatfile(c *gin.Context) {
	var body EventPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "spaceId required")
		return
	}
	ctx := c.Request.Context()

	space, err := h.spaces.GetByFlatfileID(ctx, body.SpaceID)
	if errors.Is(err, spaces.ErrSpaceNotFound) {
		h.logger.Warn("webhook for unknown space", zap.String("space_id", body.SpaceID), zap.String("topic", body.Topic))
		response.NotFound(c, "space not found")
		return
	}
	if err != nil {
		h.logger.Error("resolve webhook space", zap.String("space_id", body.SpaceID), zap.Error(err))
		response.Internal(c, "failed to resolve space")
		return
	}

	if space.Type == models.SpaceTypeFileFeed {
		_, err := h.actions.Create(ctx, actions.CreateParams{
			UserID:         space.UserID,
			OrganizationID: space.OrganizationID,
			Type:           models.ActionTypeFileFeedEvent,
			Description:    "Received file feed event: " + body.Topic,
			Metadata:       map[string]any{models.ActionMetaTopic: body.Topic},
		})
		if err != nil {
			h.logger.Warn("write file feed event", zap.String("space_id", body.SpaceID), zap.Error(err))
		}
	}

	jobID, err := h.queue.EnqueueSync(ctx, JobTypeFor(space.Type), queue.SyncPayload{
		UserID:         space.UserID,
		OrganizationID: space.OrganizationID,
		SpaceType:      string(space.Type),
		Topic:          body.Topic,
	})
	if err != nil {
		h.logger.Error("enqueue sync job", zap.String("space_id", body.SpaceID), zap.Error(err))
		response.Internal(c, "failed to queue sync")
		return
	}
	metrics.WebhooksReceived.WithLabelValues(body.Topic).Inc()
	h.logger.Info("sync job queued", zap.String("job_id", jobID), zap.String("space_id", body.SpaceID), zap.String("topic", body.Topic))
	response.Ack(c)
}
