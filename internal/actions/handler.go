package actions

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Presigner signs snapshot download URLs. nil disables the snapshot endpoint.
type Presigner interface {
	PresignSnapshot(ctx context.Context, key string) (string, error)
}

// Handler handles activity log HTTP endpoints.
type Handler struct {
	repo      *Repository
	presigner Presigner
	logger    *zap.Logger
}

// NewHandler creates an actions handler.
func NewHandler(repo *Repository, presigner Presigner, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, presigner: presigner, logger: logger}
}

// List handles GET /actions?limit=N.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.repo.ListByOrganization(c.Request.Context(), middleware.OrganizationID(c), limit)
	if err != nil {
		response.Internal(c, "failed to list actions")
		return
	}
	response.OK(c, list)
}

// Poll handles GET /actions/poll. Returns the caller's unseen actions and marks them seen.
func (h *Handler) Poll(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := middleware.OrganizationID(c)
	list, err := h.repo.ListUnseen(ctx, orgID, middleware.UserID(c))
	if err != nil {
		response.Internal(c, "failed to poll actions")
		return
	}
	ids := make([]uuid.UUID, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	if _, err := h.repo.MarkSeen(ctx, orgID, ids); err != nil {
		h.logger.Warn("mark actions seen", zap.Int("count", len(ids)), zap.Error(err))
	}
	response.OK(c, list)
}

// SnapshotURL handles GET /actions/:id/snapshot-url.
func (h *Handler) SnapshotURL(c *gin.Context) {
	if h.presigner == nil {
		response.ServiceUnavailable(c, "snapshots are not configured")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid action id")
		return
	}
	a, err := h.repo.GetByID(c.Request.Context(), middleware.OrganizationID(c), id)
	if errors.Is(err, ErrActionNotFound) {
		response.NotFound(c, "action not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load action")
		return
	}
	key := SnapshotKey(a)
	if key == "" {
		response.NotFound(c, "action has no snapshot")
		return
	}
	url, err := h.presigner.PresignSnapshot(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("presign snapshot", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to sign snapshot url")
		return
	}
	response.OK(c, gin.H{"url": url})
}
