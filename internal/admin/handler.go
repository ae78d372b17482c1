package admin

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
	"github.com/FlatFilers/HCMShow-sub000/pkg/storage"
)

// SnapshotCleaner removes archived snapshots. nil skips snapshot cleanup.
type SnapshotCleaner interface {
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Handler handles admin endpoints.
type Handler struct {
	repo      *Repository
	snapshots SnapshotCleaner
	logger    *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(repo *Repository, snapshots SnapshotCleaner, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, snapshots: snapshots, logger: logger}
}

// Purge handles DELETE /data (admin only).
func (h *Handler) Purge(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := middleware.OrganizationID(c)
	res, err := h.repo.Purge(ctx, orgID)
	if err != nil {
		h.logger.Error("purge", zap.String("organization_id", orgID.String()), zap.Error(err))
		response.Internal(c, "failed to purge data")
		return
	}
	if h.snapshots != nil {
		n, err := h.snapshots.DeletePrefix(ctx, storage.SnapshotPrefix(orgID))
		if err != nil {
			h.logger.Warn("purge snapshots", zap.String("organization_id", orgID.String()), zap.Error(err))
		}
		res.Snapshots = n
	}
	h.logger.Info("organization data purged", zap.String("organization_id", orgID.String()), zap.Any("result", res))
	response.OK(c, res)
}
