package recordsync

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/spaces"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler exposes manual sync triggers. Unlike the webhook path these run inline.
type Handler struct {
	orch   *Orchestrator
	logger *zap.Logger
}

// NewHandler creates a sync handler.
func NewHandler(orch *Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orch: orch, logger: logger}
}

// SyncRequest is the body for POST /sync and POST /sync/benefit-plans.
type SyncRequest struct {
	SpaceType models.SpaceType `json:"spaceType"`
}

func (h *Handler) params(c *gin.Context, fallback models.SpaceType) (Params, bool) {
	var req SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request: "+err.Error())
			return Params{}, false
		}
	}
	if req.SpaceType == "" {
		req.SpaceType = fallback
	}
	if !req.SpaceType.Valid() {
		response.BadRequest(c, "unknown space type")
		return Params{}, false
	}
	return Params{
		UserID:         middleware.UserID(c),
		OrganizationID: middleware.OrganizationID(c),
		SpaceType:      req.SpaceType,
	}, true
}

// SyncWorkbook handles POST /sync.
func (h *Handler) SyncWorkbook(c *gin.Context) {
	p, ok := h.params(c, models.SpaceTypeOnboarding)
	if !ok {
		return
	}
	res, err := h.orch.SyncWorkbookRecords(c.Request.Context(), p)
	if err != nil {
		h.fail(c, p, err)
		return
	}
	response.OK(c, res)
}

// SyncBenefitPlans handles POST /sync/benefit-plans.
func (h *Handler) SyncBenefitPlans(c *gin.Context) {
	p, ok := h.params(c, models.SpaceTypeFileFeed)
	if !ok {
		return
	}
	res, err := h.orch.SyncBenefitPlanRecords(c.Request.Context(), p)
	if err != nil {
		h.fail(c, p, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) fail(c *gin.Context, p Params, err error) {
	if errors.Is(err, spaces.ErrSpaceNotFound) {
		response.NotFound(c, "space not found")
		return
	}
	h.logger.Error("manual sync failed", zap.String("space_type", string(p.SpaceType)), zap.Error(err))
	response.Internal(c, "sync failed")
}
