package spaces

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/flatfile"
	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Provisioner creates spaces on the Flatfile side.
type Provisioner interface {
	CreateSpace(ctx context.Context, p flatfile.CreateSpaceParams) (*flatfile.Space, error)
	InviteGuest(ctx context.Context, spaceID string, g flatfile.Guest) error
}

// Handler handles space HTTP endpoints.
type Handler struct {
	repo        *Repository
	provisioner Provisioner
	logger      *zap.Logger
}

// NewHandler creates a spaces handler.
func NewHandler(repo *Repository, provisioner Provisioner, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, provisioner: provisioner, logger: logger}
}

// CreateRequest is the body for POST /spaces.
type CreateRequest struct {
	Type models.SpaceType `json:"type" binding:"required"`
}

// Create handles POST /spaces. Returns the existing space when the user already has one of that type.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Type.Valid() {
		response.BadRequest(c, "type must be one of onboarding, file-feed, embed, dynamic")
		return
	}
	ctx := c.Request.Context()
	userID, orgID := middleware.UserID(c), middleware.OrganizationID(c)

	existing, err := h.repo.GetForUser(ctx, userID, req.Type)
	if err == nil {
		response.OK(c, existing)
		return
	}
	if !errors.Is(err, ErrSpaceNotFound) {
		response.Internal(c, "failed to load space")
		return
	}

	remote, err := h.provisioner.CreateSpace(ctx, flatfile.CreateSpaceParams{
		Name: "HCM.show " + string(req.Type),
		Metadata: map[string]any{
			"userId":         userID.String(),
			"organizationId": orgID.String(),
			"type":           string(req.Type),
		},
	})
	if err != nil {
		h.logger.Error("create flatfile space", zap.String("type", string(req.Type)), zap.Error(err))
		response.Internal(c, "failed to create space")
		return
	}
	space, err := h.repo.Create(ctx, &models.Space{
		FlatfileSpaceID: remote.ID,
		UserID:          userID,
		OrganizationID:  orgID,
		Type:            req.Type,
		GuestLink:       remote.GuestLink,
	})
	if err != nil {
		h.logger.Error("store space", zap.String("flatfile_space_id", remote.ID), zap.Error(err))
		response.Internal(c, "failed to store space")
		return
	}

	email := c.GetString(middleware.ContextUserEmail)
	if err := h.provisioner.InviteGuest(ctx, remote.ID, flatfile.Guest{Email: email, Name: email}); err != nil {
		h.logger.Warn("invite guest", zap.String("flatfile_space_id", remote.ID), zap.Error(err))
	}
	response.Created(c, space)
}

// Get handles GET /spaces/:type.
func (h *Handler) Get(c *gin.Context) {
	t := models.SpaceType(c.Param("type"))
	if !t.Valid() {
		response.BadRequest(c, "unknown space type")
		return
	}
	space, err := h.repo.GetForUser(c.Request.Context(), middleware.UserID(c), t)
	if errors.Is(err, ErrSpaceNotFound) {
		response.NotFound(c, "space not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load space")
		return
	}
	response.OK(c, space)
}
