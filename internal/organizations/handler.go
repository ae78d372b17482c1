package organizations

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler handles organization HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an organizations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RenameRequest is the body for PATCH /organization.
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Get handles GET /organization.
func (h *Handler) Get(c *gin.Context) {
	org, err := h.repo.GetByID(c.Request.Context(), middleware.OrganizationID(c))
	if errors.Is(err, ErrOrganizationNotFound) {
		response.NotFound(c, "Organization not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load organization")
		return
	}
	response.OK(c, org)
}

// Rename handles PATCH /organization (admin only).
func (h *Handler) Rename(c *gin.Context) {
	var body RenameRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "name required")
		return
	}
	name := strings.TrimSpace(body.Name)
	if len(name) < 1 || len(name) > 255 {
		response.BadRequest(c, "name must be 1–255 characters")
		return
	}
	org, err := h.repo.Rename(c.Request.Context(), middleware.OrganizationID(c), name)
	if err != nil {
		response.Internal(c, "failed to rename organization")
		return
	}
	response.OK(c, org)
}

// Stats handles GET /organization/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.repo.Stats(c.Request.Context(), middleware.OrganizationID(c))
	if err != nil {
		response.Internal(c, "failed to load stats")
		return
	}
	response.OK(c, stats)
}

// ListMembers handles GET /organization/members.
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.repo.ListMembers(c.Request.Context(), middleware.OrganizationID(c))
	if err != nil {
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, members)
}
