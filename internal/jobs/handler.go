package jobs

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler handles job HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a jobs handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /jobs.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), middleware.OrganizationID(c))
	if err != nil {
		response.Internal(c, "failed to list jobs")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /jobs/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid job id")
		return
	}
	j, err := h.repo.GetByID(c.Request.Context(), middleware.OrganizationID(c), id)
	if errors.Is(err, ErrJobNotFound) {
		response.NotFound(c, "job not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load job")
		return
	}
	response.OK(c, j)
}
