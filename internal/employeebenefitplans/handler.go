package employeebenefitplans

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler handles enrollment HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an employee benefit plans handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListByEmployee handles GET /employees/:id/benefit-plans.
func (h *Handler) ListByEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}
	list, err := h.repo.ListByEmployee(c.Request.Context(), middleware.OrganizationID(c), id)
	if err != nil {
		response.Internal(c, "failed to list benefit plans")
		return
	}
	response.OK(c, list)
}
