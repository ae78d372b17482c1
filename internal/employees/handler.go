package employees

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler handles employee HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an employees handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /employees.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), middleware.OrganizationID(c))
	if err != nil {
		response.Internal(c, "failed to list employees")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /employees/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), middleware.OrganizationID(c), id)
	if errors.Is(err, ErrEmployeeNotFound) {
		response.NotFound(c, "employee not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load employee")
		return
	}
	response.OK(c, e)
}
