package benefitplans

import (
	"github.com/gin-gonic/gin"

	"github.com/FlatFilers/HCMShow-sub000/internal/middleware"
	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// Handler handles benefit plan HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a benefit plans handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /benefit-plans.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), middleware.OrganizationID(c))
	if err != nil {
		response.Internal(c, "failed to list benefit plans")
		return
	}
	response.OK(c, list)
}
