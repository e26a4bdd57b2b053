package jobsearch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the job search service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobsearch", h.search)
}

func (h *Handler) search(c *gin.Context) {
	var query Query
	if err := c.ShouldBindJSON(&query); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	resp, err := h.Svc.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNoInterpreter):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "search_failed", err.Error(), nil)
		}
		return
	}
	respond.OK(c, resp)
}
