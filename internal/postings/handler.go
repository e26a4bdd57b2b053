package postings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/ai"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the postings service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches posting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/postings/fetch", h.fetch)
}

type fetchRequest struct {
	URL string `json:"url"`
}

func (h *Handler) fetch(c *gin.Context) {
	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}

	result, err := h.Svc.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidURL):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid url", nil)
		case errors.Is(err, ErrFetchFailed):
			respond.Error(c, http.StatusBadRequest, "fetch_failed", "failed to fetch url", nil)
		case errors.Is(err, ai.ErrInvalidLLMOutput):
			respond.Error(c, http.StatusBadGateway, "invalid_llm_output", "failed to parse job posting", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "llm_error", "failed to parse job posting", nil)
		}
		return
	}
	respond.OK(c, result)
}
