package ai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the AI service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/customize", h.customize)
	rg.POST("/ai/research", h.research)
	rg.POST("/ai/refine", h.refine)
	rg.POST("/ai/parse-emails", h.parseEmails)
}

func (h *Handler) customize(c *gin.Context) {
	var req CustomizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	result, err := h.Svc.Customize(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "failed to customize resume")
		return
	}
	respond.OK(c, result)
}

type researchRequest struct {
	Company  string `json:"company"`
	JobTitle string `json:"jobTitle"`
}

func (h *Handler) research(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	result, err := h.Svc.Research(c.Request.Context(), req.Company, req.JobTitle)
	if err != nil {
		h.fail(c, err, "failed to research company")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) refine(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	result, err := h.Svc.Refine(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "failed to refine resume")
		return
	}
	respond.OK(c, result)
}

type parseEmailsRequest struct {
	Emails []EmailInput `json:"emails"`
}

type parseEmailsResponse struct {
	ParsedEmails []ParsedEmail `json:"parsedEmails"`
}

func (h *Handler) parseEmails(c *gin.Context) {
	var req parseEmailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	parsed, err := h.Svc.ParseEmails(c.Request.Context(), req.Emails)
	if err != nil {
		h.fail(c, err, "failed to parse emails")
		return
	}
	respond.OK(c, parseEmailsResponse{ParsedEmails: parsed})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidLLMOutput):
		respond.Error(c, http.StatusBadGateway, "invalid_llm_output", "invalid model output", nil)
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "AI provider not configured", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "llm_error", msg, nil)
	}
}
