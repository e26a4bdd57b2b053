package gmail

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the Gmail service. Auth may be nil when
// OAuth credentials are not configured; every route then reports that.
type Handler struct {
	Auth *Auth
	Svc  *Service
}

// NewHandler constructs a Handler.
func NewHandler(auth *Auth, svc *Service) *Handler {
	return &Handler{Auth: auth, Svc: svc}
}

// RegisterRoutes attaches Gmail routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/gmail/status", h.status)
	rg.GET("/gmail/auth-url", h.authURL)
	rg.POST("/gmail/callback", h.callback)
	rg.POST("/gmail/disconnect", h.disconnect)
	rg.POST("/gmail/search", h.search)
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.Auth == nil {
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "gmail oauth not configured", nil)
		return false
	}
	return true
}

func (h *Handler) status(c *gin.Context) {
	connected := h.Auth != nil && h.Auth.Connected()
	respond.OK(c, gin.H{
		"configured": h.Auth != nil,
		"connected":  connected,
	})
}

func (h *Handler) authURL(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	state := c.Query("state")
	if state == "" {
		state = "state-token"
	}
	respond.OK(c, gin.H{"url": h.Auth.AuthURL(state)})
}

type callbackRequest struct {
	Code string `json:"code"`
}

func (h *Handler) callback(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "code is required", nil)
		return
	}
	if err := h.Auth.Exchange(c.Request.Context(), req.Code); err != nil {
		respond.Error(c, http.StatusBadGateway, "oauth_error", "failed to exchange authorization code", nil)
		return
	}
	respond.OK(c, gin.H{"connected": true})
}

func (h *Handler) disconnect(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	if err := h.Auth.Disconnect(c.Request.Context()); err != nil {
		if errors.Is(err, ErrNotConnected) {
			respond.Error(c, http.StatusConflict, "not_connected", "not connected to gmail", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to disconnect", nil)
		return
	}
	respond.OK(c, gin.H{"connected": false})
}

type searchRequest struct {
	Companies  []string `json:"companies"`
	Keywords   []string `json:"keywords"`
	MaxResults int64    `json:"maxResults"`
	AfterDays  int      `json:"afterDays"`
}

func (h *Handler) search(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	var after time.Time
	if req.AfterDays > 0 {
		after = time.Now().UTC().AddDate(0, 0, -req.AfterDays)
	}

	messages, err := h.Svc.Search(c.Request.Context(), req.Companies, req.Keywords, req.MaxResults, after)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConnected):
			respond.Error(c, http.StatusConflict, "not_connected", "not connected to gmail", nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "gmail oauth not configured", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "gmail_error", "failed to search gmail", nil)
		}
		return
	}
	respond.OK(c, gin.H{"messages": messages})
}
