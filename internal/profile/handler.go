package profile

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

const maxUploadBytes = 5 << 20

// Handler wires HTTP handlers to the profile service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile/skills", h.saveSkills)
	rg.PUT("/profile/resume", h.saveResume)
	rg.POST("/profile/resume/upload", h.uploadResume)
	rg.DELETE("/profile", h.clear)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.OK(c, emptyProfile())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	respond.OK(c, p)
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

func (h *Handler) saveSkills(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	p, err := h.Svc.SaveSkills(c.Request.Context(), req.Skills)
	if err != nil {
		h.fail(c, err, "failed to save skills")
		return
	}
	respond.OK(c, p)
}

type resumeRequest struct {
	Content string `json:"content"`
}

func (h *Handler) saveResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	p, err := h.Svc.SaveResume(c.Request.Context(), req.Content)
	if err != nil {
		h.fail(c, err, "failed to save resume")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) uploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if int64(len(data)) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	p, err := h.Svc.UploadResume(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.fail(c, err, "failed to process upload")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context()); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear profile", nil)
		return
	}
	respond.OK(c, emptyProfile())
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func emptyProfile() Profile {
	return Profile{Skills: []string{}}
}
