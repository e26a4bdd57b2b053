package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/resume/export"
	"jobtrack-backend/resume/template"
)

// Handler wires HTTP handlers to the application service.
type Handler struct {
	Svc      *Service
	Exporter *export.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, exporter *export.Service) *Handler {
	return &Handler{Svc: svc, Exporter: exporter}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.POST("/applications", h.create)
	rg.GET("/applications/:id", h.get)
	rg.PATCH("/applications/:id", h.update)
	rg.DELETE("/applications/:id", h.remove)
	rg.POST("/applications/:id/archive", h.archive)
	rg.PUT("/applications/:id/stage", h.setStage)
	rg.PATCH("/applications/:id/posting", h.updatePosting)
	rg.POST("/applications/:id/activities", h.addActivity)
	rg.DELETE("/applications/:id/activities/:activityId", h.deleteActivity)
	rg.POST("/applications/:id/process", h.process)
	rg.POST("/applications/:id/export", h.export)
}

func (h *Handler) list(c *gin.Context) {
	apps, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	if c.Query("status") == StatusArchived {
		archived := make([]Application, 0, len(apps))
		for _, app := range apps {
			if app.Archived() {
				archived = append(archived, app)
			}
		}
		respond.OK(c, archived)
		return
	}
	if c.Query("status") == "active" {
		active := make([]Application, 0, len(apps))
		for _, app := range apps {
			if !app.Archived() {
				active = append(active, app)
			}
		}
		respond.OK(c, active)
		return
	}
	respond.OK(c, apps)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	app, err := h.Svc.Add(c.Request.Context(), req.posting())
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create application", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, app)
}

func (h *Handler) get(c *gin.Context) {
	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch application")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	app, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "failed to update application")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete application")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) archive(c *gin.Context) {
	app, err := h.Svc.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to archive application")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) setStage(c *gin.Context) {
	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	app, err := h.Svc.SetStage(c.Request.Context(), c.Param("id"), req.Stage)
	if err != nil {
		h.fail(c, err, "failed to set stage")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) updatePosting(c *gin.Context) {
	var req JobPostingUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	app, err := h.Svc.UpdateJobPosting(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "failed to update job posting")
		return
	}
	respond.OK(c, app)
}

func (h *Handler) addActivity(c *gin.Context) {
	var req ActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	activity, err := h.Svc.AddActivity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "failed to add activity")
		return
	}
	respond.JSON(c, http.StatusCreated, activity)
}

func (h *Handler) deleteActivity(c *gin.Context) {
	err := h.Svc.DeleteActivity(c.Request.Context(), c.Param("id"), c.Param("activityId"))
	if err != nil {
		h.fail(c, err, "failed to delete activity")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	app, err := h.Svc.Process(c.Request.Context(), c.Param("id"), req.MasterResume, req.Skills)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrNotPending):
			respond.Error(c, http.StatusConflict, "not_pending", "application is not pending", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "processing_failed", "failed to process application", nil)
		}
		return
	}
	respond.OK(c, app)
}

type exportRequest struct {
	Format     string `json:"format"`
	TemplateID string `json:"templateId"`
}

func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch application")
		return
	}
	if app.StructuredResume == nil {
		respond.Error(c, http.StatusConflict, "not_ready", "application has no structured resume", nil)
		return
	}

	file, err := h.Exporter.Export(c.Request.Context(), *app.StructuredResume, export.Format(req.Format), req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported export format", nil)
		case errors.Is(err, template.ErrUnknownTemplate):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown template", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export resume", nil)
		}
		return
	}

	c.Header("Content-Type", file.MIME)
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.MIME, file.Data)
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
