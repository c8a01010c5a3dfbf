package resumes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires resume endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes where a token is optional.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id", h.get)
}

// RegisterRoutes attaches routes that require a user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.save)
	rg.GET("/resumes", h.list)
	rg.POST("/delete-resume", h.delete)
	rg.POST("/toggle-resume-public", h.togglePublic)
}

type saveRequest struct {
	Resume   json.RawMessage `json:"resume"`
	IsPublic bool            `json:"isPublic"`
}

type resumeRef struct {
	ResumeID string `json:"resumeId"`
	ID       string `json:"id"`
	IsPublic *bool  `json:"isPublic"`
}

func (r resumeRef) id() string {
	if id := strings.TrimSpace(r.ResumeID); id != "" {
		return id
	}
	return strings.TrimSpace(r.ID)
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Resume) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume is required", err)
		return
	}
	resume, err := h.Svc.Save(c.Request.Context(), middleware.UserIDFromContext(c), req.Resume, req.IsPublic)
	if err != nil {
		h.fail(c, err, "failed to save resume")
		return
	}
	c.Set("resumeId", resume.ID)
	respond.Created(c, resume)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, gin.H{"resumes": items})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)
	resume, err := h.Svc.Get(c.Request.Context(), id, middleware.UserIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to load resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) delete(c *gin.Context) {
	var req resumeRef
	if err := c.ShouldBindJSON(&req); err != nil || req.id() == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId is required", err)
		return
	}
	c.Set("resumeId", req.id())
	if err := h.Svc.Delete(c.Request.Context(), req.id(), middleware.UserIDFromContext(c)); err != nil {
		h.fail(c, err, "failed to delete resume")
		return
	}
	respond.Success(c)
}

func (h *Handler) togglePublic(c *gin.Context) {
	var req resumeRef
	if err := c.ShouldBindJSON(&req); err != nil || req.id() == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId is required", err)
		return
	}
	c.Set("resumeId", req.id())
	resume, err := h.Svc.TogglePublic(c.Request.Context(), req.id(), middleware.UserIDFromContext(c), req.IsPublic)
	if err != nil {
		h.fail(c, err, "failed to update resume")
		return
	}
	respond.OK(c, gin.H{"success": true, "isPublic": resume.IsPublic})
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this resume", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume must be a JSON object", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, err)
	}
}
