package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	ResumeCount *CountCache
}

func NewHandler(resumeCount *CountCache) *Handler {
	return &Handler{ResumeCount: resumeCount}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume-count", h.resumeCount)
}

func (h *Handler) resumeCount(c *gin.Context) {
	count, err := h.ResumeCount.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to count resumes", err)
		return
	}
	respond.OK(c, gin.H{"count": count})
}
