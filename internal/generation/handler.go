package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
)

// Handler exposes the generate-resume endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type generateRequest struct {
	Experience string `json:"experience"`
	Lang       string `json:"lang"`
	UserID     string `json:"userId"`
}

// RegisterRoutes attaches generation routes. Authentication is optional.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-resume", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
		return
	}

	// Only the token decides identity; a body userId is advisory.
	userID := middleware.UserIDFromContext(c)
	if req.UserID != "" && req.UserID != userID {
		telemetry.Warn("generation.user_mismatch", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    userID,
		})
	}

	result, err := h.Svc.Generate(c.Request.Context(), Request{
		Text:   req.Experience,
		Lang:   ParseLang(req.Lang),
		UserID: userID,
	})
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", inputErr.Message, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate resume", err)
		return
	}

	c.Set("fallback", result.Fallback)
	respond.JSON(c, http.StatusOK, result)
}
