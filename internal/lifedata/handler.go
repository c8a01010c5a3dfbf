package lifedata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/generation"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Extractor turns free text into experience entries.
type Extractor interface {
	Extract(ctx context.Context, text string) (generation.Extraction, error)
}

type Handler struct {
	Svc       *Service
	Extractor Extractor
}

func NewHandler(svc *Service, extractor Extractor) *Handler {
	return &Handler{Svc: svc, Extractor: extractor}
}

// RegisterRoutes attaches life-data routes. Every route requires a user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/life-data", h.profile)

	rg.GET("/experiences", listHandler(h.Svc.Experiences, "experiences"))
	rg.POST("/experiences", h.createExperience)
	rg.PUT("/experiences/:id", updateHandler(h.Svc.Experiences, "experience"))
	rg.DELETE("/experiences/:id", deleteHandler(h.Svc.Experiences))

	rg.GET("/life-data/education", listHandler(h.Svc.Education, "education"))
	rg.POST("/life-data/education", createHandler(h.Svc.Education, "education"))
	rg.PUT("/life-data/education/:id", updateHandler(h.Svc.Education, "education"))
	rg.DELETE("/life-data/education/:id", deleteHandler(h.Svc.Education))

	rg.GET("/life-data/certifications", listHandler(h.Svc.Certifications, "certifications"))
	rg.POST("/life-data/certifications", createHandler(h.Svc.Certifications, "certification"))
	rg.PUT("/life-data/certifications/:id", updateHandler(h.Svc.Certifications, "certification"))
	rg.DELETE("/life-data/certifications/:id", deleteHandler(h.Svc.Certifications))

	registerTags(rg, "/life-data/skills", "skills", "skill", h.Svc.Skills)
	registerTags(rg, "/life-data/hobbies", "hobbies", "hobby", h.Svc.Hobbies)
}

func (h *Handler) profile(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		fail(c, err, "failed to load life data")
		return
	}
	respond.OK(c, p)
}

type createExperienceRequest struct {
	Text string `json:"text"`
	Experience
}

// createExperience stores one experience, or extracts several from text.
func (h *Handler) createExperience(c *gin.Context) {
	var req createExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if strings.TrimSpace(req.Text) == "" {
		item, err := h.Svc.Experiences.Create(c.Request.Context(), userID, req.Experience)
		if err != nil {
			fail(c, err, "failed to create experience")
			return
		}
		respond.Created(c, gin.H{"experience": item})
		return
	}

	if h.Extractor == nil {
		respond.Error(c, http.StatusInternalServerError, "config_error", "experience extraction is not configured", nil)
		return
	}
	ext, err := h.Extractor.Extract(c.Request.Context(), req.Text)
	if err != nil {
		var inputErr *generation.InputError
		switch {
		case errors.As(err, &inputErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", inputErr.Message, nil)
		case errors.Is(err, generation.ErrUnavailable):
			respond.Error(c, http.StatusInternalServerError, "config_error", "experience extraction is not configured", err)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract experiences", err)
		}
		return
	}
	c.Set("fallback", ext.Fallback)

	created := []Experience{}
	if items := fromExtracted(ext.Experiences); len(items) > 0 {
		created, err = h.Svc.Experiences.CreateMany(c.Request.Context(), userID, items)
		if err != nil {
			fail(c, err, "failed to save experiences")
			return
		}
	}
	status := http.StatusOK
	if len(created) > 0 {
		status = http.StatusCreated
	}
	respond.JSON(c, status, gin.H{"experiences": created, "fallback": ext.Fallback})
}

func listHandler[T any, P record[T]](coll *Collection[T, P], key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := coll.List(c.Request.Context(), middleware.UserIDFromContext(c))
		if err != nil {
			fail(c, err, "failed to list "+key)
			return
		}
		respond.OK(c, gin.H{key: items})
	}
}

func createHandler[T any, P record[T]](coll *Collection[T, P], key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
			return
		}
		created, err := coll.Create(c.Request.Context(), middleware.UserIDFromContext(c), item)
		if err != nil {
			fail(c, err, "failed to create "+key)
			return
		}
		respond.Created(c, gin.H{key: created})
	}
}

func updateHandler[T any, P record[T]](coll *Collection[T, P], key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
			return
		}
		updated, err := coll.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), item)
		if err != nil {
			fail(c, err, "failed to update "+key)
			return
		}
		respond.OK(c, gin.H{key: updated})
	}
}

func deleteHandler[T any, P record[T]](coll *Collection[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := coll.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
			fail(c, err, "failed to delete record")
			return
		}
		respond.Success(c)
	}
}

type tagRequest struct {
	Name string `json:"name"`
}

func registerTags(rg *gin.RouterGroup, path, listKey, itemKey string, tags *Tags) {
	rg.GET(path, func(c *gin.Context) {
		items, err := tags.List(c.Request.Context(), middleware.UserIDFromContext(c))
		if err != nil {
			fail(c, err, "failed to list "+listKey)
			return
		}
		respond.OK(c, gin.H{listKey: items})
	})
	rg.POST(path, func(c *gin.Context) {
		var req tagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
			return
		}
		tag, err := tags.Add(c.Request.Context(), middleware.UserIDFromContext(c), req.Name)
		if err != nil {
			if errors.Is(err, ErrDuplicate) {
				respond.Error(c, http.StatusBadRequest, "duplicate", itemKey+" already exists", nil)
				return
			}
			fail(c, err, "failed to add "+itemKey)
			return
		}
		respond.Created(c, gin.H{itemKey: tag})
	})
	rg.DELETE(path, func(c *gin.Context) {
		name := c.Query("name")
		if name == "" {
			var req tagRequest
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err)
				return
			}
			name = req.Name
		}
		if err := tags.Remove(c.Request.Context(), middleware.UserIDFromContext(c), name); err != nil {
			fail(c, err, "failed to delete "+itemKey)
			return
		}
		respond.Success(c)
	})
}

func fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", ErrNotFound.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid or missing fields", err)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusBadRequest, "duplicate", "already exists", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, err)
	}
}
