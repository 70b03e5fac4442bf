package cvs

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/cvdoc/model"
	"businessconnect-backend/internal/shared/server/middleware"
	"businessconnect-backend/internal/shared/server/respond"
)

const maxPayloadSize = 1 << 20 // 1MB of CV JSON is already generous

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs", h.create)
	rg.GET("/cvs", h.list)
	rg.GET("/cvs/:id", h.get)
	rg.PUT("/cvs/:id", h.update)
	rg.DELETE("/cvs/:id", h.remove)
}

type cvResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template,omitempty"`
	Data      model.CV  `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(rec Record) cvResponse {
	return cvResponse{
		ID:        rec.ID,
		Title:     rec.Title,
		Template:  rec.Template,
		Data:      rec.Data,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func readPayload(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadSize))
	if err != nil || len(raw) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return nil, false
	}
	return raw, true
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	raw, ok := readPayload(c)
	if !ok {
		return
	}

	rec, err := h.Svc.Save(c.Request.Context(), userID, raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save cv", nil)
		}
		return
	}
	respond.Created(c, toResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	records, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cvs", nil)
		return
	}

	resp := make([]cvResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toResponse(rec))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cv", nil)
		}
		return
	}
	respond.OK(c, toResponse(rec))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	raw, ok := readPayload(c)
	if !ok {
		return
	}

	rec, err := h.Svc.Replace(c.Request.Context(), userID, c.Param("id"), raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update cv", nil)
		}
		return
	}
	respond.OK(c, toResponse(rec))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete cv", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
