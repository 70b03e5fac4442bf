package formations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches formation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/formations", h.create)
	rg.GET("/formations", h.list)
	rg.GET("/formations/:id", h.get)
	rg.PUT("/formations/:id", h.update)
	rg.DELETE("/formations/:id", h.remove)
}

type formationRequest struct {
	Title         string     `json:"title"`
	Provider      string     `json:"provider"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	DurationHours int        `json:"durationHours"`
	PriceFCFA     int64      `json:"priceFcfa"`
	StartDate     *time.Time `json:"startDate"`
	Location      string     `json:"location"`
}

func (r formationRequest) input() Input {
	return Input{
		Title:         r.Title,
		Provider:      r.Provider,
		Category:      r.Category,
		Description:   r.Description,
		DurationHours: r.DurationHours,
		PriceFCFA:     r.PriceFCFA,
		StartDate:     r.StartDate,
		Location:      r.Location,
	}
}

type formationResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Provider      string     `json:"provider"`
	Category      string     `json:"category,omitempty"`
	Description   string     `json:"description,omitempty"`
	DurationHours int        `json:"durationHours,omitempty"`
	PriceFCFA     int64      `json:"priceFcfa,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	Location      string     `json:"location,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func toResponse(f Formation) formationResponse {
	return formationResponse{
		ID:            f.ID,
		Title:         f.Title,
		Provider:      f.Provider,
		Category:      f.Category,
		Description:   f.Description,
		DurationHours: f.DurationHours,
		PriceFCFA:     f.PriceFCFA,
		StartDate:     f.StartDate,
		Location:      f.Location,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req formationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	f, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create formation", nil)
		}
		return
	}
	respond.Created(c, toResponse(f))
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Limit:    20,
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			f.Limit = parsed
		}
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > 50 {
		f.Limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			f.Offset = parsed
		}
	}

	found, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list formations", nil)
		return
	}

	resp := make([]formationResponse, 0, len(found))
	for _, formation := range found {
		resp = append(resp, toResponse(formation))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	f, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "formation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch formation", nil)
		}
		return
	}
	respond.OK(c, toResponse(f))
}

func (h *Handler) update(c *gin.Context) {
	var req formationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	f, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "formation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update formation", nil)
		}
		return
	}
	respond.OK(c, toResponse(f))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "formation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete formation", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
