package jobs

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

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.remove)
}

type jobRequest struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Sector       string     `json:"sector"`
	ContractType string     `json:"contractType"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Salary       string     `json:"salary"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (r jobRequest) input() Input {
	return Input{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Sector:       r.Sector,
		ContractType: r.ContractType,
		Description:  r.Description,
		Requirements: r.Requirements,
		Salary:       r.Salary,
		ExpiresAt:    r.ExpiresAt,
	}
}

type jobResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	Sector       string     `json:"sector,omitempty"`
	ContractType string     `json:"contractType,omitempty"`
	Description  string     `json:"description,omitempty"`
	Requirements []string   `json:"requirements,omitempty"`
	Salary       string     `json:"salary,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toResponse(job Job) jobResponse {
	return jobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Sector:       job.Sector,
		ContractType: job.ContractType,
		Description:  job.Description,
		Requirements: job.Requirements,
		Salary:       job.Salary,
		ExpiresAt:    job.ExpiresAt,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		}
		return
	}

	respond.Created(c, toResponse(job))
}

func (h *Handler) list(c *gin.Context) {
	f := Filter{
		Sector:   c.Query("sector"),
		Location: c.Query("location"),
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]jobResponse, 0, len(found))
	for _, job := range found {
		resp = append(resp, toResponse(job))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) update(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update job", nil)
		}
		return
	}
	respond.OK(c, toResponse(job))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete job", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
