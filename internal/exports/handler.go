package exports

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/cvdoc/export"
	"businessconnect-backend/internal/shared/server/middleware"
	"businessconnect-backend/internal/shared/server/respond"
	"businessconnect-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs/:id/exports", h.create)
	rg.GET("/exports", h.list)
	rg.GET("/exports/:id", h.get)
	rg.GET("/exports/:id/download", h.download)
}

type exportRequest struct {
	Format   string `json:"format"`
	Template string `json:"template"`
	FileName string `json:"fileName"`
}

type exportResponse struct {
	ID          string     `json:"id"`
	CVID        string     `json:"cvId"`
	Format      string     `json:"format"`
	Template    string     `json:"template,omitempty"`
	Status      string     `json:"status"`
	FileName    string     `json:"fileName,omitempty"`
	SizeBytes   int64      `json:"sizeBytes,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func toResponse(exp Export) exportResponse {
	return exportResponse{
		ID:          exp.ID,
		CVID:        exp.CVID,
		Format:      exp.Format,
		Template:    exp.Template,
		Status:      exp.Status,
		FileName:    exp.FileName,
		SizeBytes:   exp.SizeBytes,
		Pages:       exp.Pages,
		Error:       exp.Error,
		CreatedAt:   exp.CreatedAt,
		CompletedAt: exp.CompletedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	async := c.Query("async") == "1"
	c.Set("cvId", c.Param("id"))

	exp, err := h.Svc.Start(c.Request.Context(), Request{
		UserID:   userID,
		CVID:     c.Param("id"),
		Format:   req.Format,
		Template: req.Template,
		FileName: req.FileName,
		Async:    async,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cv not found", nil)
		case errors.Is(err, ErrInvalidInput), errors.Is(err, export.ErrMissingInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, export.ErrRasterization):
			respond.Error(c, http.StatusBadGateway, "rasterization_failed", "document rendering failed", nil)
		case errors.Is(err, export.ErrSerialization):
			respond.Error(c, http.StatusInternalServerError, "serialization_failed", "artifact assembly failed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export cv", nil)
		}
		return
	}

	c.Set("exportId", exp.ID)
	c.Set("statusTransition", "created->"+exp.Status)

	status := http.StatusCreated
	if exp.Status == StatusPending {
		status = http.StatusAccepted
	}
	respond.JSON(c, status, toResponse(exp))
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

	found, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list exports", nil)
		return
	}

	resp := make([]exportResponse, 0, len(found))
	for _, exp := range found {
		resp = append(resp, toResponse(exp))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	exp, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch export", nil)
		}
		return
	}
	respond.OK(c, toResponse(exp))
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	exp, rc, err := h.Svc.OpenArtifact(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
		case errors.Is(err, ErrNotReady):
			respond.Error(c, http.StatusConflict, "not_ready", "export is not completed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open artifact", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+exp.FileName+`"`)
	c.Header("Content-Type", exp.MIMEType)
	if exp.SizeBytes > 0 {
		c.Header("Content-Length", strconv.FormatInt(exp.SizeBytes, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Error("exports.download_stream", map[string]any{"export_id": exp.ID, "error": err.Error()})
	}
}
