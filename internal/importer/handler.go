package importer

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/shared/server/respond"
)

const maxImportSize = 10 << 20 // 10MB

// Handler exposes the CV import endpoint.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the import route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cvs/import", h.importCV)
}

func (h *Handler) importCV(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := ExtractText(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedFormat):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", "only PDF and DOCX files can be imported", nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not read the document", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"data": Prefill(text),
		"text": text,
	})
}
