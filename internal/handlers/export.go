package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alpho07/mnch-mentorship-sub006/internal/export"
	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
	"github.com/alpho07/mnch-mentorship-sub006/internal/services"
)

type ExportHandler struct {
	log *logger.Logger
	svc services.ExportService
}

func NewExportHandler(log *logger.Logger, svc services.ExportService) *ExportHandler {
	return &ExportHandler{log: log.With("handler", "ExportHandler"), svc: svc}
}

// POST /api/exports
func (h *ExportHandler) CreateExport(c *gin.Context) {
	var req export.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	artifact, err := h.svc.CreateArtifact(c.Request.Context(), &req)
	if err != nil {
		h.respondExportError(c, err)
		return
	}
	writeArtifact(c, artifact)
}

// POST /api/exports/preview
func (h *ExportHandler) CreatePreview(c *gin.Context) {
	var req export.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	preview, err := h.svc.CreatePreview(c.Request.Context(), &req)
	if err != nil {
		h.respondExportError(c, err)
		return
	}
	RespondOK(c, preview)
}

// GET /api/exports/preview/:id
func (h *ExportHandler) GetPreviewPage(c *gin.Context) {
	q := services.PreviewQuery{
		BlockID: c.Query("block"),
	}
	if raw, ok := c.GetQuery("q"); ok {
		q.Query = &raw
	}
	if raw, ok := c.GetQuery("sort"); ok {
		col, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_sort", err)
			return
		}
		q.SortColumn = &col
	}
	q.Page = intQuery(c, "page")
	q.PageSize = intQuery(c, "size")

	view, err := h.svc.GetPreviewPage(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.respondExportError(c, err)
		return
	}
	RespondOK(c, view)
}

// POST /api/exports/preview/:id/download
func (h *ExportHandler) DownloadPreviewView(c *gin.Context) {
	artifact, err := h.svc.DownloadPreviewView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondExportError(c, err)
		return
	}
	writeArtifact(c, artifact)
}

func (h *ExportHandler) respondExportError(c *gin.Context, err error) {
	var validationErr *export.ValidationError
	var notFoundErr *export.NotFoundError
	var expiredErr *export.SessionExpiredError
	var encodingErr *export.EncodingError

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.As(err, &notFoundErr):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &expiredErr):
		RespondError(c, http.StatusGone, "session_expired", err)
	case errors.As(err, &encodingErr):
		h.log.Error("Export encoding failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "encoding_error", err)
	default:
		h.log.Error("Export failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

func writeArtifact(c *gin.Context, artifact *export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func intQuery(c *gin.Context, name string) int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
