package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leaddesk/internal/pkg/response"
)

// Handler lets staff inspect and download intake attachments.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetByID godoc
// @Summary Get attachment metadata by ID
// @Tags Admin Uploads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Upload ID"
// @Success 200 {object} response.Response{data=Upload}
// @Failure 404 {object} response.Response
// @Router /admin/uploads/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			response.Error(c, http.StatusNotFound, "UPLOAD_NOT_FOUND", "Upload not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load upload")
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Download godoc
// @Summary Download an attachment by its stored reference
// @Tags Admin Uploads
// @Produce octet-stream
// @Security BearerAuth
// @Param path path string true "Stored reference, as listed on the intake"
// @Success 200 {file} file
// @Failure 400,404 {object} response.Response
// @Router /admin/files/{path} [get]
func (h *Handler) Download(c *gin.Context) {
	u, absPath, err := h.service.Resolve(c.Request.Context(), c.Param("path"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidReference):
			response.Error(c, http.StatusBadRequest, "INVALID_REFERENCE", "Invalid file reference")
		case errors.Is(err, ErrUploadNotFound):
			response.Error(c, http.StatusNotFound, "UPLOAD_NOT_FOUND", "Upload not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load upload")
		}
		return
	}
	c.Header("Content-Type", u.MimeType)
	c.FileAttachment(absPath, u.OriginalName)
}
