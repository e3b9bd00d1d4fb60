package intake

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"leaddesk/internal/domain/upload"
	"leaddesk/internal/pkg/response"
	"leaddesk/internal/pkg/validator"
)

// multipartOverhead covers boundaries and part headers on top of file bytes.
const multipartOverhead = 1 << 20

// Handler exposes the intake wizard over HTTP.
type Handler struct {
	service      *Service
	maxFileBytes int64
	log          *zap.Logger
}

func NewHandler(service *Service, maxFileBytes int64, log *zap.Logger) *Handler {
	if maxFileBytes <= 0 {
		maxFileBytes = upload.DefaultMaxFileSize
	}
	return &Handler{service: service, maxFileBytes: maxFileBytes, log: log}
}

// GetCatalog handles GET /api/v1/intake/catalog
// @Summary Intake steps and option lists
// @Tags Intake
// @Produce json
// @Success 200 {object} response.Response{data=CatalogResponse}
// @Router /intake/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, http.StatusOK, CatalogResponse{Steps: Steps, Options: h.service.Catalog()})
}

// StartSession handles POST /api/v1/intake/sessions
// @Summary Start an intake wizard
// @Tags Intake
// @Produce json
// @Success 201 {object} response.Response{data=SessionView}
// @Failure 503 {object} response.Response
// @Router /intake/sessions [post]
func (h *Handler) StartSession(c *gin.Context) {
	view, err := h.service.Start()
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}

// GetSession handles GET /api/v1/intake/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.service.View(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateFields handles PATCH /api/v1/intake/sessions/:id/fields
// @Summary Update intake fields
// @Tags Intake
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body UpdateFieldsRequest true "Field changes"
// @Success 200 {object} response.Response{data=SessionView}
// @Failure 400,404,409,422 {object} response.Response
// @Router /intake/sessions/{id}/fields [patch]
func (h *Handler) UpdateFields(c *gin.Context) {
	var req UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	view, err := h.service.UpdateFields(c.Param("id"), req.Fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ToggleService handles POST /api/v1/intake/sessions/:id/services/:code
func (h *Handler) ToggleService(c *gin.Context) {
	view, err := h.service.ToggleService(c.Param("id"), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Advance handles POST /api/v1/intake/sessions/:id/advance
// A step whose required fields are missing is not an error: moved is false.
func (h *Handler) Advance(c *gin.Context) {
	view, moved, err := h.service.Advance(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"moved": moved, "session": view})
}

// Retreat handles POST /api/v1/intake/sessions/:id/retreat
func (h *Handler) Retreat(c *gin.Context) {
	view, moved, err := h.service.Retreat(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"moved": moved, "session": view})
}

// AddFiles handles POST /api/v1/intake/sessions/:id/files
// @Summary Stage attachments
// @Description Accepts up to 5 documents or images in the "files" field. Files past the limit are dropped.
// @Tags Intake
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param files formData file true "Attachments"
// @Success 200 {object} response.Response
// @Failure 400,404,409,413,503 {object} response.Response
// @Router /intake/sessions/{id}/files [post]
func (h *Handler) AddFiles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileBytes*MaxAttachments+multipartOverhead)

	form, err := c.MultipartForm()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Upload is too large")
			return
		}
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Expected multipart form data")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.Error(c, http.StatusBadRequest, "NO_FILES", "No files provided")
		return
	}

	// Files past the free slots are dropped silently, so only the kept ones
	// are checked and read.
	free, err := h.service.Remaining(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if len(headers) > free {
		headers = headers[:free]
	}
	for _, fh := range headers {
		if !upload.IsAllowed(fh.Filename) {
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
				fmt.Sprintf("%s: accepted types are PDF, CSV, Excel, Word and images", fh.Filename))
			return
		}
		if fh.Size > h.maxFileBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, h.maxFileBytes>>20))
			return
		}
	}

	attachments := make([]Attachment, 0, len(headers))
	for _, fh := range headers {
		content, err := readPart(fh)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Could not read "+fh.Filename)
			return
		}
		attachments = append(attachments, Attachment{
			Name:        filepath.Base(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	view, kept, err := h.service.AddFiles(c.Param("id"), attachments)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"added": kept, "session": view})
}

// RemoveFile handles DELETE /api/v1/intake/sessions/:id/files/:index
func (h *Handler) RemoveFile(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INDEX", "Invalid file index")
		return
	}
	view, removed, err := h.service.RemoveFile(c.Param("id"), index)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed, "session": view})
}

// Submit handles POST /api/v1/intake/sessions/:id/submit
// @Summary Submit the intake
// @Tags Intake
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} response.Response{data=SubmitResponse}
// @Failure 404,409,422,500 {object} response.Response
// @Router /intake/sessions/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	in, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, SubmitResponse{
		Message:   SubmitSuccessMessage,
		IntakeID:  in.ID,
		NextSteps: NextSteps,
	})
}

// ListIntakes handles GET /api/v1/admin/intakes
// @Summary List submitted intakes
// @Tags Admin Intakes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=IntakeListResponse}
// @Router /admin/intakes [get]
func (h *Handler) ListIntakes(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	offset := 0
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	items, total, err := h.service.ListIntakes(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]IntakeResponse, 0, len(items))
	for _, in := range items {
		out = append(out, toResponse(in))
	}
	response.Success(c, http.StatusOK, IntakeListResponse{Intakes: out, Total: total})
}

// GetIntake handles GET /api/v1/admin/intakes/:id
func (h *Handler) GetIntake(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid intake ID")
		return
	}
	in, err := h.service.GetIntake(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(in))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Intake session not found or expired")
	case errors.Is(err, ErrTooManySessions):
		response.Error(c, http.StatusServiceUnavailable, "TOO_MANY_SESSIONS", "Too many intake forms in progress. Please try again later.")
	case errors.Is(err, ErrStagingFull):
		response.Error(c, http.StatusServiceUnavailable, "STAGING_FULL", "Cannot accept more attachments right now. Please try again later.")
	case errors.Is(err, ErrIntakeNotFound):
		response.Error(c, http.StatusNotFound, "INTAKE_NOT_FOUND", "Intake not found")
	case errors.Is(err, ErrUnknownField):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_FIELD", err.Error())
	case errors.Is(err, ErrUnknownOption):
		response.Error(c, http.StatusBadRequest, "INVALID_OPTION", err.Error())
	case errors.Is(err, ErrNotEditable):
		response.Error(c, http.StatusConflict, "NOT_EDITABLE", "Intake can no longer be edited")
	case errors.Is(err, ErrSubmissionInFlight):
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", "Submission already in progress")
	case errors.Is(err, ErrAlreadySubmitted):
		response.Error(c, http.StatusConflict, "ALREADY_SUBMITTED", "Intake already submitted")
	case errors.Is(err, ErrIncomplete):
		response.Error(c, http.StatusUnprocessableEntity, "INCOMPLETE_FORM", "Please complete all required fields")
	case errors.Is(err, ErrPersistFailed):
		response.Error(c, http.StatusInternalServerError, "SUBMISSION_FAILED", SubmitFailureMessage)
	default:
		h.log.Error("intake request", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
