package lead

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leaddesk/internal/pkg/response"
	"leaddesk/internal/pkg/validator"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitContact handles POST /api/v1/leads/contact (public)
// @Summary Submit the contact form
// @Description Stores the lead and notifies staff. Notification failures do not fail the request.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact form"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /leads/contact [post]
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	req.Normalize()
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	lead, err := h.service.SubmitContact(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SUBMISSION_FAILED", "Failed to send message. Please try again.")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": ContactSuccessMessage,
		"lead_id": lead.ID,
	})
}

// GetLead handles GET /api/v1/admin/leads/:id
// @Summary Get lead by ID
// @Description Admin endpoint to view lead details
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response{data=Lead}
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/leads/{id} [get]
func (h *Handler) GetLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// ListLeads handles GET /api/v1/admin/leads
// @Summary List leads
// @Description Admin endpoint to list all leads with optional filtering
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, contacted, qualified, converted, rejected, lost)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=LeadListResponse}
// @Failure 500 {object} response.Response
// @Router /admin/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	var status *Status
	if s := c.Query("status"); s != "" {
		statusVal := Status(s)
		status = &statusVal
	}

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

	leads, total, err := h.service.ListLeads(c.Request.Context(), status, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, LeadListResponse{
		Leads: leads,
		Total: total,
	})
}

// UpdateStatus handles PATCH /api/v1/admin/leads/:id/status
// @Summary Update lead status
// @Tags Admin Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param request body UpdateLeadStatusRequest true "Status update"
// @Success 200 {object} response.Response
// @Failure 400,404,409,422 {object} response.Response
// @Router /admin/leads/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, errs)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes, req.Reason); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// RejectLead handles POST /api/v1/admin/leads/:id/reject
func (h *Handler) RejectLead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RejectLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := h.service.RejectLead(c.Request.Context(), id, req.Reason); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lead rejected"})
}

// MarkContacted handles POST /api/v1/admin/leads/:id/contacted
// @Summary Mark lead as contacted
// @Description Update lead status to contacted and increment follow-up count
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/leads/{id}/contacted [post]
func (h *Handler) MarkContacted(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkContacted(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Lead marked as contacted"})
}

// GetStats handles GET /api/v1/admin/leads/stats
// @Summary Get lead statistics
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/leads/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
	case errors.Is(err, ErrAlreadyConverted):
		response.Error(c, http.StatusConflict, "ALREADY_CONVERTED", "Lead already converted")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
