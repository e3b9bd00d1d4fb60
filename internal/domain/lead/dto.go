package lead

import (
	"strings"

	"leaddesk/internal/pkg/sanitize"
)

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=50"`
	BusinessName    string `json:"business_name" validate:"required,max=200"`
	RevenueRange    string `json:"revenue_range" validate:"omitempty,oneof=under-10k 10k-25k 25k-50k 50k-100k 100k-250k over-250k"`
	BookkeepingTool string `json:"bookkeeping_tool" validate:"omitempty,oneof=quickbooks xero wave freshbooks spreadsheets none other"`
	Message         string `json:"message" validate:"required,max=5000"`
}

// Normalize strips markup from the free-text fields so validation sees the
// values that will be stored.
func (r *ContactRequest) Normalize() {
	r.Name = sanitize.Text(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = sanitize.Text(r.Phone)
	r.BusinessName = sanitize.Text(r.BusinessName)
	r.RevenueRange = strings.TrimSpace(r.RevenueRange)
	r.BookkeepingTool = strings.TrimSpace(r.BookkeepingTool)
	r.Message = sanitize.Text(r.Message)
}

// UpdateLeadStatusRequest represents status update
type UpdateLeadStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=new contacted qualified converted rejected lost"`
	Notes  string `json:"notes"`
	Reason string `json:"reason"` // For rejection
}

// RejectLeadRequest carries the reason a lead was turned down.
type RejectLeadRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// LeadListResponse represents paginated list
type LeadListResponse struct {
	Leads []*Lead `json:"leads"`
	Total int64   `json:"total"`
}

const ContactSuccessMessage = "Message sent successfully!"
