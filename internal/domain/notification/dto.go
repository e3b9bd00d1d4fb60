package notification

// NotifyLeadRequest is the body of POST /notify-lead.
type NotifyLeadRequest struct {
	LeadType     LeadType `json:"leadType" validate:"required,oneof=intake contact"`
	Name         string   `json:"name" validate:"required,max=200"`
	Email        string   `json:"email" validate:"required,email"`
	BusinessName string   `json:"businessName" validate:"max=200"`
}
