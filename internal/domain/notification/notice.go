package notification

import "context"

// LeadType says which form produced a lead.
type LeadType string

const (
	LeadIntake  LeadType = "intake"
	LeadContact LeadType = "contact"
)

// Notice is the payload every notifier receives when a lead is stored.
type Notice struct {
	LeadType     LeadType `json:"leadType"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	BusinessName string   `json:"businessName,omitempty"`
	// Summary is an optional free-text digest of the submission.
	Summary string `json:"summary,omitempty"`
}

// Notifier delivers a Notice somewhere a person will see it.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice) error

func (f NotifierFunc) Notify(ctx context.Context, n Notice) error { return f(ctx, n) }

func (t LeadType) formType() string {
	if t == LeadIntake {
		return "Client Intake Form"
	}
	return "Contact Form"
}

func (t LeadType) subjectLabel() string {
	if t == LeadIntake {
		return "Client Intake"
	}
	return "Contact Form"
}

func businessOrDefault(name string) string {
	if name == "" {
		return "Not provided"
	}
	return name
}
