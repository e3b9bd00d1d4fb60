package notification

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Email is an outbound staff email.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ComposeEmail renders the staff email for n.
func ComposeEmail(to string, n Notice) Email {
	var b strings.Builder
	b.WriteString("New lead received!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", n.Name)
	fmt.Fprintf(&b, "Email: %s\n", n.Email)
	fmt.Fprintf(&b, "Business: %s\n", businessOrDefault(n.BusinessName))
	fmt.Fprintf(&b, "Type: %s\n", n.LeadType)
	if n.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", n.Summary)
	}
	b.WriteString("\nPlease follow up within 1 business day.\n")

	return Email{
		To:      to,
		Subject: fmt.Sprintf("New %s Submission", n.LeadType.subjectLabel()),
		Body:    b.String(),
	}
}

// MailLog writes the email it would send to the log. It is the default
// notifier when no mail provider is configured.
type MailLog struct {
	to  string
	log *zap.Logger
}

func NewMailLog(to string, log *zap.Logger) *MailLog {
	return &MailLog{to: to, log: log}
}

func (m *MailLog) Notify(_ context.Context, n Notice) error {
	if n.Name == "" || n.Email == "" {
		return ErrInvalidNotice
	}
	email := ComposeEmail(m.to, n)
	m.log.Info("lead notification",
		zap.String("lead_type", string(n.LeadType)),
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("body", email.Body),
	)
	return nil
}
