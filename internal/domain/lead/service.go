package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leaddesk/internal/domain/notification"
	"leaddesk/internal/pkg/sanitize"
)

// Service handles lead business logic
type Service struct {
	repo          Repository
	notifier      notification.Notifier
	notifyTimeout time.Duration
	log           *zap.Logger
	now           func() time.Time
}

// NewService creates lead service
func NewService(repo Repository, notifier notification.Notifier, notifyTimeout time.Duration, log *zap.Logger) *Service {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &Service{
		repo:          repo,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		log:           log,
		now:           time.Now,
	}
}

// SubmitContact stores a contact form lead, then tells staff about it.
// Only the insert can fail the submission.
func (s *Service) SubmitContact(ctx context.Context, req *ContactRequest, ip, userAgent string) (*Lead, error) {
	now := s.now().UTC()
	lead := &Lead{
		Name:            sanitize.Text(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           optional(req.Phone),
		BusinessName:    optional(req.BusinessName),
		RevenueRange:    optional(req.RevenueRange),
		BookkeepingTool: optional(req.BookkeepingTool),
		Message:         optional(req.Message),
		Source:          SourceContactForm,
		Status:          StatusNew,
		IPAddress:       optional(ip),
		UserAgent:       optional(userAgent),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		s.log.Error("save contact lead", zap.String("email", lead.Email), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.notify(ctx, lead)
	return lead, nil
}

func (s *Service) notify(ctx context.Context, lead *Lead) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	notice := notification.Notice{
		LeadType: notification.LeadContact,
		Name:     lead.Name,
		Email:    lead.Email,
	}
	if lead.BusinessName != nil {
		notice.BusinessName = *lead.BusinessName
	}
	if lead.Message != nil {
		notice.Summary = *lead.Message
	}
	if err := s.notifier.Notify(ctx, notice); err != nil {
		s.log.Warn("notify contact lead", zap.Int64("lead_id", lead.ID), zap.Error(err))
	}
}

// GetByID returns lead by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// ListLeads returns leads with optional status filter
func (s *Service) ListLeads(ctx context.Context, status *Status, limit, offset int) ([]*Lead, int64, error) {
	return s.repo.List(ctx, status, limit, offset)
}

// UpdateStatus updates lead status. Converted leads are final.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status, notes, reason string) error {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead.IsConverted() {
		return ErrAlreadyConverted
	}
	return s.repo.UpdateStatus(ctx, id, status, sanitize.Text(notes), sanitize.Text(reason))
}

// MarkContacted records a follow-up and moves new leads to contacted
func (s *Service) MarkContacted(ctx context.Context, id int64) error {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if lead.Status == StatusNew {
		if err := s.repo.UpdateStatus(ctx, id, StatusContacted, "", ""); err != nil {
			return err
		}
	}

	return s.repo.MarkContacted(ctx, id, s.now().UTC())
}

// RejectLead marks lead as rejected
func (s *Service) RejectLead(ctx context.Context, id int64, reason string) error {
	return s.UpdateStatus(ctx, id, StatusRejected, "", reason)
}

// GetStats returns lead counts by status
func (s *Service) GetStats(ctx context.Context) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx)
}

func optional(s string) *string {
	clean := sanitize.Text(s)
	if clean == "" {
		return nil
	}
	return &clean
}
