package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leaddesk/internal/domain/notification"
)

// FileStore persists one attachment and returns a reference to it.
type FileStore interface {
	Store(ctx context.Context, name string, content []byte) (string, error)
}

// Store writes a submitted intake.
type Store interface {
	Insert(ctx context.Context, in *Intake) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*Intake, error)
}

// Pipeline runs a submission: upload every attachment, insert the intake
// once, then notify staff.
type Pipeline struct {
	files         FileStore
	store         Store
	notifier      notification.Notifier
	notifyTimeout time.Duration
	log           *zap.Logger
	now           func() time.Time
}

func NewPipeline(files FileStore, store Store, notifier notification.Notifier, notifyTimeout time.Duration, log *zap.Logger) *Pipeline {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &Pipeline{
		files:         files,
		store:         store,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		log:           log,
		now:           time.Now,
	}
}

// Submit stores rec with whatever attachments upload successfully. Only a
// failed insert fails the submission; it returns ErrPersistFailed and no
// notification is sent.
func (p *Pipeline) Submit(ctx context.Context, submissionID string, rec Record, files []Attachment) (*Intake, error) {
	refs := p.upload(ctx, submissionID, files)

	in := newIntake(submissionID, rec, refs, p.now().UTC())
	if err := p.store.Insert(ctx, in); err != nil {
		if !errors.Is(err, ErrDuplicateSubmission) {
			p.log.Error("persist intake",
				zap.String("submission_id", submissionID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
		}
		p.log.Info("intake already stored", zap.String("submission_id", submissionID))
		stored, err := p.store.GetBySubmissionID(ctx, submissionID)
		if err != nil {
			p.log.Warn("load stored intake", zap.String("submission_id", submissionID), zap.Error(err))
		} else {
			in = stored
		}
	}

	p.notify(ctx, in)
	return in, nil
}

func (p *Pipeline) upload(ctx context.Context, submissionID string, files []Attachment) []string {
	if p.files == nil || len(files) == 0 {
		return nil
	}
	refs := make([]string, 0, len(files))
	for _, f := range files {
		name := fmt.Sprintf("%d-%s", p.now().UnixMilli(), f.Name)
		ref, err := p.files.Store(ctx, name, f.Content)
		if err != nil {
			p.log.Warn("upload attachment",
				zap.String("submission_id", submissionID),
				zap.String("file", f.Name),
				zap.Error(err),
			)
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// notify reports the stored row, so staff see the same sanitized text that
// was persisted.
func (p *Pipeline) notify(ctx context.Context, in *Intake) {
	if p.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.notifyTimeout)
	defer cancel()

	notice := notification.Notice{
		LeadType:     notification.LeadIntake,
		Name:         in.ContactName,
		Email:        in.ContactEmail,
		BusinessName: in.LegalName,
		Summary:      Summary(in),
	}
	if err := p.notifier.Notify(ctx, notice); err != nil {
		p.log.Warn("notify intake",
			zap.String("submission_id", in.SubmissionID),
			zap.Error(err),
		)
	}
}

// Summary is the staff-facing digest of in.
func Summary(in *Intake) string {
	notes := "None"
	if in.Notes != nil {
		notes = *in.Notes
	}
	return fmt.Sprintf("New intake form submission.\nIndustry: %s\nEntity: %s\nPlatform: %s\nServices: %s\nNotes: %s",
		in.Industry, in.EntityType, in.AccountingPlatform, strings.Join(in.Services(), ", "), notes)
}
