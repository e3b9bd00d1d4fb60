package intake

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"leaddesk/internal/database"
)

// Repository stores submitted intakes.
type Repository interface {
	Insert(ctx context.Context, in *Intake) error
	GetByID(ctx context.Context, id int64) (*Intake, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*Intake, error)
	List(ctx context.Context, limit, offset int) ([]*Intake, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert writes in with a single INSERT. A second insert for the same
// submission id returns ErrDuplicateSubmission.
func (r *repository) Insert(ctx context.Context, in *Intake) error {
	err := r.db.WithContext(ctx).Create(in).Error
	if err != nil && database.IsUniqueViolation(err) {
		return ErrDuplicateSubmission
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Intake, error) {
	var in Intake
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIntakeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *repository) GetBySubmissionID(ctx context.Context, submissionID string) (*Intake, error) {
	var in Intake
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&in).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIntakeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*Intake, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Intake{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*Intake
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}
