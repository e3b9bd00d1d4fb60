package lead

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository handles lead data access
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, id int64) (*Lead, error)
	List(ctx context.Context, status *Status, limit, offset int) ([]*Lead, int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status, notes, reason string) error
	MarkContacted(ctx context.Context, id int64, at time.Time) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lead *Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Lead, error) {
	var lead Lead
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads newest first with an optional status filter
func (r *repository) List(ctx context.Context, status *Status, limit, offset int) ([]*Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Lead{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []*Lead
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error
	return leads, total, err
}

// UpdateStatus sets status. Empty notes or reason leave the stored value alone.
func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, notes, reason string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	res := r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// MarkContacted records a follow-up
func (r *repository) MarkContacted(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Updates(map[string]interface{}{
		"last_contacted_at": at,
		"follow_up_count":   gorm.Expr("follow_up_count + 1"),
		"updated_at":        at,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// CountByStatus returns lead counts by status
func (r *repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
