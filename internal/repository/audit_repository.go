package repository

import (
	"hipaa_training_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(entry *model.AuditLog) error {
	return r.DB.Create(entry).Error
}

// AuditFilter narrows a trail query. Zero values mean "no constraint".
type AuditFilter struct {
	UserID uint
	Action string
	Since  time.Time
	Limit  int
}

func (r *AuditRepository) Query(filter AuditFilter) ([]model.AuditLog, error) {
	q := r.DB.Model(&model.AuditLog{}).Order("created_at DESC")
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var entries []model.AuditLog
	err := q.Find(&entries).Error
	return entries, err
}

// PurgeOlderThan removes audit rows past the retention cutoff and returns the
// number deleted.
func (r *AuditRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := r.DB.Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}
