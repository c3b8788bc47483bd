package repository

import (
	"hipaa_training_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) FindByCertificateID(certificateID string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Preload("User").
		Where("certificate_id = ?", certificateID).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).
		Order("issue_date DESC").
		Find(&certs).Error
	return certs, err
}

// LatestActive returns the newest non-revoked, unexpired certificate for the
// user, or gorm.ErrRecordNotFound.
func (r *CertificateRepository) LatestActive(userID uint, now time.Time) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("user_id = ? AND revoked = ? AND expiry_date > ?", userID, false, now).
		Order("issue_date DESC").
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) Revoke(certificateID string) error {
	result := r.DB.Model(&model.Certificate{}).
		Where("certificate_id = ? AND revoked = ?", certificateID, false).
		Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type CertificateStats struct {
	Total   int64
	Active  int64
	Expired int64
	Revoked int64
}

func (r *CertificateRepository) Stats(now time.Time) (*CertificateStats, error) {
	var stats CertificateStats
	if err := r.DB.Model(&model.Certificate{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Certificate{}).
		Where("revoked = ? AND expiry_date > ?", false, now).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Certificate{}).
		Where("revoked = ? AND expiry_date <= ?", false, now).
		Count(&stats.Expired).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Certificate{}).
		Where("revoked = ?", true).
		Count(&stats.Revoked).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
