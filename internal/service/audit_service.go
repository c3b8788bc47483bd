package service

import (
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/pkg/logger"

	"go.uber.org/zap"
)

// AuditService writes the tamper-evident trail: one row per event plus a
// structured log line. Audit writes never fail the caller's request; a lost
// row is logged and the operation proceeds.
type AuditService struct {
	AuditRepo *repository.AuditRepository
	Cfg       *config.Config
}

func NewAuditService(auditRepo *repository.AuditRepository, cfg *config.Config) *AuditService {
	return &AuditService{AuditRepo: auditRepo, Cfg: cfg}
}

func (s *AuditService) Record(userID uint, action, details, ipAddress string) {
	entry := &model.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ipAddress,
	}
	if err := s.AuditRepo.Create(entry); err != nil {
		logger.Log.Error("Failed to write audit row",
			zap.String("action", action),
			zap.Uint("user_id", userID),
			zap.Error(err))
		return
	}
	logger.Log.Info("audit",
		zap.String("action", action),
		zap.Uint("user_id", userID),
		zap.String("details", details),
		zap.String("ip", ipAddress))
}

func (s *AuditService) Query(filter repository.AuditFilter) ([]model.AuditLog, error) {
	return s.AuditRepo.Query(filter)
}

// PurgeExpired deletes rows older than the retention window. Run daily from
// the background task loop.
func (s *AuditService) PurgeExpired() (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.Cfg.Security.AuditRetentionDays)
	deleted, err := s.AuditRepo.PurgeOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Log.Info("Purged expired audit rows",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}
