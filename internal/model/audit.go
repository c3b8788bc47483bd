package model

import "time"

// Audit action codes. Retained for six years per the HIPAA documentation
// retention requirement.
const (
	ActionUserCreated       = "USER_CREATED"
	ActionLogin             = "LOGIN"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionLockout           = "BRUTE_FORCE_LOCKOUT"
	ActionMFAEnabled        = "MFA_ENABLED"
	ActionMFAFailed         = "MFA_FAILED"
	ActionLessonViewed      = "LESSON_VIEWED"
	ActionLessonCompleted   = "LESSON_COMPLETED"
	ActionQuizCompleted     = "QUIZ_COMPLETED"
	ActionProgressSaved     = "PROGRESS_SAVED"
	ActionProgressReset     = "PROGRESS_RESET"
	ActionChecklistItem     = "CHECKLIST_ITEM_COMPLETED"
	ActionChecklistSaved    = "SENSITIVE_PROGRESS_SAVED"
	ActionEvidenceUploaded  = "EVIDENCE_UPLOADED"
	ActionCertIssued        = "CERTIFICATE_ISSUED"
	ActionCertRevoked       = "CERTIFICATE_REVOKED"
	ActionReportGenerated   = "REPORT_GENERATED"
	ActionUnauthorized      = "UNAUTHORIZED_ACCESS"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	Action    string    `gorm:"size:100;index;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ipAddress"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
