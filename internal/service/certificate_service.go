package service

import (
	"fmt"
	"strings"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/util"
	"hipaa_training_backend/pkg/monitoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo *repository.CertificateRepository
	Audit    *AuditService
	Cfg      *config.Config
}

func NewCertificateService(certRepo *repository.CertificateRepository, audit *AuditService, cfg *config.Config) *CertificateService {
	return &CertificateService{CertRepo: certRepo, Audit: audit, Cfg: cfg}
}

// Issue creates a certificate for a passed quiz. Expiry is always issue date
// plus the configured validity window.
func (s *CertificateService) Issue(user *model.User, score float64, ipAddress string) (*model.Certificate, error) {
	now := time.Now()
	cert := &model.Certificate{
		UserID:        user.ID,
		CertificateID: uuid.NewString(),
		Score:         score,
		IssueDate:     now,
		ExpiryDate:    now.AddDate(0, 0, s.Cfg.Training.CertValidityDays),
	}
	if err := s.CertRepo.Create(cert); err != nil {
		return nil, err
	}
	monitoring.CertificatesIssued.Inc()
	s.Audit.Record(user.ID, model.ActionCertIssued,
		fmt.Sprintf("certificate_id=%s score=%.1f", cert.CertificateID, score), ipAddress)
	return cert, nil
}

// VerificationResult is the public verification answer. It never exposes more
// than the holder's name and the certificate lifecycle state.
type VerificationResult struct {
	Valid         bool      `json:"valid"`
	Status        string    `json:"status"`
	CertificateID string    `json:"certificateId"`
	HolderName    string    `json:"holderName,omitempty"`
	IssueDate     time.Time `json:"issueDate,omitempty"`
	ExpiryDate    time.Time `json:"expiryDate,omitempty"`
}

func (s *CertificateService) Verify(certificateID string) (*VerificationResult, error) {
	cert, err := s.CertRepo.FindByCertificateID(certificateID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCertNotFound
	}
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{
		CertificateID: cert.CertificateID,
		IssueDate:     cert.IssueDate,
		ExpiryDate:    cert.ExpiryDate,
	}
	if cert.User != nil {
		result.HolderName = cert.User.FullName
	}
	switch {
	case cert.Revoked:
		result.Status = "revoked"
	case !cert.ExpiryDate.After(time.Now()):
		result.Status = "expired"
	default:
		result.Valid = true
		result.Status = "active"
	}
	return result, nil
}

func (s *CertificateService) Revoke(certificateID string, revokedBy uint, ipAddress string) error {
	err := s.CertRepo.Revoke(certificateID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCertNotFound
	}
	if err != nil {
		return err
	}
	s.Audit.Record(revokedBy, model.ActionCertRevoked, "certificate_id="+certificateID, ipAddress)
	return nil
}

func (s *CertificateService) ListForUser(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.FindByUser(userID)
}

// RenderText produces the downloadable plain-text certificate.
func (s *CertificateService) RenderText(cert *model.Certificate, holder *model.User) string {
	const width = 62
	line := strings.Repeat("=", width)
	var b strings.Builder
	b.WriteString(line + "\n")
	center(&b, width, "CERTIFICATE OF COMPLETION")
	center(&b, width, "")
	center(&b, width, "HIPAA Compliance Training for Pharmacy Staff")
	center(&b, width, "")
	center(&b, width, "This certifies that")
	center(&b, width, holder.FullName)
	if holder.Facility != "" {
		center(&b, width, holder.Facility)
	}
	center(&b, width, "")
	center(&b, width, fmt.Sprintf("has passed the knowledge assessment with a score of %.1f%%", cert.Score))
	center(&b, width, "")
	center(&b, width, "Certificate ID: "+cert.CertificateID)
	center(&b, width, "Issued:  "+cert.IssueDate.Format("January 2, 2006"))
	center(&b, width, "Expires: "+cert.ExpiryDate.Format("January 2, 2006"))
	b.WriteString(line + "\n")
	return b.String()
}

func center(b *strings.Builder, width int, s string) {
	if len(s) >= width {
		b.WriteString(s + "\n")
		return
	}
	pad := (width - len(s)) / 2
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}
