package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/content"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"

	"gorm.io/gorm"
)

// ReportService builds per-user compliance reports and the organization
// dashboard. It reads only the non-sensitive columns: scores, counts and the
// per-category summaries, never the encrypted payloads.
type ReportService struct {
	Content      *content.Store
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	CertRepo     *repository.CertificateRepository
	Audit        *AuditService
	Cfg          *config.Config
}

func NewReportService(
	store *content.Store,
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	certRepo *repository.CertificateRepository,
	audit *AuditService,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		Content:      store,
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		CertRepo:     certRepo,
		Audit:        audit,
		Cfg:          cfg,
	}
}

// UserReport is the per-user compliance picture.
type UserReport struct {
	UserID              uint                          `json:"userId"`
	Username            string                        `json:"username"`
	FullName            string                        `json:"fullName"`
	LessonsCompleted    int                           `json:"lessonsCompleted"`
	LessonsTotal        int                           `json:"lessonsTotal"`
	QuizScore           *float64                      `json:"quizScore,omitempty"`
	QuizPassed          bool                          `json:"quizPassed"`
	ChecklistPercentage float64                       `json:"checklistPercentage"`
	Categories          map[string]model.CategoryStat `json:"categories,omitempty"`
	OverallScore        float64                       `json:"overallScore"`
	Feedback            string                        `json:"feedback"`
	CertificateID       string                        `json:"certificateId,omitempty"`
	CertificateExpiry   *time.Time                    `json:"certificateExpiry,omitempty"`
	GeneratedAt         time.Time                     `json:"generatedAt"`
}

func (s *ReportService) UserReport(user *model.User) (*UserReport, error) {
	report := &UserReport{
		UserID:       user.ID,
		Username:     user.Username,
		FullName:     user.FullName,
		LessonsTotal: len(s.Content.Lessons),
		GeneratedAt:  time.Now(),
	}

	titles, err := s.ProgressRepo.CompletedLessonTitles(user.ID)
	if err != nil {
		return nil, err
	}
	report.LessonsCompleted = len(titles)

	quiz, err := s.ProgressRepo.LatestQuiz(user.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if quiz != nil {
		report.QuizScore = quiz.QuizScore
		report.QuizPassed = quiz.QuizScore != nil && *quiz.QuizScore >= s.Cfg.Training.PassThreshold
	}

	checklist, err := s.ProgressRepo.LatestChecklist(user.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if checklist != nil && len(checklist.CategorySummary) > 0 {
		var categories map[string]model.CategoryStat
		if err := json.Unmarshal(checklist.CategorySummary, &categories); err != nil {
			return nil, fmt.Errorf("report: category summary unreadable: %w", err)
		}
		report.Categories = categories
		done, total := 0, 0
		for _, c := range categories {
			done += c.Completed
			total += c.Total
		}
		report.ChecklistPercentage = ChecklistPercentage(done, total)
	}

	// Overall score averages checklist and quiz once the quiz has been taken;
	// until then the checklist stands alone.
	if report.QuizScore != nil {
		report.OverallScore = (report.ChecklistPercentage + *report.QuizScore) / 2
	} else {
		report.OverallScore = report.ChecklistPercentage
	}
	report.Feedback = PerformanceFeedback(report.OverallScore, s.Cfg.Training.PassThreshold, s.Cfg.Training.GoodThreshold)

	cert, err := s.CertRepo.LatestActive(user.ID, time.Now())
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if cert != nil {
		report.CertificateID = cert.CertificateID
		report.CertificateExpiry = &cert.ExpiryDate
	}
	return report, nil
}

// OrgStats is the organization-wide dashboard.
type OrgStats struct {
	TotalUsers       int64                       `json:"totalUsers"`
	UsersWithQuiz    int64                       `json:"usersWithQuiz"`
	AverageQuizScore float64                     `json:"averageQuizScore"`
	PassRate         float64                     `json:"passRate"`
	Certificates     repository.CertificateStats `json:"certificates"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
}

func (s *ReportService) OrgStats() (*OrgStats, error) {
	stats := &OrgStats{GeneratedAt: time.Now()}

	total, err := s.UserRepo.CountAll()
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = total

	quiz, err := s.ProgressRepo.QuizStats(s.Cfg.Training.PassThreshold)
	if err != nil {
		return nil, err
	}
	stats.UsersWithQuiz = quiz.UsersWithQuiz
	stats.AverageQuizScore = quiz.AverageScore
	if quiz.UsersWithQuiz > 0 {
		stats.PassRate = float64(quiz.PassedCount) / float64(quiz.UsersWithQuiz) * 100
	}

	certs, err := s.CertRepo.Stats(time.Now())
	if err != nil {
		return nil, err
	}
	stats.Certificates = *certs
	return stats, nil
}

// ExportDashboard writes the dashboard to the report directory in the given
// format ("csv" or "json") and returns the file path.
func (s *ReportService) ExportDashboard(format string, requestedBy uint, ipAddress string) (string, error) {
	stats, err := s.OrgStats()
	if err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	var path string
	switch format {
	case "json":
		path = filepath.Join(s.Cfg.Report.Dir, "compliance_dashboard_"+timestamp+".json")
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return "", err
		}
	case "csv":
		path = filepath.Join(s.Cfg.Report.Dir, "compliance_dashboard_"+timestamp+".csv")
		if err := s.writeDashboardCSV(path, stats); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("report: unsupported export format %q", format)
	}

	s.Audit.Record(requestedBy, model.ActionReportGenerated,
		fmt.Sprintf("format=%s file=%s", format, filepath.Base(path)), ipAddress)
	return path, nil
}

func (s *ReportService) writeDashboardCSV(path string, stats *OrgStats) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"total_users", strconv.FormatInt(stats.TotalUsers, 10)},
		{"users_with_quiz", strconv.FormatInt(stats.UsersWithQuiz, 10)},
		{"average_quiz_score", strconv.FormatFloat(stats.AverageQuizScore, 'f', 1, 64)},
		{"pass_rate", strconv.FormatFloat(stats.PassRate, 'f', 1, 64)},
		{"certificates_total", strconv.FormatInt(stats.Certificates.Total, 10)},
		{"certificates_active", strconv.FormatInt(stats.Certificates.Active, 10)},
		{"certificates_expired", strconv.FormatInt(stats.Certificates.Expired, 10)},
		{"certificates_revoked", strconv.FormatInt(stats.Certificates.Revoked, 10)},
		{"generated_at", stats.GeneratedAt.Format(time.RFC3339)},
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
