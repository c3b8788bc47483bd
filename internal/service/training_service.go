package service

import (
	"encoding/json"
	"fmt"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/content"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/util"
	"hipaa_training_backend/pkg/crypto"
	"hipaa_training_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// TrainingService covers the lesson flow and the knowledge quiz. Per-question
// answers are sensitive training records and are stored encrypted; only the
// score and counts stay readable.
type TrainingService struct {
	Content      *content.Store
	ProgressRepo *repository.ProgressRepository
	Certs        *CertificateService
	Audit        *AuditService
	Cipher       *crypto.Cipher
	Cfg          *config.Config
}

func NewTrainingService(
	store *content.Store,
	progressRepo *repository.ProgressRepository,
	certs *CertificateService,
	audit *AuditService,
	cipher *crypto.Cipher,
	cfg *config.Config,
) *TrainingService {
	return &TrainingService{
		Content:      store,
		ProgressRepo: progressRepo,
		Certs:        certs,
		Audit:        audit,
		Cipher:       cipher,
		Cfg:          cfg,
	}
}

// LessonSummary is the list view: title plus completion state, no body.
type LessonSummary struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (s *TrainingService) ListLessons(userID uint) ([]LessonSummary, error) {
	completedTitles, err := s.ProgressRepo.CompletedLessonTitles(userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(completedTitles))
	for _, t := range completedTitles {
		completed[t] = true
	}

	summaries := make([]LessonSummary, 0, len(s.Content.Lessons))
	for _, l := range s.Content.Lessons {
		summaries = append(summaries, LessonSummary{
			Title:     l.Title,
			Completed: completed[l.Title],
		})
	}
	return summaries, nil
}

// LessonDetail is the full lesson with the comprehension questions stripped of
// their answer keys.
type LessonDetail struct {
	Title                  string                   `json:"title"`
	Content                string                   `json:"content"`
	KeyPoints              []string                 `json:"keyPoints"`
	ComprehensionQuestions []PresentedComprehension `json:"comprehensionQuestions,omitempty"`
}

type PresentedComprehension struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (s *TrainingService) GetLesson(userID uint, title, ipAddress string) (*LessonDetail, error) {
	lesson, ok := s.Content.Lesson(title)
	if !ok {
		return nil, util.ErrLessonNotFound
	}

	detail := &LessonDetail{
		Title:     lesson.Title,
		Content:   lesson.Content,
		KeyPoints: lesson.KeyPoints,
	}
	for _, q := range lesson.ComprehensionQuestions {
		detail.ComprehensionQuestions = append(detail.ComprehensionQuestions, PresentedComprehension{
			Question: q.Question,
			Options:  q.Options,
		})
	}

	s.Audit.Record(userID, model.ActionLessonViewed, "lesson="+title, ipAddress)
	return detail, nil
}

// CompleteLesson marks a lesson done. When the lesson carries comprehension
// questions the submitted answers must reach the mini-quiz threshold first.
type LessonCompletion struct {
	Completed bool    `json:"completed"`
	Score     float64 `json:"score"`
	Required  float64 `json:"required"`
}

func (s *TrainingService) CompleteLesson(userID uint, title string, answers []int, ipAddress string) (*LessonCompletion, error) {
	lesson, ok := s.Content.Lesson(title)
	if !ok {
		return nil, util.ErrLessonNotFound
	}

	score, passed := GradeComprehension(lesson.ComprehensionQuestions, answers, s.Cfg.Training.MiniQuizPass)
	result := &LessonCompletion{
		Completed: passed,
		Score:     score,
		Required:  s.Cfg.Training.MiniQuizPass,
	}
	if !passed {
		return result, nil
	}

	record := &model.TrainingProgress{
		UserID:      userID,
		LessonTitle: lesson.Title,
		CompletedAt: time.Now(),
	}
	if err := s.ProgressRepo.Create(record); err != nil {
		return nil, err
	}
	s.Audit.Record(userID, model.ActionLessonCompleted, "lesson="+title, ipAddress)
	return result, nil
}

// PresentedQuestion is a quiz question as shown to the trainee: options but no
// answer key and no explanation.
type PresentedQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (s *TrainingService) QuizQuestions() []PresentedQuestion {
	questions := make([]PresentedQuestion, 0, len(s.Content.QuizQuestions))
	for i, q := range s.Content.QuizQuestions {
		questions = append(questions, PresentedQuestion{
			Index:    i,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return questions
}

// SubmitQuiz grades the attempt, persists it with the answers encrypted, and
// issues a certificate when the score clears the pass threshold.
type QuizSubmission struct {
	Result      QuizResult         `json:"result"`
	Certificate *model.Certificate `json:"certificate,omitempty"`
}

func (s *TrainingService) SubmitQuiz(user *model.User, answers []string, ipAddress string) (*QuizSubmission, error) {
	result := GradeQuiz(s.Content.QuizQuestions, answers, s.Cfg.Training.PassThreshold)

	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	encrypted, err := s.Cipher.EncryptString(string(payload))
	if err != nil {
		return nil, err
	}

	score := result.Percentage
	correct := result.CorrectCount
	total := result.TotalCount
	record := &model.TrainingProgress{
		UserID:       user.ID,
		QuizScore:    &score,
		CorrectCount: &correct,
		TotalCount:   &total,
		Payload:      encrypted,
		CompletedAt:  time.Now(),
	}
	if err := s.ProgressRepo.Create(record); err != nil {
		return nil, err
	}

	outcome := "failed"
	if result.Passed {
		outcome = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(outcome).Inc()
	s.Audit.Record(user.ID, model.ActionQuizCompleted,
		fmt.Sprintf("score=%.1f correct=%d/%d", score, correct, total), ipAddress)

	submission := &QuizSubmission{Result: result}
	if result.Passed {
		cert, err := s.Certs.Issue(user, score, ipAddress)
		if err != nil {
			return nil, err
		}
		submission.Certificate = cert
	}
	return submission, nil
}

// History returns the user's progress records, oldest first, with quiz answer
// payloads decrypted for the owner.
type ProgressEntry struct {
	LessonTitle  string    `json:"lessonTitle,omitempty"`
	QuizScore    *float64  `json:"quizScore,omitempty"`
	CorrectCount *int      `json:"correctCount,omitempty"`
	TotalCount   *int      `json:"totalCount,omitempty"`
	Answers      []string  `json:"answers,omitempty"`
	CompletedAt  time.Time `json:"completedAt"`
	Corrupted    bool      `json:"corrupted,omitempty"`
}

func (s *TrainingService) History(userID uint) ([]ProgressEntry, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]ProgressEntry, 0, len(records))
	for _, r := range records {
		entry := ProgressEntry{
			LessonTitle:  r.LessonTitle,
			QuizScore:    r.QuizScore,
			CorrectCount: r.CorrectCount,
			TotalCount:   r.TotalCount,
			CompletedAt:  r.CompletedAt,
		}
		if r.QuizScore != nil && r.Payload != "" {
			plain, err := s.Cipher.DecryptString(r.Payload)
			if err != nil {
				// Key rotation or tampering; surface the record as
				// unreadable instead of dropping it.
				entry.Corrupted = true
			} else if err := json.Unmarshal([]byte(plain), &entry.Answers); err != nil {
				entry.Corrupted = true
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ResetProgress deletes the user's training records. Certificates and the
// audit trail survive a reset.
func (s *TrainingService) ResetProgress(userID uint, ipAddress string) (int64, error) {
	deleted, err := s.ProgressRepo.ResetForUser(userID)
	if err != nil {
		return 0, err
	}
	s.Audit.Record(userID, model.ActionProgressReset,
		fmt.Sprintf("records=%d", deleted), ipAddress)
	return deleted, nil
}

// LatestQuizScore returns the user's most recent quiz score, or
// gorm.ErrRecordNotFound mapped to a nil pointer.
func (s *TrainingService) LatestQuizScore(userID uint) (*float64, error) {
	record, err := s.ProgressRepo.LatestQuiz(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record.QuizScore, nil
}
