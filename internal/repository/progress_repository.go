package repository

import (
	"hipaa_training_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Create appends a progress record. Records are insert-only; corrections are
// made by adding a newer record, never by rewriting history.
func (r *ProgressRepository) Create(record *model.TrainingProgress) error {
	return r.DB.Create(record).Error
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.TrainingProgress, error) {
	var records []model.TrainingProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at").
		Find(&records).Error
	return records, err
}

// LatestQuiz returns the most recent record carrying a quiz score for the
// user, or gorm.ErrRecordNotFound when the user never took the quiz.
func (r *ProgressRepository) LatestQuiz(userID uint) (*model.TrainingProgress, error) {
	var record model.TrainingProgress
	err := r.DB.Where("user_id = ? AND quiz_score IS NOT NULL", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// LatestChecklist returns the most recent checklist snapshot for the user.
func (r *ProgressRepository) LatestChecklist(userID uint) (*model.TrainingProgress, error) {
	var record model.TrainingProgress
	err := r.DB.Where("user_id = ? AND category_summary IS NOT NULL", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CompletedLessonTitles lists the distinct lesson titles the user has marked
// complete.
func (r *ProgressRepository) CompletedLessonTitles(userID uint) ([]string, error) {
	var titles []string
	err := r.DB.Model(&model.TrainingProgress{}).
		Where("user_id = ? AND lesson_title <> ''", userID).
		Distinct("lesson_title").
		Pluck("lesson_title", &titles).Error
	return titles, err
}

// ResetForUser deletes every progress record belonging to the user.
func (r *ProgressRepository) ResetForUser(userID uint) (int64, error) {
	result := r.DB.Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.TrainingProgress{})
	return result.RowsAffected, result.Error
}

// QuizStats aggregates the latest quiz scores across all users for the
// organization dashboard.
type QuizStats struct {
	UsersWithQuiz int64
	AverageScore  float64
	PassedCount   int64
}

func (r *ProgressRepository) QuizStats(passThreshold float64) (*QuizStats, error) {
	// Latest quiz score per user; older attempts are superseded.
	latest := r.DB.Model(&model.TrainingProgress{}).
		Select("user_id, MAX(created_at) AS latest_at").
		Where("quiz_score IS NOT NULL").
		Group("user_id")

	var stats QuizStats
	err := r.DB.Model(&model.TrainingProgress{}).
		Joins("JOIN (?) AS latest ON training_progress.user_id = latest.user_id AND training_progress.created_at = latest.latest_at", latest).
		Where("training_progress.quiz_score IS NOT NULL").
		Count(&stats.UsersWithQuiz).Error
	if err != nil {
		return nil, err
	}
	if stats.UsersWithQuiz == 0 {
		return &stats, nil
	}

	err = r.DB.Model(&model.TrainingProgress{}).
		Joins("JOIN (?) AS latest ON training_progress.user_id = latest.user_id AND training_progress.created_at = latest.latest_at", latest).
		Where("training_progress.quiz_score IS NOT NULL").
		Select("AVG(quiz_score)").
		Scan(&stats.AverageScore).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.TrainingProgress{}).
		Joins("JOIN (?) AS latest ON training_progress.user_id = latest.user_id AND training_progress.created_at = latest.latest_at", latest).
		Where("training_progress.quiz_score >= ?", passThreshold).
		Count(&stats.PassedCount).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
