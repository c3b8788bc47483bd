package model

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingProgress is an insert-only record of a training event: a viewed
// lesson, a graded quiz attempt, or a completed checklist. Sensitive payloads
// (per-question answers, checklist item states) are stored encrypted in
// Payload; CategorySummary keeps only aggregate counts and stays readable for
// reporting.
// swagger:model TrainingProgress
type TrainingProgress struct {
	BaseModel
	UserID          uint           `gorm:"index;not null" json:"userId"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LessonTitle     string         `gorm:"size:255" json:"lessonTitle,omitempty"`
	QuizScore       *float64       `json:"quizScore,omitempty"`
	CorrectCount    *int           `json:"correctCount,omitempty"`
	TotalCount      *int           `json:"totalCount,omitempty"`
	Payload         string         `gorm:"type:text" json:"-"`
	CategorySummary datatypes.JSON `json:"categorySummary,omitempty"`
	CompletedAt     time.Time      `json:"completedAt"`
}

func (TrainingProgress) TableName() string {
	return "training_progress"
}

// CategoryStat is the per-category slice of a checklist snapshot, serialized
// into TrainingProgress.CategorySummary.
type CategoryStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
