package service

import (
	"testing"

	"hipaa_training_backend/internal/content"

	"github.com/stretchr/testify/assert"
)

func quizBank() []content.QuizQuestion {
	return []content.QuizQuestion{
		{Question: "q1", Options: []string{"A) a", "B) b"}, Answer: "A"},
		{Question: "q2", Options: []string{"A) a", "B) b"}, Answer: "B"},
		{Question: "q3", Options: []string{"A) a", "B) b", "C) c"}, Answer: "C"},
		{Question: "q4", Options: []string{"A) a", "B) b"}, Answer: "A"},
		{Question: "q5", Options: []string{"A) a", "B) b"}, Answer: "B"},
	}
}

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name        string
		answers     []string
		wantCorrect int
		wantPct     float64
		wantPassed  bool
	}{
		{"all correct", []string{"A", "B", "C", "A", "B"}, 5, 100, true},
		{"four of five", []string{"A", "B", "C", "A", "A"}, 4, 80, true},
		{"below threshold", []string{"A", "B", "A", "A", "A"}, 3, 60, false},
		{"all wrong", []string{"B", "A", "A", "B", "A"}, 0, 0, false},
		{"no answers", nil, 0, 0, false},
		{"short submission", []string{"A", "B"}, 2, 40, false},
		{"extra answers ignored", []string{"A", "B", "C", "A", "B", "A", "A"}, 5, 100, true},
		{"lowercase and padding accepted", []string{" a ", "b", "c)", "A", "B"}, 5, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GradeQuiz(quizBank(), tt.answers, 80)
			assert.Equal(t, tt.wantCorrect, result.CorrectCount)
			assert.Equal(t, 5, result.TotalCount)
			assert.InDelta(t, tt.wantPct, result.Percentage, 0.01)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Len(t, result.Review, 5)
		})
	}
}

func TestGradeQuizEmptyBank(t *testing.T) {
	result := GradeQuiz(nil, []string{"A"}, 80)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0.0, result.Percentage)
	assert.False(t, result.Passed)
}

func TestGradeQuizReviewExplanations(t *testing.T) {
	bank := []content.QuizQuestion{
		{Question: "q", Options: []string{"A) a", "B) b"}, Answer: "B", Explanation: "because"},
	}
	result := GradeQuiz(bank, []string{"A"}, 80)
	assert.False(t, result.Review[0].IsCorrect)
	assert.Equal(t, "B", result.Review[0].Correct)
	assert.Equal(t, "because", result.Review[0].Explanation)
}

func TestGradeComprehension(t *testing.T) {
	questions := []content.ComprehensionQuestion{
		{Question: "q1", Options: []string{"x", "y"}, CorrectIndex: 1},
		{Question: "q2", Options: []string{"x", "y", "z"}, CorrectIndex: 0},
	}

	score, passed := GradeComprehension(questions, []int{1, 0}, 70)
	assert.Equal(t, 100.0, score)
	assert.True(t, passed)

	score, passed = GradeComprehension(questions, []int{1, 2}, 70)
	assert.Equal(t, 50.0, score)
	assert.False(t, passed)

	// Lessons without questions always pass.
	score, passed = GradeComprehension(nil, nil, 70)
	assert.Equal(t, 0.0, score)
	assert.True(t, passed)
}

func TestChecklistPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"none", 0, 15, 0},
		{"all", 15, 15, 100},
		{"partial", 12, 15, 80},
		{"empty checklist", 0, 0, 0},
		{"negative completed clamped", -3, 10, 0},
		{"over-completed clamped", 20, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChecklistPercentage(tt.completed, tt.total)
			assert.InDelta(t, tt.want, got, 0.01)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestPerformanceFeedback(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "Excellent! You're HIPAA compliant!"},
		{80, "Excellent! You're HIPAA compliant!"},
		{79.9, "Good progress! Review areas needing improvement."},
		{60, "Good progress! Review areas needing improvement."},
		{59.9, "Critical gaps identified. Immediate action required."},
		{0, "Critical gaps identified. Immediate action required."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PerformanceFeedback(tt.pct, 80, 60))
	}
}

func TestCategorySummary(t *testing.T) {
	items := []content.ChecklistItem{
		{Text: "a", Category: "Training"},
		{Text: "b", Category: "Training"},
		{Text: "c", Category: "Technical"},
	}
	summary := CategorySummary(items, map[string]bool{"a": true, "c": true})

	assert.Equal(t, 2, summary["Training"].Total)
	assert.Equal(t, 1, summary["Training"].Completed)
	assert.Equal(t, 1, summary["Technical"].Total)
	assert.Equal(t, 1, summary["Technical"].Completed)
}
