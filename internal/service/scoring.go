package service

import (
	"strings"

	"hipaa_training_backend/internal/content"
	"hipaa_training_backend/internal/model"
)

// QuizResult is the outcome of grading one quiz attempt.
type QuizResult struct {
	CorrectCount int              `json:"correctCount"`
	TotalCount   int              `json:"totalCount"`
	Percentage   float64          `json:"percentage"`
	Passed       bool             `json:"passed"`
	Review       []QuestionReview `json:"review"`
}

// QuestionReview explains one graded question back to the trainee.
type QuestionReview struct {
	Question    string `json:"question"`
	Given       string `json:"given"`
	Correct     string `json:"correct"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// GradeQuiz scores lettered answers ("A".."D") against the question bank.
// Missing or malformed answers count as wrong, never as errors; the score is
// always within [0, total].
func GradeQuiz(questions []content.QuizQuestion, answers []string, passThreshold float64) QuizResult {
	result := QuizResult{TotalCount: len(questions)}
	for i, q := range questions {
		given := ""
		if i < len(answers) {
			given = normalizeAnswer(answers[i])
		}
		correct := given == q.Answer
		if correct {
			result.CorrectCount++
		}
		result.Review = append(result.Review, QuestionReview{
			Question:    q.Question,
			Given:       given,
			Correct:     q.Answer,
			IsCorrect:   correct,
			Explanation: q.Explanation,
		})
	}
	if result.TotalCount > 0 {
		result.Percentage = float64(result.CorrectCount) / float64(result.TotalCount) * 100
	}
	result.Passed = result.TotalCount > 0 && result.Percentage >= passThreshold
	return result
}

// normalizeAnswer maps user input like " b " or "b)" onto the letter key.
func normalizeAnswer(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return s[:1]
}

// GradeComprehension scores a lesson's index-based mini-quiz as a percentage.
func GradeComprehension(questions []content.ComprehensionQuestion, answers []int, passThreshold float64) (score float64, passed bool) {
	if len(questions) == 0 {
		return 0, true
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			correct++
		}
	}
	score = float64(correct) / float64(len(questions)) * 100
	return score, score >= passThreshold
}

// ChecklistPercentage computes completion over the full item set. An empty
// checklist yields 0, never NaN.
func ChecklistPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return float64(completed) / float64(total) * 100
}

// PerformanceFeedback maps a compliance percentage to the dashboard message.
func PerformanceFeedback(percentage, passThreshold, goodThreshold float64) string {
	switch {
	case percentage >= passThreshold:
		return "Excellent! You're HIPAA compliant!"
	case percentage >= goodThreshold:
		return "Good progress! Review areas needing improvement."
	default:
		return "Critical gaps identified. Immediate action required."
	}
}

// CategorySummary aggregates checklist completion per category, keyed by the
// category name. Only counts leave this function; item texts stay out of the
// readable columns.
func CategorySummary(items []content.ChecklistItem, completed map[string]bool) map[string]model.CategoryStat {
	summary := make(map[string]model.CategoryStat)
	for _, item := range items {
		c := summary[item.Category]
		c.Total++
		if completed[item.Text] {
			c.Completed++
		}
		summary[item.Category] = c
	}
	return summary
}
