package service

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserReportChecklistOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	_, err := env.checklist.Save(user.ID, []string{
		"Completed Privacy Rule training",
		"Reviewed Security Rule requirements",
		"Understands breach notification timeline (60 days)",
	}, "127.0.0.1")
	require.NoError(t, err)

	report, err := env.report.UserReport(user)
	require.NoError(t, err)

	assert.InDelta(t, 20, report.ChecklistPercentage, 0.01)
	assert.Nil(t, report.QuizScore)
	// Without a quiz attempt the checklist stands alone.
	assert.InDelta(t, 20, report.OverallScore, 0.01)
	assert.Equal(t, "Critical gaps identified. Immediate action required.", report.Feedback)
	assert.Empty(t, report.CertificateID)
}

func TestUserReportAveragesQuizAndChecklist(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	all := make([]string, 0, len(env.store.ChecklistItems))
	for _, item := range env.store.ChecklistItems {
		all = append(all, item.Text)
	}
	_, err := env.checklist.Save(user.ID, all, "127.0.0.1")
	require.NoError(t, err)

	_, err = env.training.SubmitQuiz(user, correctAnswers(env), "127.0.0.1")
	require.NoError(t, err)

	report, err := env.report.UserReport(user)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.ChecklistPercentage)
	require.NotNil(t, report.QuizScore)
	assert.Equal(t, 100.0, *report.QuizScore)
	assert.True(t, report.QuizPassed)
	assert.Equal(t, 100.0, report.OverallScore)
	assert.Equal(t, "Excellent! You're HIPAA compliant!", report.Feedback)
	assert.NotEmpty(t, report.CertificateID)
	require.NotNil(t, report.CertificateExpiry)
}

func TestUserReportNewUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "fresh")

	report, err := env.report.UserReport(user)
	require.NoError(t, err)

	assert.Equal(t, 0, report.LessonsCompleted)
	assert.Equal(t, 13, report.LessonsTotal)
	assert.Equal(t, 0.0, report.OverallScore)
	assert.False(t, report.QuizPassed)
}

func TestOrgStats(t *testing.T) {
	env := newTestEnv(t)
	passer := env.newUser(t, "passer")
	failer := env.newUser(t, "failer")
	env.newUser(t, "untrained")

	_, err := env.training.SubmitQuiz(passer, correctAnswers(env), "127.0.0.1")
	require.NoError(t, err)

	wrong := make([]string, len(env.store.QuizQuestions))
	for i := range wrong {
		wrong[i] = "Z"
	}
	_, err = env.training.SubmitQuiz(failer, wrong, "127.0.0.1")
	require.NoError(t, err)

	stats, err := env.report.OrgStats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.UsersWithQuiz)
	assert.InDelta(t, 50, stats.AverageQuizScore, 0.01)
	assert.InDelta(t, 50, stats.PassRate, 0.01)
	assert.EqualValues(t, 1, stats.Certificates.Total)
	assert.EqualValues(t, 1, stats.Certificates.Active)
}

func TestExportDashboardJSON(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	path, err := env.report.ExportDashboard("json", user.ID, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "compliance_dashboard_"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var stats OrgStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.EqualValues(t, 1, stats.TotalUsers)
}

func TestExportDashboardCSV(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	path, err := env.report.ExportDashboard("csv", user.ID, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "value"}, rows[0])
	assert.Equal(t, "total_users", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}

func TestExportDashboardBadFormat(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.report.ExportDashboard("xml", 1, "127.0.0.1")
	assert.Error(t, err)
}
