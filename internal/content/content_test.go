package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	store, err := Load(dir, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, store.Lessons, 13)
	assert.Len(t, store.QuizQuestions, 15)
	assert.Len(t, store.ChecklistItems, 15)

	// Defaults should now exist on disk for editing.
	for _, name := range []string{"lessons.json", "quiz_questions.json", "checklist_items.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lessons.json"), []byte("{not json"), 0600))

	store, err := Load(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, store.Lessons, 13)

	// The corrupt file is replaced with valid defaults.
	raw, err := os.ReadFile(filepath.Join(dir, "lessons.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Privacy Rule Basics")
}

func TestLoadCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := `[{"title": "Only Lesson", "content": "Body text.", "key_points": ["one"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lessons.json"), []byte(custom), 0600))

	store, err := Load(dir, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, store.Lessons, 1)
	assert.Equal(t, "Only Lesson", store.Lessons[0].Title)

	lesson, ok := store.Lesson("Only Lesson")
	assert.True(t, ok)
	assert.Equal(t, "Body text.", lesson.Content)

	_, ok = store.Lesson("Privacy Rule Basics")
	assert.False(t, ok)
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"duplicate lesson titles", "lessons.json",
			`[{"title": "Dup", "content": "a"}, {"title": "Dup", "content": "b"}]`},
		{"lesson without body", "lessons.json",
			`[{"title": "Empty", "content": ""}]`},
		{"comprehension index out of range", "lessons.json",
			`[{"title": "L", "content": "c", "comprehension_questions": [{"question": "q", "options": ["a", "b"], "correct_index": 5}]}]`},
		{"quiz answer outside options", "quiz_questions.json",
			`[{"question": "q", "options": ["A) a", "B) b"], "answer": "D"}]`},
		{"quiz with one option", "quiz_questions.json",
			`[{"question": "q", "options": ["A) a"], "answer": "A"}]`},
		{"checklist item without category", "checklist_items.json",
			`[{"text": "item", "category": ""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.body), 0600))

			_, err := Load(dir, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestDefaultQuizAnswersInRange(t *testing.T) {
	for i, q := range DefaultQuizQuestions() {
		assert.True(t, answerInRange(q.Answer, len(q.Options)), "question %d", i)
		assert.NotEmpty(t, q.Explanation, "question %d", i)
	}
}

func TestDefaultChecklistCategories(t *testing.T) {
	known := map[string]bool{
		"Training": true, "Knowledge": true, "Technical": true, "Compliance": true,
	}
	for _, item := range DefaultChecklistItems() {
		assert.True(t, known[item.Category], "unexpected category %q", item.Category)
	}
}

func TestChecklistItemLookup(t *testing.T) {
	store := &Store{ChecklistItems: DefaultChecklistItems()}

	assert.True(t, store.HasChecklistItem("Completed Privacy Rule training"))
	assert.False(t, store.HasChecklistItem("Invented item"))

	item, ok := store.ChecklistItem("Completed Privacy Rule training")
	require.True(t, ok)
	assert.Equal(t, "Training", item.Category)
}
