// Package content holds the static training material: lessons, the knowledge
// quiz and the self-audit checklist. Material is loaded once at startup from
// JSON files in the content directory; missing or unparseable files are
// replaced with the built-in defaults, which are written back to disk so they
// can be edited.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type Lesson struct {
	Title                  string                  `json:"title"`
	Content                string                  `json:"content"`
	KeyPoints              []string                `json:"key_points"`
	ComprehensionQuestions []ComprehensionQuestion `json:"comprehension_questions,omitempty"`
}

// ComprehensionQuestion is the short per-lesson check; index-based answers,
// unlike the lettered main quiz.
type ComprehensionQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type ChecklistItem struct {
	Text           string `json:"text"`
	Category       string `json:"category"`
	ValidationHint string `json:"validation_hint,omitempty"`
}

const (
	lessonsFile   = "lessons.json"
	quizFile      = "quiz_questions.json"
	checklistFile = "checklist_items.json"
)

type Store struct {
	Lessons        []Lesson
	QuizQuestions  []QuizQuestion
	ChecklistItems []ChecklistItem

	lessonIndex map[string]int
}

// Load reads the three content files from dir, falling back to defaults for
// any file that is missing or corrupt.
func Load(dir string, log *zap.Logger) (*Store, error) {
	s := &Store{}

	if err := loadFile(dir, lessonsFile, &s.Lessons, DefaultLessons, log); err != nil {
		return nil, err
	}
	if err := loadFile(dir, quizFile, &s.QuizQuestions, DefaultQuizQuestions, log); err != nil {
		return nil, err
	}
	if err := loadFile(dir, checklistFile, &s.ChecklistItems, DefaultChecklistItems, log); err != nil {
		return nil, err
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.lessonIndex = make(map[string]int, len(s.Lessons))
	for i, l := range s.Lessons {
		s.lessonIndex[l.Title] = i
	}
	return s, nil
}

func loadFile[T any](dir, name string, dst *[]T, defaults func() []T, log *zap.Logger) error {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err == nil {
		if jsonErr := json.Unmarshal(raw, dst); jsonErr == nil {
			log.Info("Loaded content file", zap.String("file", name), zap.Int("entries", len(*dst)))
			return nil
		} else {
			log.Warn("Content file unparseable, restoring defaults", zap.String("file", name), zap.Error(jsonErr))
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	} else {
		log.Warn("Content file missing, creating defaults", zap.String("file", name))
	}

	*dst = defaults()
	data, err := json.MarshalIndent(*dst, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (s *Store) validate() error {
	if len(s.Lessons) == 0 {
		return errors.New("content: no lessons defined")
	}
	seen := make(map[string]bool, len(s.Lessons))
	for _, l := range s.Lessons {
		if l.Title == "" || l.Content == "" {
			return fmt.Errorf("content: lesson %q missing title or body", l.Title)
		}
		if seen[l.Title] {
			return fmt.Errorf("content: duplicate lesson title %q", l.Title)
		}
		seen[l.Title] = true
		for _, q := range l.ComprehensionQuestions {
			if len(q.Options) < 2 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("content: lesson %q has malformed comprehension question", l.Title)
			}
		}
	}
	if len(s.QuizQuestions) == 0 {
		return errors.New("content: no quiz questions defined")
	}
	for i, q := range s.QuizQuestions {
		if len(q.Options) < 2 {
			return fmt.Errorf("content: quiz question %d has fewer than two options", i)
		}
		if !answerInRange(q.Answer, len(q.Options)) {
			return fmt.Errorf("content: quiz question %d has answer %q outside options A-%c", i, q.Answer, 'A'+len(q.Options)-1)
		}
	}
	if len(s.ChecklistItems) == 0 {
		return errors.New("content: no checklist items defined")
	}
	for i, item := range s.ChecklistItems {
		if item.Text == "" || item.Category == "" {
			return fmt.Errorf("content: checklist item %d missing text or category", i)
		}
	}
	return nil
}

// answerInRange reports whether a lettered answer ("A".."D") addresses one of
// n options.
func answerInRange(answer string, n int) bool {
	if len(answer) != 1 {
		return false
	}
	idx := int(answer[0] - 'A')
	return idx >= 0 && idx < n
}

func (s *Store) Lesson(title string) (Lesson, bool) {
	i, ok := s.lessonIndex[title]
	if !ok {
		return Lesson{}, false
	}
	return s.Lessons[i], true
}

func (s *Store) HasChecklistItem(text string) bool {
	for _, item := range s.ChecklistItems {
		if item.Text == text {
			return true
		}
	}
	return false
}

func (s *Store) ChecklistItem(text string) (ChecklistItem, bool) {
	for _, item := range s.ChecklistItems {
		if item.Text == text {
			return item, true
		}
	}
	return ChecklistItem{}, false
}
