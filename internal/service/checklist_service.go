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

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChecklistService manages the self-audit checklist. Item-level state is a
// sensitive compliance record: snapshots are stored encrypted, with only the
// per-category counts kept readable for reporting.
type ChecklistService struct {
	Content      *content.Store
	ProgressRepo *repository.ProgressRepository
	Audit        *AuditService
	Cipher       *crypto.Cipher
	Cfg          *config.Config
}

func NewChecklistService(
	store *content.Store,
	progressRepo *repository.ProgressRepository,
	audit *AuditService,
	cipher *crypto.Cipher,
	cfg *config.Config,
) *ChecklistService {
	return &ChecklistService{
		Content:      store,
		ProgressRepo: progressRepo,
		Audit:        audit,
		Cipher:       cipher,
		Cfg:          cfg,
	}
}

type ChecklistItemState struct {
	Text           string `json:"text"`
	Category       string `json:"category"`
	ValidationHint string `json:"validationHint,omitempty"`
	Completed      bool   `json:"completed"`
}

type ChecklistView struct {
	Items      []ChecklistItemState          `json:"items"`
	Percentage float64                       `json:"percentage"`
	Feedback   string                        `json:"feedback"`
	Categories map[string]model.CategoryStat `json:"categories"`
	SavedAt    *time.Time                    `json:"savedAt,omitempty"`
}

// Get returns the checklist merged with the user's latest saved snapshot. A
// snapshot that cannot be decrypted is reported, not silently treated as
// empty.
func (s *ChecklistService) Get(userID uint) (*ChecklistView, error) {
	completed := make(map[string]bool)
	var savedAt *time.Time

	record, err := s.ProgressRepo.LatestChecklist(userID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if record != nil {
		plain, err := s.Cipher.DecryptString(record.Payload)
		if err != nil {
			return nil, fmt.Errorf("checklist snapshot unreadable: %w", err)
		}
		if err := json.Unmarshal([]byte(plain), &completed); err != nil {
			return nil, fmt.Errorf("checklist snapshot unreadable: %w", err)
		}
		savedAt = &record.CompletedAt
	}

	return s.buildView(completed, savedAt), nil
}

// Save stores a full checklist snapshot. Unknown item texts are rejected so a
// stale client cannot invent checklist state.
func (s *ChecklistService) Save(userID uint, completedTexts []string, ipAddress string) (*ChecklistView, error) {
	completed := make(map[string]bool, len(completedTexts))
	for _, text := range completedTexts {
		if !s.Content.HasChecklistItem(text) {
			return nil, util.ErrChecklistItem
		}
		completed[text] = true
	}

	payload, err := json.Marshal(completed)
	if err != nil {
		return nil, err
	}
	encrypted, err := s.Cipher.EncryptString(string(payload))
	if err != nil {
		return nil, err
	}

	summary := CategorySummary(s.Content.ChecklistItems, completed)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &model.TrainingProgress{
		UserID:          userID,
		Payload:         encrypted,
		CategorySummary: datatypes.JSON(summaryJSON),
		CompletedAt:     now,
	}
	if err := s.ProgressRepo.Create(record); err != nil {
		return nil, err
	}

	s.Audit.Record(userID, model.ActionChecklistSaved,
		fmt.Sprintf("completed=%d/%d", len(completed), len(s.Content.ChecklistItems)), ipAddress)
	return s.buildView(completed, &now), nil
}

// CompleteItem marks a single item done on top of the latest snapshot and
// saves the result as a new snapshot.
func (s *ChecklistService) CompleteItem(userID uint, text, ipAddress string) (*ChecklistView, error) {
	item, ok := s.Content.ChecklistItem(text)
	if !ok {
		return nil, util.ErrChecklistItem
	}

	current, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(current.Items))
	for _, state := range current.Items {
		if state.Completed || state.Text == item.Text {
			texts = append(texts, state.Text)
		}
	}

	view, err := s.Save(userID, texts, ipAddress)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(userID, model.ActionChecklistItem, "item="+item.Text, ipAddress)
	return view, nil
}

func (s *ChecklistService) buildView(completed map[string]bool, savedAt *time.Time) *ChecklistView {
	view := &ChecklistView{SavedAt: savedAt}
	done := 0
	for _, item := range s.Content.ChecklistItems {
		state := ChecklistItemState{
			Text:           item.Text,
			Category:       item.Category,
			ValidationHint: item.ValidationHint,
			Completed:      completed[item.Text],
		}
		if state.Completed {
			done++
		}
		view.Items = append(view.Items, state)
	}
	view.Percentage = ChecklistPercentage(done, len(s.Content.ChecklistItems))
	view.Feedback = PerformanceFeedback(view.Percentage, s.Cfg.Training.PassThreshold, s.Cfg.Training.GoodThreshold)
	view.Categories = CategorySummary(s.Content.ChecklistItems, completed)
	return view
}
