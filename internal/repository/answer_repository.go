package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

var (
	// ErrAnswerNotFound is returned when a review targets an answer id that does not exist.
	ErrAnswerNotFound = errors.New("answer repository: answer not found")
	// ErrAnswerAlreadyReviewed is returned when a review targets an answer that already left pending.
	ErrAnswerAlreadyReviewed = errors.New("answer repository: answer already reviewed")
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// Create inserts a new pending answer
func (r *GormAnswerRepository) Create(answer *models.Answer) error {
	answer.Status = models.AnswerStatusPending
	return r.db.Create(answer).Error
}

// FindByID finds an answer with its daily task and template preloaded
func (r *GormAnswerRepository) FindByID(id uint64) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.Preload("DailyTask").Preload("DailyTask.Task").
		First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Review transitions a pending answer to a terminal status. The update is
// guarded on the pending state so a concurrent or repeated review can never
// overwrite reviewer and timestamp of the first decision.
func (r *GormAnswerRepository) Review(id uint64, status models.AnswerStatus, reviewerID int64, reviewedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Answer{}).
			Where("id = ? AND status = ?", id, models.AnswerStatusPending).
			Updates(map[string]interface{}{
				"status":      status,
				"reviewed_by": reviewerID,
				"reviewed_at": reviewedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update answer status: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Answer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up answer: %w", err)
		}
		if count == 0 {
			return ErrAnswerNotFound
		}
		return ErrAnswerAlreadyReviewed
	})
}

// ListPending returns all pending answers, oldest first
func (r *GormAnswerRepository) ListPending() ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.Preload("DailyTask").Preload("DailyTask.Task").
		Where("status = ?", models.AnswerStatusPending).
		Order("answered_at ASC, id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// ListApprovedWithoutAward returns approved answers with no task_answer
// ledger entry referencing them. These are the answers a crash left
// approved but unpaid.
func (r *GormAnswerRepository) ListApprovedWithoutAward() ([]models.Answer, error) {
	awardSubQuery := r.db.Model(&models.PointEntry{}).
		Select("1").
		Where("point_entries.reason = ?", models.PointReasonTaskAnswer).
		Where("point_entries.reference_id = answers.id")

	var answers []models.Answer
	err := r.db.Preload("DailyTask").Preload("DailyTask.Task").
		Where("status = ?", models.AnswerStatusApproved).
		Where("NOT EXISTS (?)", awardSubQuery).
		Order("id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
