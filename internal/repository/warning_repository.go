package repository

import (
	"fmt"

	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// GormWarningRepository is a GORM implementation of WarningRepository
type GormWarningRepository struct {
	db *gorm.DB
}

// NewWarningRepository creates a new WarningRepository
func NewWarningRepository(db *gorm.DB) WarningRepository {
	return &GormWarningRepository{db: db}
}

// Add appends the warning, increments the user's warning count and bans the
// user once the count reaches maxWarnings. All three writes share one
// transaction: a reader sees either none of them or all of them.
func (r *GormWarningRepository) Add(warning *models.Warning, maxWarnings int) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(warning).Error; err != nil {
			return fmt.Errorf("failed to create warning: %w", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", warning.UserID).
			UpdateColumn("warnings_count", gorm.Expr("warnings_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment warnings: %w", err)
		}

		if err := tx.First(&user, warning.UserID).Error; err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}

		if user.WarningsCount >= maxWarnings && !user.IsBanned {
			if err := tx.Model(&user).UpdateColumn("is_banned", true).Error; err != nil {
				return fmt.Errorf("failed to ban user: %w", err)
			}
			user.IsBanned = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListForUser returns a user's warnings, newest first
func (r *GormWarningRepository) ListForUser(userID int64) ([]models.Warning, error) {
	var warnings []models.Warning
	err := r.db.Where("user_id = ?", userID).
		Order("issued_at DESC, id DESC").
		Find(&warnings).Error
	if err != nil {
		return nil, err
	}
	return warnings, nil
}
