package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatquestbot/internal/models"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// PointsEarnedOn returns the activity points a user accrued on the given
// day, 0 if no row exists
func (r *GormActivityRepository) PointsEarnedOn(userID int64, day string) (int, error) {
	var activity models.ChatActivity
	err := r.db.Where("user_id = ? AND date = ?", userID, day).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return activity.PointsEarned, nil
}

// RecordMessage upserts the (user, day) row in one statement, adding one
// message and the given word and point increments.
func (r *GormActivityRepository) RecordMessage(userID int64, day string, words, points int) error {
	activity := &models.ChatActivity{
		UserID:        userID,
		Date:          day,
		MessagesCount: 1,
		WordsCount:    words,
		PointsEarned:  points,
	}
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"messages_count": gorm.Expr("messages_count + 1"),
				"words_count":    gorm.Expr("words_count + ?", words),
				"points_earned":  gorm.Expr("points_earned + ?", points),
			}),
		}).
		Create(activity).Error
}
