package repository

import (
	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// GormPointsRepository is a GORM implementation of PointsRepository
type GormPointsRepository struct {
	db *gorm.DB
}

// NewPointsRepository creates a new PointsRepository
func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &GormPointsRepository{db: db}
}

// Append inserts one ledger entry
func (r *GormPointsRepository) Append(entry *models.PointEntry) error {
	return r.db.Create(entry).Error
}

// SumForUser returns the summed points of a user for one week scope
func (r *GormPointsRepository) SumForUser(userID int64, week, year int) (int, error) {
	var total int64
	err := r.db.Model(&models.PointEntry{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ? AND week_number = ? AND year = ?", userID, week, year).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// Leaderboard ranks non-banned users with a positive weekly total. Ordering
// is total descending, user id ascending, so a given storage state always
// yields the same ranking.
func (r *GormPointsRepository) Leaderboard(week, year, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.Model(&models.User{}).
		Select("users.id AS user_id, users.username, users.first_name, COALESCE(SUM(point_entries.points), 0) AS total_points").
		Joins("LEFT JOIN point_entries ON point_entries.user_id = users.id AND point_entries.week_number = ? AND point_entries.year = ?", week, year).
		Where("users.is_banned = ?", false).
		Group("users.id, users.username, users.first_name").
		Having("COALESCE(SUM(point_entries.points), 0) > 0").
		Order("total_points DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AllUsersStats returns every known user with their weekly total. Banned
// and zero-point users are included; this is the operator view, not the
// public leaderboard.
func (r *GormPointsRepository) AllUsersStats(week, year int) ([]UserStatsRow, error) {
	var rows []UserStatsRow
	err := r.db.Model(&models.User{}).
		Select("users.id AS user_id, users.username, users.first_name, users.is_banned, users.warnings_count, COALESCE(SUM(point_entries.points), 0) AS total_points").
		Joins("LEFT JOIN point_entries ON point_entries.user_id = users.id AND point_entries.week_number = ? AND point_entries.year = ?", week, year).
		Group("users.id, users.username, users.first_name, users.is_banned, users.warnings_count").
		Order("total_points DESC, users.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// HasAnswerAward reports whether a task_answer entry referencing the answer
// already exists. This is the idempotency check of the approve-then-award
// flow.
func (r *GormPointsRepository) HasAnswerAward(answerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.PointEntry{}).
		Where("reason = ? AND reference_id = ?", models.PointReasonTaskAnswer, answerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
