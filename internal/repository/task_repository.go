package repository

import (
	"time"

	"gorm.io/gorm"

	"chatquestbot/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task template
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// ListActive returns all active task templates
func (r *GormTaskRepository) ListActive() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("is_active = ?", true).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetActive toggles the active flag of a task
func (r *GormTaskRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).
		Update("is_active", active).Error
}

// Count returns the total number of task templates
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

// RecordBroadcast inserts one daily-task instance for the given week
func (r *GormTaskRepository) RecordBroadcast(taskID uint64, sentAt time.Time, week, year int) (*models.DailyTask, error) {
	daily := &models.DailyTask{
		TaskID:     taskID,
		SentAt:     sentAt,
		WeekNumber: week,
		Year:       year,
	}
	if err := r.db.Create(daily).Error; err != nil {
		return nil, err
	}

	if err := r.db.Preload("Task").First(daily, daily.ID).Error; err != nil {
		return nil, err
	}
	return daily, nil
}

// CurrentDailyTask returns the most recently broadcast daily task of the
// given week. A task broadcast twice in one week governs submissions only
// through its latest instance.
func (r *GormTaskRepository) CurrentDailyTask(week, year int) (*models.DailyTask, error) {
	var daily models.DailyTask
	err := r.db.Preload("Task").
		Where("week_number = ? AND year = ?", week, year).
		Order("sent_at DESC, id DESC").
		First(&daily).Error
	if err != nil {
		return nil, err
	}
	return &daily, nil
}
