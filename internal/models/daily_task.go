package models

import (
	"time"
)

// DailyTask is one broadcast instance of a Task, stamped with the ISO week
// it belongs to. Immutable after creation.
type DailyTask struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     uint64    `gorm:"not null" json:"task_id"`
	SentAt     time.Time `json:"sent_at"`
	WeekNumber int       `gorm:"not null;index:idx_daily_tasks_week" json:"week_number"`
	Year       int       `gorm:"not null;index:idx_daily_tasks_week" json:"year"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
