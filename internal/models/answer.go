package models

import (
	"time"
)

type AnswerStatus string

const (
	AnswerStatusPending  AnswerStatus = "pending"
	AnswerStatusApproved AnswerStatus = "approved"
	AnswerStatusRejected AnswerStatus = "rejected"
)

// Answer is a user's submission against a daily task. Content holds the
// message text for text answers and the platform file id for media.
// Status leaves pending exactly once; approved and rejected are terminal.
type Answer struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	UserID      int64        `gorm:"not null;index:idx_answers_user_status" json:"user_id"`
	DailyTaskID uint64       `gorm:"not null" json:"daily_task_id"`
	MessageID   int          `gorm:"not null" json:"message_id"`
	ContentType ContentType  `gorm:"type:varchar(20);not null" json:"content_type"`
	Content     string       `gorm:"type:text" json:"content"`
	Status      AnswerStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_answers_user_status" json:"status"`
	ReviewedBy  *int64       `json:"reviewed_by"`
	AnsweredAt  time.Time    `json:"answered_at"`
	ReviewedAt  *time.Time   `json:"reviewed_at"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DailyTask DailyTask `gorm:"foreignKey:DailyTaskID" json:"daily_task,omitempty"`
}
