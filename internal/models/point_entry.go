package models

import (
	"time"
)

type PointReason string

const (
	PointReasonTaskAnswer   PointReason = "task_answer"
	PointReasonChatActivity PointReason = "chat_activity"
)

// PointEntry is one immutable row of the points ledger. Totals are always
// derived by summing entries for a (user, week, year) scope; there is no
// running counter anywhere.
type PointEntry struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	UserID      int64       `gorm:"not null;index:idx_points_user_week" json:"user_id"`
	Points      int         `gorm:"not null" json:"points"`
	Reason      PointReason `gorm:"type:varchar(30);not null" json:"reason"`
	ReferenceID *uint64     `json:"reference_id"`
	WeekNumber  int         `gorm:"not null;index:idx_points_user_week" json:"week_number"`
	Year        int         `gorm:"not null;index:idx_points_user_week" json:"year"`
	CreatedAt   time.Time   `json:"created_at"`
}
