package models

import (
	"time"
)

// Warning is an immutable moderation record. The count of a user's warnings
// drives the ban threshold.
type Warning struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	UserID   int64     `gorm:"not null;index" json:"user_id"`
	IssuedBy int64     `gorm:"not null" json:"issued_by"`
	Reason   string    `gorm:"type:text" json:"reason"`
	IssuedAt time.Time `json:"issued_at"`
}
