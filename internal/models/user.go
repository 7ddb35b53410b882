package models

import (
	"time"
)

// User is a chat participant identified by their Telegram user id.
// Warnings and the banned flag are only mutated through the warning
// repository so the ban threshold invariant holds after every write.
type User struct {
	ID            int64     `gorm:"primarykey;autoIncrement:false" json:"id"`
	Username      string    `gorm:"type:varchar(255)" json:"username"`
	FirstName     string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName      string    `gorm:"type:varchar(255)" json:"last_name"`
	IsOperator    bool      `gorm:"not null;default:false" json:"is_operator"`
	IsBanned      bool      `gorm:"not null;default:false" json:"is_banned"`
	WarningsCount int       `gorm:"not null;default:0" json:"warnings_count"`
	JoinedAt      time.Time `json:"joined_at"`

	// Relations
	Answers  []Answer  `gorm:"foreignKey:UserID" json:"-"`
	Warnings []Warning `gorm:"foreignKey:UserID" json:"-"`
}
