package models

// ChatActivity accumulates one row per (user, calendar day). Date is the
// day key in YYYY-MM-DD form so the unique index behaves the same across
// drivers. PointsEarned never exceeds the configured daily cap.
type ChatActivity struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	UserID        int64  `gorm:"not null;uniqueIndex:idx_chat_activity_user_date" json:"user_id"`
	Date          string `gorm:"type:varchar(10);not null;uniqueIndex:idx_chat_activity_user_date" json:"date"`
	MessagesCount int    `gorm:"not null;default:0" json:"messages_count"`
	WordsCount    int    `gorm:"not null;default:0" json:"words_count"`
	PointsEarned  int    `gorm:"not null;default:0" json:"points_earned"`
}
