package models

import (
	"time"
)

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypePhoto ContentType = "photo"
	ContentTypeVideo ContentType = "video"
	ContentTypeMixed ContentType = "mixed"
)

// Valid reports whether ct is one of the known content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentTypeText, ContentTypePhoto, ContentTypeVideo, ContentTypeMixed:
		return true
	}
	return false
}

// Task is a reusable task template. Tasks are never deleted; retiring one
// means clearing IsActive.
type Task struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Text        string      `gorm:"type:text;not null" json:"text"`
	ContentType ContentType `gorm:"type:varchar(20);not null" json:"content_type"`
	Points      int         `gorm:"not null" json:"points"`
	IsActive    bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
}
