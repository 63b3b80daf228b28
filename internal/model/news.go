package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// News represents a news item with a publication schedule. AuthorID is set
// once at creation from the authenticated caller and is never updated.
type News struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null;index:idx_due,priority:2"`
	Published   bool      `json:"published" gorm:"not null;default:false;index:idx_due,priority:1"`
	AuthorID    uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
