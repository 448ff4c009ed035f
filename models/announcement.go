package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement represents a platform-wide notice with a publish window.
// Active is maintained by the scheduler as StartsAt/EndsAt pass.
type Announcement struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string         `json:"title" gorm:"not null"`
	Body      string         `json:"body" gorm:"not null"`
	AuthorID  string         `json:"authorId" gorm:"type:uuid;not null;index"`
	StartsAt  time.Time      `json:"startsAt" gorm:"not null;index"`
	EndsAt    *time.Time     `json:"endsAt" gorm:"default:null;index"` // nil means no expiry
	Active    bool           `json:"active" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// InWindow reports whether the announcement's publish window covers t
func (a *Announcement) InWindow(t time.Time) bool {
	if t.Before(a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && t.After(*a.EndsAt) {
		return false
	}
	return true
}
