package models

import "time"

// WBSItem represents one work-breakdown-structure node. Items are stored
// flat; the parent/child tree is assembled in memory from ParentID.
type WBSItem struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID   uint      `json:"projectId" gorm:"not null;index"`
	ParentID    *uint     `json:"parentId" gorm:"index"` // nil means root
	Code        string    `json:"code" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"default:null"`
	LevelNumber int       `json:"levelNumber" gorm:"not null;default:1"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Children is a computed view only, never persisted
	Children []*WBSItem `json:"children,omitempty" gorm:"-"`
}

// IsRoot reports whether the item sits at the top of its tree
func (w *WBSItem) IsRoot() bool {
	return w.ParentID == nil
}
