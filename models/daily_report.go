package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportStatus represents the approval workflow state of a daily report
type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// DailyReport represents one day's work report for a project
type DailyReport struct {
	ID         uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID  uint           `json:"projectId" gorm:"not null;index"`
	AuthorID   string         `json:"authorId" gorm:"type:uuid;not null;index"`
	ReportDate time.Time      `json:"reportDate" gorm:"not null;index"`
	Content    string         `json:"content" gorm:"not null"`
	Status     ReportStatus   `json:"status" gorm:"type:varchar(10);default:'draft';index"`
	ReviewerID *string        `json:"reviewerId" gorm:"type:uuid;default:null"`
	ReviewNote string         `json:"reviewNote" gorm:"default:null"`
	ReviewedAt *time.Time     `json:"reviewedAt" gorm:"default:null"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Author   User  `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
}
