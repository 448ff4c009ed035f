package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

// Project represents a construction project container
type Project struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"default:null"`
	Status      ProjectStatus  `json:"status" gorm:"type:varchar(20);default:'active'"`
	OwnerID     string         `json:"ownerId" gorm:"type:uuid;not null;index"`
	StartDate   *time.Time     `json:"startDate" gorm:"default:null"`
	EndDate     *time.Time     `json:"endDate" gorm:"default:null"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Owner   User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectMember links a user to a project with a project-scoped role
type ProjectMember struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `json:"projectId" gorm:"not null;index:idx_project_user,unique"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index:idx_project_user,unique"`
	Role      Role      `json:"role" gorm:"type:varchar(10);default:'member'"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
