package models

import "time"

// Permission names used by the route layer. Seeded at migration time.
const (
	PermWBSRead            = "wbs.read"
	PermWBSCreate          = "wbs.create"
	PermWBSUpdate          = "wbs.update"
	PermWBSDelete          = "wbs.delete"
	PermReportRead         = "report.read"
	PermReportWrite        = "report.write"
	PermReportApprove      = "report.approve"
	PermProjectManage      = "project.manage"
	PermAnnouncementManage = "announcement.manage"
)

// Permission represents a named capability that can be granted to a role
type Permission struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description" gorm:"default:null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RolePermission grants a permission to a role (flat allow-list)
type RolePermission struct {
	ID           uint `json:"id" gorm:"primaryKey;autoIncrement"`
	Role         Role `json:"role" gorm:"type:varchar(10);not null;index:idx_role_perm,unique"`
	PermissionID uint `json:"permissionId" gorm:"not null;index:idx_role_perm,unique"`

	// Relations
	Permission Permission `json:"permission,omitempty" gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}
