package database

import (
	"github.com/pcm-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// permission descriptions, keyed by name
var permissionCatalog = map[string]string{
	models.PermWBSRead:            "View WBS trees",
	models.PermWBSCreate:          "Create WBS items",
	models.PermWBSUpdate:          "Edit and reorder WBS items",
	models.PermWBSDelete:          "Delete WBS items",
	models.PermReportRead:         "View daily reports",
	models.PermReportWrite:        "Create and edit daily reports",
	models.PermReportApprove:      "Approve or reject submitted reports",
	models.PermProjectManage:      "Manage project settings and members",
	models.PermAnnouncementManage: "Manage announcements",
}

// role allow-list. Admin bypasses permission checks entirely so it is
// not seeded here.
var rolePermissions = map[models.Role][]string{
	models.RoleMember: {
		models.PermWBSRead,
		models.PermReportRead,
		models.PermReportWrite,
	},
	models.RoleManager: {
		models.PermWBSRead,
		models.PermWBSCreate,
		models.PermWBSUpdate,
		models.PermWBSDelete,
		models.PermReportRead,
		models.PermReportWrite,
		models.PermReportApprove,
		models.PermProjectManage,
		models.PermAnnouncementManage,
	},
}

// SeedPermissions inserts the permission catalog and the role
// allow-list. Safe to run on every startup; existing rows are kept.
func SeedPermissions(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]uint, len(permissionCatalog))
		for name, desc := range permissionCatalog {
			perm := models.Permission{Name: name, Description: desc}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&perm).Error; err != nil {
				return err
			}
			if perm.ID == 0 {
				// Row already existed, look it up for the grant table
				if err := tx.Where("name = ?", name).First(&perm).Error; err != nil {
					return err
				}
			}
			byName[name] = perm.ID
		}

		for role, names := range rolePermissions {
			for _, name := range names {
				grant := models.RolePermission{Role: role, PermissionID: byName[name]}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "role"}, {Name: "permission_id"}},
					DoNothing: true,
				}).Create(&grant).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
