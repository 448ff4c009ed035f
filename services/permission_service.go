package services

import (
	"errors"

	"github.com/pcm-backend/models"
	"github.com/pcm-backend/repositories"
	"gorm.io/gorm"
)

// PermissionService answers the single question the route layer asks:
// may this user perform this named action, optionally within a project.
// The lookup is a flat role allow-list; admins pass every check.
type PermissionService struct {
	db          *gorm.DB
	userRepo    *repositories.UserRepository
	projectRepo *repositories.ProjectRepository
}

// NewPermissionService creates a new permission service instance
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{
		db:          db,
		userRepo:    repositories.NewUserRepository(db),
		projectRepo: repositories.NewProjectRepository(db),
	}
}

// CheckUserPermission reports whether a user holds a named permission.
// With a project id the user must be a member of that project and the
// check runs against their project role; without one it runs against
// their global role. Unknown users and non-members simply get false.
func (s *PermissionService) CheckUserPermission(userID, permissionName string, projectID *uint) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if user.Role == models.RoleAdmin {
		return true, nil
	}

	role := user.Role
	if projectID != nil {
		memberRole, err := s.projectRepo.MemberRole(*projectID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Project owners keep full project permissions without
				// an explicit membership row
				project, perr := s.projectRepo.FindByID(*projectID)
				if perr == nil && project.OwnerID == userID {
					return s.roleHasPermission(models.RoleManager, permissionName)
				}
				return false, nil
			}
			return false, err
		}
		role = memberRole
	}

	return s.roleHasPermission(role, permissionName)
}

func (s *PermissionService) roleHasPermission(role models.Role, permissionName string) (bool, error) {
	var count int64
	err := s.db.Model(&models.RolePermission{}).
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("role_permissions.role = ? AND permissions.name = ?", role, permissionName).
		Count(&count).Error
	return count > 0, err
}
