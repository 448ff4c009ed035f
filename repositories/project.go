package repositories

import (
	"github.com/pcm-backend/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects and
// project membership
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id uint) (models.Project, error) {
	var project models.Project
	result := r.db.First(&project, "id = ?", id)
	return project, result.Error
}

// WithMembers loads a project with its member list
func (r *ProjectRepository) WithMembers(id uint) (models.Project, error) {
	var project models.Project
	result := r.db.Preload("Members").Preload("Members.User").First(&project, "id = ?", id)
	return project, result.Error
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(project models.Project) (models.Project, error) {
	result := r.db.Create(&project)
	return project, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(project models.Project) error {
	result := r.db.Save(&project)
	return result.Error
}

// Delete removes a project and its memberships (soft delete)
func (r *ProjectRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, "id = ?", id)
		return result.Error
	})
}

// IsMember checks whether a user belongs to a project
func (r *ProjectRepository) IsMember(projectID uint, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// MemberRole returns the role a user holds within a project
func (r *ProjectRepository) MemberRole(projectID uint, userID string) (models.Role, error) {
	var member models.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

// AddMember inserts a project membership row
func (r *ProjectRepository) AddMember(member models.ProjectMember) (models.ProjectMember, error) {
	result := r.db.Create(&member)
	return member, result.Error
}

// RemoveMember deletes a project membership row
func (r *ProjectRepository) RemoveMember(projectID uint, userID string) (int64, error) {
	result := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	return result.RowsAffected, result.Error
}

// CountMembers counts the members of a project
func (r *ProjectRepository) CountMembers(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// FindWithPagination retrieves projects with pagination, filtering and
// sorting. Non-admins only see projects they own or belong to.
func (r *ProjectRepository) FindWithPagination(filter ProjectQuery) ([]models.Project, int64, error) {
	var projects []models.Project
	var totalCount int64

	db := r.db.Model(&models.Project{})

	if !filter.IsAdmin && filter.UserID != "" {
		db = db.Where(
			"owner_id = ? OR id IN (?)",
			filter.UserID,
			r.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", filter.UserID),
		)
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		db = db.Where("(name LIKE ? OR description LIKE ?)", searchPattern, searchPattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	orderString := filter.SortBy + " " + filter.SortOrder
	if err := db.Order(orderString).Limit(filter.PageSize).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, totalCount, nil
}

// ProjectQuery collects the parameters for FindWithPagination
type ProjectQuery struct {
	UserID    string
	IsAdmin   bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
