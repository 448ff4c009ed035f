package services

import (
	"errors"
	"time"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/repositories"
	"github.com/pcm-backend/utils"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects and membership
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	wbsRepo     *repositories.WBSRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(db),
		wbsRepo:     repositories.NewWBSRepository(db),
	}
}

// ListProjects retrieves projects with pagination, filtering and sorting.
// Admin sees all projects, regular users only those they own or joined.
func (s *ProjectService) ListProjects(filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	var response dto.ProjectListResponse

	// Set defaults if not provided
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}

	// Valid sort columns (whitelist approach for security)
	validSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"status":     true,
	}
	if !validSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}

	projects, totalCount, err := s.projectRepo.FindWithPagination(repositories.ProjectQuery{
		UserID:    filter.UserID,
		IsAdmin:   filter.IsAdmin,
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
	if err != nil {
		return response, err
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
	return response, nil
}

// GetProjectDetail retrieves a project with its member list. Non-admins
// must own or belong to the project.
func (s *ProjectService) GetProjectDetail(projectID uint, userID string, isAdmin bool) (models.Project, error) {
	project, err := s.projectRepo.WithMembers(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, utils.NotFoundError("project %d", projectID)
		}
		return models.Project{}, err
	}

	if !isAdmin && project.OwnerID != userID {
		member, err := s.projectRepo.IsMember(projectID, userID)
		if err != nil {
			return models.Project{}, err
		}
		if !member {
			return models.Project{}, utils.PermissionDeniedError("no access to project %d", projectID)
		}
	}

	return project, nil
}

// CreateProject creates a project owned by the caller, who joins as a
// manager member.
func (s *ProjectService) CreateProject(ownerID string, req dto.CreateProjectRequest) (models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectActive,
		OwnerID:     ownerID,
	}

	var err error
	if project.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		return models.Project{}, utils.ValidationError("invalid startDate")
	}
	if project.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		return models.Project{}, utils.ValidationError("invalid endDate")
	}

	project, err = s.projectRepo.Create(project)
	if err != nil {
		return models.Project{}, err
	}

	_, err = s.projectRepo.AddMember(models.ProjectMember{
		ProjectID: project.ID,
		UserID:    ownerID,
		Role:      models.RoleManager,
	})
	if err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// UpdateProject edits a project's fields
func (s *ProjectService) UpdateProject(projectID uint, req dto.UpdateProjectRequest) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, utils.NotFoundError("project %d", projectID)
		}
		return models.Project{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return models.Project{}, utils.ValidationError("name cannot be empty")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		switch models.ProjectStatus(*req.Status) {
		case models.ProjectActive, models.ProjectCompleted, models.ProjectOnHold:
			project.Status = models.ProjectStatus(*req.Status)
		default:
			return models.Project{}, utils.ValidationError("unknown status %q", *req.Status)
		}
	}
	if req.StartDate != nil {
		start, err := parseDatePtr(req.StartDate)
		if err != nil {
			return models.Project{}, utils.ValidationError("invalid startDate")
		}
		project.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDatePtr(req.EndDate)
		if err != nil {
			return models.Project{}, utils.ValidationError("invalid endDate")
		}
		project.EndDate = end
	}

	if err := s.projectRepo.Update(project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// DeleteProject removes a project. Refused while WBS items remain so
// the audit trail stays attached to a live project.
func (s *ProjectService) DeleteProject(projectID uint) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("project %d", projectID)
		}
		return err
	}

	count, err := s.wbsRepo.CountByProject(projectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ConflictError("project %d still has %d wbs items", projectID, count)
	}

	return s.projectRepo.Delete(projectID)
}

// AddMember adds a user to a project with an optional role
func (s *ProjectService) AddMember(projectID uint, req dto.AddMemberRequest) (models.ProjectMember, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProjectMember{}, utils.NotFoundError("project %d", projectID)
		}
		return models.ProjectMember{}, err
	}

	exists, err := s.projectRepo.IsMember(projectID, req.UserID)
	if err != nil {
		return models.ProjectMember{}, err
	}
	if exists {
		return models.ProjectMember{}, utils.ConflictError("user already a member")
	}

	role := models.RoleMember
	if req.Role != "" {
		switch models.Role(req.Role) {
		case models.RoleMember, models.RoleManager:
			role = models.Role(req.Role)
		default:
			return models.ProjectMember{}, utils.ValidationError("unknown role %q", req.Role)
		}
	}

	return s.projectRepo.AddMember(models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	})
}

// RemoveMember drops a user from a project
func (s *ProjectService) RemoveMember(projectID uint, userID string) error {
	rows, err := s.projectRepo.RemoveMember(projectID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return utils.NotFoundError("membership of user %s in project %d", userID, projectID)
	}
	return nil
}

// parseDatePtr parses an optional RFC 3339 date or date-time string
func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		t, err = time.Parse("2006-01-02", *value)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
