package services

import (
	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/repositories"
	"gorm.io/gorm"
)

// DashboardService aggregates read-only project figures. Every call
// recomputes from the store; there is no cache.
type DashboardService struct {
	wbsRepo          *repositories.WBSRepository
	reportRepo       *repositories.ReportRepository
	projectRepo      *repositories.ProjectRepository
	announcementRepo *repositories.AnnouncementRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		wbsRepo:          repositories.NewWBSRepository(db),
		reportRepo:       repositories.NewReportRepository(db),
		projectRepo:      repositories.NewProjectRepository(db),
		announcementRepo: repositories.NewAnnouncementRepository(db),
	}
}

// ProjectDashboard assembles the summary figures for one project
func (s *DashboardService) ProjectDashboard(projectID uint) (dto.ProjectDashboard, error) {
	dashboard := dto.ProjectDashboard{ProjectID: projectID}

	var err error
	if dashboard.WBSItemCount, err = s.wbsRepo.CountByProject(projectID); err != nil {
		return dashboard, err
	}
	if dashboard.WBSMaxDepth, err = s.wbsRepo.MaxLevel(projectID); err != nil {
		return dashboard, err
	}
	if dashboard.ReportCounts, err = s.reportRepo.CountByStatus(projectID); err != nil {
		return dashboard, err
	}
	if dashboard.PendingApprovals, err = s.reportRepo.CountPending(projectID); err != nil {
		return dashboard, err
	}
	if dashboard.MemberCount, err = s.projectRepo.CountMembers(projectID); err != nil {
		return dashboard, err
	}
	if dashboard.ActiveAnnouncements, err = s.announcementRepo.FindActive(); err != nil {
		return dashboard, err
	}

	return dashboard, nil
}
