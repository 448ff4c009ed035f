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

// ReportService handles the daily-report approval workflow:
// draft -> submitted -> approved | rejected, with rejected reports
// editable and resubmittable.
type ReportService struct {
	reportRepo *repositories.ReportRepository
}

// NewReportService creates a new report service instance
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{reportRepo: repositories.NewReportRepository(db)}
}

// ListByProject retrieves the reports of a project, newest date first
func (s *ReportService) ListByProject(projectID uint) ([]models.DailyReport, error) {
	return s.reportRepo.FindByProject(projectID)
}

// GetReport retrieves a report by ID
func (s *ReportService) GetReport(id uint) (models.DailyReport, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DailyReport{}, utils.NotFoundError("report %d", id)
		}
		return models.DailyReport{}, err
	}
	return report, nil
}

// CreateReport creates a draft report authored by the caller
func (s *ReportService) CreateReport(projectID uint, authorID string, req dto.CreateReportRequest) (models.DailyReport, error) {
	date, err := parseDatePtr(&req.ReportDate)
	if err != nil || date == nil {
		return models.DailyReport{}, utils.ValidationError("invalid reportDate")
	}

	return s.reportRepo.Create(models.DailyReport{
		ProjectID:  projectID,
		AuthorID:   authorID,
		ReportDate: *date,
		Content:    req.Content,
		Status:     models.ReportDraft,
	})
}

// UpdateReport edits a report. Only the author may edit, and only while
// the report is a draft or was rejected.
func (s *ReportService) UpdateReport(id uint, userID string, req dto.UpdateReportRequest) (models.DailyReport, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return models.DailyReport{}, err
	}
	if report.AuthorID != userID {
		return models.DailyReport{}, utils.PermissionDeniedError("only the author can edit report %d", id)
	}
	if report.Status != models.ReportDraft && report.Status != models.ReportRejected {
		return models.DailyReport{}, utils.ConflictError("report %d is %s and cannot be edited", id, report.Status)
	}

	if req.ReportDate != nil {
		date, err := parseDatePtr(req.ReportDate)
		if err != nil || date == nil {
			return models.DailyReport{}, utils.ValidationError("invalid reportDate")
		}
		report.ReportDate = *date
	}
	if req.Content != nil {
		if *req.Content == "" {
			return models.DailyReport{}, utils.ValidationError("content cannot be empty")
		}
		report.Content = *req.Content
	}

	if err := s.reportRepo.Update(report); err != nil {
		return models.DailyReport{}, err
	}
	return report, nil
}

// SubmitReport moves a draft or rejected report into review
func (s *ReportService) SubmitReport(id uint, userID string) (models.DailyReport, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return models.DailyReport{}, err
	}
	if report.AuthorID != userID {
		return models.DailyReport{}, utils.PermissionDeniedError("only the author can submit report %d", id)
	}
	if report.Status != models.ReportDraft && report.Status != models.ReportRejected {
		return models.DailyReport{}, utils.ConflictError("report %d is already %s", id, report.Status)
	}

	report.Status = models.ReportSubmitted
	report.ReviewerID = nil
	report.ReviewNote = ""
	report.ReviewedAt = nil
	if err := s.reportRepo.Update(report); err != nil {
		return models.DailyReport{}, err
	}
	return report, nil
}

// ApproveReport accepts a submitted report
func (s *ReportService) ApproveReport(id uint, reviewerID string, note string) (models.DailyReport, error) {
	return s.review(id, reviewerID, note, models.ReportApproved)
}

// RejectReport sends a submitted report back to its author. A review
// note explaining the rejection is mandatory.
func (s *ReportService) RejectReport(id uint, reviewerID string, note string) (models.DailyReport, error) {
	if note == "" {
		return models.DailyReport{}, utils.ValidationError("a review note is required to reject")
	}
	return s.review(id, reviewerID, note, models.ReportRejected)
}

func (s *ReportService) review(id uint, reviewerID, note string, status models.ReportStatus) (models.DailyReport, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return models.DailyReport{}, err
	}
	if report.Status != models.ReportSubmitted {
		return models.DailyReport{}, utils.ConflictError("report %d is %s, not submitted", id, report.Status)
	}
	if report.AuthorID == reviewerID {
		return models.DailyReport{}, utils.PermissionDeniedError("authors cannot review their own reports")
	}

	now := time.Now()
	report.Status = status
	report.ReviewerID = &reviewerID
	report.ReviewNote = note
	report.ReviewedAt = &now
	if err := s.reportRepo.Update(report); err != nil {
		return models.DailyReport{}, err
	}
	return report, nil
}
