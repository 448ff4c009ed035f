package repositories

import (
	"github.com/pcm-backend/models"
	"gorm.io/gorm"
)

// ReportRepository handles database operations for daily reports
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// FindByID retrieves a report by its ID
func (r *ReportRepository) FindByID(id uint) (models.DailyReport, error) {
	var report models.DailyReport
	result := r.db.First(&report, "id = ?", id)
	return report, result.Error
}

// FindByProject retrieves the reports of a project, newest date first
func (r *ReportRepository) FindByProject(projectID uint) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	result := r.db.Where("project_id = ?", projectID).
		Order("report_date DESC, id DESC").Find(&reports)
	return reports, result.Error
}

// Create inserts a new report into the database
func (r *ReportRepository) Create(report models.DailyReport) (models.DailyReport, error) {
	result := r.db.Create(&report)
	return report, result.Error
}

// Update modifies an existing report
func (r *ReportRepository) Update(report models.DailyReport) error {
	return r.db.Save(&report).Error
}

// CountByStatus groups a project's report counts by workflow status
func (r *ReportRepository) CountByStatus(projectID uint) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.DailyReport{}).
		Select("status, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountPending counts a project's reports awaiting review
func (r *ReportRepository) CountPending(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DailyReport{}).
		Where("project_id = ? AND status = ?", projectID, models.ReportSubmitted).
		Count(&count).Error
	return count, err
}
