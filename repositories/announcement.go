package repositories

import (
	"time"

	"github.com/pcm-backend/models"
	"gorm.io/gorm"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository instance
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// FindByID retrieves an announcement by its ID
func (r *AnnouncementRepository) FindByID(id uint) (models.Announcement, error) {
	var announcement models.Announcement
	result := r.db.First(&announcement, "id = ?", id)
	return announcement, result.Error
}

// FindAll retrieves every announcement, newest window first
func (r *AnnouncementRepository) FindAll() ([]models.Announcement, error) {
	var announcements []models.Announcement
	result := r.db.Order("starts_at DESC").Find(&announcements)
	return announcements, result.Error
}

// FindActive retrieves announcements currently flagged active
func (r *AnnouncementRepository) FindActive() ([]models.Announcement, error) {
	var announcements []models.Announcement
	result := r.db.Where("active = ?", true).Order("starts_at DESC").Find(&announcements)
	return announcements, result.Error
}

// Create inserts a new announcement into the database
func (r *AnnouncementRepository) Create(announcement models.Announcement) (models.Announcement, error) {
	result := r.db.Create(&announcement)
	return announcement, result.Error
}

// Update modifies an existing announcement
func (r *AnnouncementRepository) Update(announcement models.Announcement) error {
	return r.db.Save(&announcement).Error
}

// Delete removes an announcement (soft delete)
func (r *AnnouncementRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.Announcement{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// ActivateWindowed flips Active on for announcements whose window now
// covers t, and off for those whose window has closed. Returns how many
// rows changed in total.
func (r *AnnouncementRepository) ActivateWindowed(t time.Time) (int64, error) {
	opened := r.db.Model(&models.Announcement{}).
		Where("active = ? AND starts_at <= ? AND (ends_at IS NULL OR ends_at >= ?)", false, t, t).
		Update("active", true)
	if opened.Error != nil {
		return 0, opened.Error
	}

	closed := r.db.Model(&models.Announcement{}).
		Where("active = ? AND (starts_at > ? OR (ends_at IS NOT NULL AND ends_at < ?))", true, t, t).
		Update("active", false)
	if closed.Error != nil {
		return opened.RowsAffected, closed.Error
	}

	return opened.RowsAffected + closed.RowsAffected, nil
}
