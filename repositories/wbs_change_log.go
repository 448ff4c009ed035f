package repositories

import (
	"github.com/pcm-backend/models"
	"gorm.io/gorm"
)

// WBSChangeLogRepository handles the append-only WBS audit trail
type WBSChangeLogRepository struct {
	db *gorm.DB
}

// NewWBSChangeLogRepository creates a new change-log repository instance
func NewWBSChangeLogRepository(db *gorm.DB) *WBSChangeLogRepository {
	return &WBSChangeLogRepository{db: db}
}

// Create appends one audit entry. Entries are never updated or deleted.
func (r *WBSChangeLogRepository) Create(entry models.WBSChangeLog) (models.WBSChangeLog, error) {
	result := r.db.Create(&entry)
	return entry, result.Error
}

// FindByItem retrieves the audit history of one WBS item, newest first
func (r *WBSChangeLogRepository) FindByItem(wbsItemID uint) ([]models.WBSChangeLog, error) {
	var entries []models.WBSChangeLog
	result := r.db.Where("wbs_item_id = ?", wbsItemID).
		Order("created_at DESC, id DESC").Find(&entries)
	return entries, result.Error
}
