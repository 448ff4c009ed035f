package repositories

import (
	"github.com/pcm-backend/models"
	"gorm.io/gorm"
)

// WBSRepository handles database operations for WBS items
type WBSRepository struct {
	db *gorm.DB
}

// NewWBSRepository creates a new WBS repository instance
func NewWBSRepository(db *gorm.DB) *WBSRepository {
	return &WBSRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle
func (r *WBSRepository) WithTx(tx *gorm.DB) *WBSRepository {
	return &WBSRepository{db: tx}
}

// FindByProject retrieves every item of a project, flat, in store order
func (r *WBSRepository) FindByProject(projectID uint) ([]models.WBSItem, error) {
	var items []models.WBSItem
	result := r.db.Where("project_id = ?", projectID).Order("id").Find(&items)
	return items, result.Error
}

// FindByID retrieves a WBS item by its ID
func (r *WBSRepository) FindByID(id uint) (models.WBSItem, error) {
	var item models.WBSItem
	result := r.db.First(&item, "id = ?", id)
	return item, result.Error
}

// FindInProject retrieves an item by ID scoped to a project
func (r *WBSRepository) FindInProject(projectID, id uint) (models.WBSItem, error) {
	var item models.WBSItem
	result := r.db.First(&item, "id = ? AND project_id = ?", id, projectID)
	return item, result.Error
}

// FindSiblings retrieves a sibling group ordered by sort order
func (r *WBSRepository) FindSiblings(projectID uint, parentID *uint) ([]models.WBSItem, error) {
	var items []models.WBSItem
	db := r.db.Where("project_id = ?", projectID)
	if parentID == nil {
		db = db.Where("parent_id IS NULL")
	} else {
		db = db.Where("parent_id = ?", *parentID)
	}
	result := db.Order("sort_order").Find(&items)
	return items, result.Error
}

// CountSiblings counts the items sharing a parent within a project
func (r *WBSRepository) CountSiblings(projectID uint, parentID *uint) (int64, error) {
	var count int64
	db := r.db.Model(&models.WBSItem{}).Where("project_id = ?", projectID)
	if parentID == nil {
		db = db.Where("parent_id IS NULL")
	} else {
		db = db.Where("parent_id = ?", *parentID)
	}
	err := db.Count(&count).Error
	return count, err
}

// CountChildren counts the direct children of an item
func (r *WBSRepository) CountChildren(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WBSItem{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// Create inserts a new WBS item; the store assigns ID and CreatedAt
func (r *WBSRepository) Create(item models.WBSItem) (models.WBSItem, error) {
	result := r.db.Create(&item)
	return item, result.Error
}

// Update persists an existing item in full
func (r *WBSRepository) Update(item models.WBSItem) error {
	return r.db.Save(&item).Error
}

// UpdatePosition writes only an item's structural columns
func (r *WBSRepository) UpdatePosition(id uint, parentID *uint, sortOrder, levelNumber int) error {
	return r.db.Model(&models.WBSItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"parent_id":    parentID,
			"sort_order":   sortOrder,
			"level_number": levelNumber,
		}).Error
}

// UpdateSortOrder writes only an item's sort order
func (r *WBSRepository) UpdateSortOrder(id uint, sortOrder int) error {
	return r.db.Model(&models.WBSItem{}).Where("id = ?", id).
		Update("sort_order", sortOrder).Error
}

// UpdateLevel writes only an item's level number
func (r *WBSRepository) UpdateLevel(id uint, levelNumber int) error {
	return r.db.Model(&models.WBSItem{}).Where("id = ?", id).
		Update("level_number", levelNumber).Error
}

// Delete removes an item and reports how many rows went away
func (r *WBSRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.WBSItem{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// CountByProject counts the items of a project
func (r *WBSRepository) CountByProject(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WBSItem{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// MaxLevel returns the deepest level number present in a project
func (r *WBSRepository) MaxLevel(projectID uint) (int, error) {
	var level *int
	err := r.db.Model(&models.WBSItem{}).Where("project_id = ?", projectID).
		Select("MAX(level_number)").Scan(&level).Error
	if err != nil || level == nil {
		return 0, err
	}
	return *level, nil
}
