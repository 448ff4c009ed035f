package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/repositories"
	"github.com/pcm-backend/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WBSService owns the WBS item lifecycle: tree reads, create/update/
// delete, structural moves, and the audit trail. Every mutation runs in
// a single transaction; the change-log entry is written right after the
// transaction commits.
type WBSService struct {
	db      *gorm.DB
	wbsRepo *repositories.WBSRepository
	logRepo *repositories.WBSChangeLogRepository
	log     *logger.Logger
}

// NewWBSService creates a new WBS service instance
func NewWBSService(db *gorm.DB, log *logger.Logger) *WBSService {
	return &WBSService{
		db:      db,
		wbsRepo: repositories.NewWBSRepository(db),
		logRepo: repositories.NewWBSChangeLogRepository(db),
		log:     log,
	}
}

// ListProject returns every item of a project flat, in store order.
// An empty project yields an empty slice, not an error.
func (s *WBSService) ListProject(projectID uint) ([]models.WBSItem, error) {
	return s.wbsRepo.FindByProject(projectID)
}

// ProjectTree returns the project's items as a nested forest
func (s *WBSService) ProjectTree(projectID uint) ([]*models.WBSItem, error) {
	items, err := s.wbsRepo.FindByProject(projectID)
	if err != nil {
		return nil, utils.StoreError("list wbs items", err)
	}
	return BuildWBSHierarchy(items), nil
}

// GetItem retrieves one item by ID
func (s *WBSService) GetItem(id uint) (models.WBSItem, error) {
	item, err := s.wbsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WBSItem{}, utils.NotFoundError("wbs item %d", id)
		}
		return models.WBSItem{}, utils.StoreError("load wbs item", err)
	}
	return item, nil
}

// History returns the audit trail of one item, newest first
func (s *WBSService) History(id uint) ([]models.WBSChangeLog, error) {
	if _, err := s.wbsRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("wbs item %d", id)
		}
		return nil, utils.StoreError("load wbs item", err)
	}
	return s.logRepo.FindByItem(id)
}

// Create appends a new item to the end of its sibling group. Root items
// get level 1, children get parent level + 1.
func (s *WBSService) Create(projectID uint, userID string, req dto.CreateWBSItemRequest) (*models.WBSItem, error) {
	if req.Code == "" {
		return nil, utils.ValidationError("code is required")
	}
	if req.Name == "" {
		return nil, utils.ValidationError("name is required")
	}

	var created models.WBSItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wbsRepo.WithTx(tx)

		level := 1
		if req.ParentID != nil {
			parent, err := repo.FindInProject(projectID, *req.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFoundError("parent item %d in project %d", *req.ParentID, projectID)
				}
				return utils.StoreError("load parent item", err)
			}
			level = parent.LevelNumber + 1
		}

		// New items go to the end of the sibling group
		siblingCount, err := repo.CountSiblings(projectID, req.ParentID)
		if err != nil {
			return utils.StoreError("count siblings", err)
		}

		created, err = repo.Create(models.WBSItem{
			ProjectID:   projectID,
			ParentID:    req.ParentID,
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			LevelNumber: level,
			SortOrder:   int(siblingCount),
		})
		if err != nil {
			return utils.StoreError("create wbs item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, s.logChange(created.ID, userID, models.ChangeOpCreate, nil, wbsSnapshot(&created), req.ChangeReason)
}

// Update edits an item's content fields. Parent, order and level are
// reorder's job and are not writable here.
func (s *WBSService) Update(id uint, userID string, req dto.UpdateWBSItemRequest) (*models.WBSItem, error) {
	if req.Code != nil && *req.Code == "" {
		return nil, utils.ValidationError("code cannot be empty")
	}
	if req.Name != nil && *req.Name == "" {
		return nil, utils.ValidationError("name cannot be empty")
	}

	var before, after datatypes.JSON
	var updated models.WBSItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wbsRepo.WithTx(tx)

		item, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("wbs item %d", id)
			}
			return utils.StoreError("load wbs item", err)
		}
		before = wbsSnapshot(&item)

		if req.Code != nil {
			item.Code = *req.Code
		}
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Description != nil {
			item.Description = *req.Description
		}

		if err := repo.Update(item); err != nil {
			return utils.StoreError("update wbs item", err)
		}
		updated = item
		after = wbsSnapshot(&item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, s.logChange(updated.ID, userID, models.ChangeOpUpdate, before, after, req.ChangeReason)
}

// Delete removes a leaf item and closes the gap in its sibling group.
// Items with children are refused; children must be deleted or
// reparented first.
func (s *WBSService) Delete(id uint, userID string, changeReason string) error {
	// The audit contract holds for every caller, not just the HTTP layer
	if changeReason == "" {
		return utils.ValidationError("changeReason is required to delete")
	}

	var deleted models.WBSItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wbsRepo.WithTx(tx)

		item, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("wbs item %d", id)
			}
			return utils.StoreError("load wbs item", err)
		}

		children, err := repo.CountChildren(id)
		if err != nil {
			return utils.StoreError("count children", err)
		}
		if children > 0 {
			return utils.ConflictError("wbs item %d has %d children", id, children)
		}

		rows, err := repo.Delete(id)
		if err != nil {
			return utils.StoreError("delete wbs item", err)
		}
		if rows == 0 {
			// Distinct from the children conflict: the store silently
			// dropped the delete
			return utils.StoreError("delete wbs item", fmt.Errorf("no rows affected for id %d", id))
		}

		if err := compactSiblings(repo, item.ProjectID, item.ParentID, item.ID); err != nil {
			return err
		}

		deleted = item
		return nil
	})
	if err != nil {
		return err
	}

	return s.logChange(deleted.ID, userID, models.ChangeOpDelete, wbsSnapshot(&deleted), nil, &changeReason)
}

// Reorder moves an item to a new parent and/or position. The caller's
// sort order is stored verbatim; destination siblings at or past it
// shift up one and the origin group is compacted back to a dense run.
// Reparenting recomputes the level of the whole moved subtree and
// refuses moves into the item's own descendants.
func (s *WBSService) Reorder(id uint, userID string, req dto.ReorderWBSItemRequest) (*models.WBSItem, error) {
	if req.NewSortOrder == nil {
		return nil, utils.ValidationError("newSortOrder is required")
	}
	if *req.NewSortOrder < 0 {
		return nil, utils.ValidationError("newSortOrder must be a non-negative integer")
	}

	var before, after dto.ReorderSnapshot
	var moved models.WBSItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.wbsRepo.WithTx(tx)

		item, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("wbs item %d", id)
			}
			return utils.StoreError("load wbs item", err)
		}
		before = dto.ReorderSnapshot{
			ParentID:    item.ParentID,
			SortOrder:   item.SortOrder,
			LevelNumber: item.LevelNumber,
		}

		// Omitted parent means keep the current one
		targetParent := item.ParentID
		if req.NewParentID != nil {
			targetParent = req.NewParentID
		}
		parentChanged := !uintPtrEqual(targetParent, item.ParentID)

		newLevel := item.LevelNumber
		if parentChanged {
			newLevel = 1
			if targetParent != nil {
				parent, err := repo.FindInProject(item.ProjectID, *targetParent)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return utils.NotFoundError("parent item %d in project %d", *targetParent, item.ProjectID)
					}
					return utils.StoreError("load parent item", err)
				}
				if err := ensureNoCycle(repo, item.ID, parent); err != nil {
					return err
				}
				newLevel = parent.LevelNumber + 1
			}
		}

		// Close the gap the item leaves behind
		if err := compactSiblings(repo, item.ProjectID, item.ParentID, item.ID); err != nil {
			return err
		}

		// Make room at the requested position in the destination group
		dest, err := repo.FindSiblings(item.ProjectID, targetParent)
		if err != nil {
			return utils.StoreError("load destination siblings", err)
		}
		for _, sib := range dest {
			if sib.ID == item.ID {
				continue
			}
			if sib.SortOrder >= *req.NewSortOrder {
				if err := repo.UpdateSortOrder(sib.ID, sib.SortOrder+1); err != nil {
					return utils.StoreError("shift sibling", err)
				}
			}
		}

		if err := repo.UpdatePosition(item.ID, targetParent, *req.NewSortOrder, newLevel); err != nil {
			return utils.StoreError("move wbs item", err)
		}

		if parentChanged && newLevel != before.LevelNumber {
			if err := cascadeLevels(repo, item.ProjectID, item.ID, newLevel); err != nil {
				return err
			}
		}

		item.ParentID = targetParent
		item.SortOrder = *req.NewSortOrder
		item.LevelNumber = newLevel
		moved = item
		after = dto.ReorderSnapshot{
			ParentID:    targetParent,
			SortOrder:   *req.NewSortOrder,
			LevelNumber: newLevel,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	return &moved, s.logChange(moved.ID, userID, models.ChangeOpReorder, beforeJSON, afterJSON, req.ChangeReason)
}

// logChange appends an audit entry after the primary mutation has
// committed. A failed write never undoes the mutation; it is logged
// and reported via ErrChangeLogFailed so callers can flag the partial
// success.
func (s *WBSService) logChange(itemID uint, userID string, op models.ChangeOperation, before, after datatypes.JSON, reason *string) error {
	entry := models.WBSChangeLog{
		WBSItemID: itemID,
		UserID:    userID,
		Operation: op,
		Before:    before,
		After:     after,
	}
	if reason != nil {
		entry.Reason = *reason
	}
	if _, err := s.logRepo.Create(entry); err != nil {
		s.log.Warn("wbs change log write failed",
			"wbsItemId", itemID, "operation", op, "error", err)
		return fmt.Errorf("%w: %v", utils.ErrChangeLogFailed, err)
	}
	return nil
}

// ensureNoCycle rejects a reparent that would place an item inside its
// own subtree, by walking the ancestor chain of the proposed parent.
func ensureNoCycle(repo *repositories.WBSRepository, itemID uint, newParent models.WBSItem) error {
	current := newParent
	for {
		if current.ID == itemID {
			return utils.ValidationError("cannot move wbs item %d under its own subtree", itemID)
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := repo.FindByID(*current.ParentID)
		if err != nil {
			return utils.StoreError("walk ancestor chain", err)
		}
		current = next
	}
}

// compactSiblings resequences a sibling group to a dense 0..N-1 run,
// skipping the excluded item (the one being moved or deleted).
func compactSiblings(repo *repositories.WBSRepository, projectID uint, parentID *uint, excludeID uint) error {
	siblings, err := repo.FindSiblings(projectID, parentID)
	if err != nil {
		return utils.StoreError("load siblings", err)
	}
	next := 0
	for _, sib := range siblings {
		if sib.ID == excludeID {
			continue
		}
		if sib.SortOrder != next {
			if err := repo.UpdateSortOrder(sib.ID, next); err != nil {
				return utils.StoreError("compact siblings", err)
			}
		}
		next++
	}
	return nil
}

// cascadeLevels recomputes level numbers for the whole subtree under
// rootID after a reparent, breadth-first over an in-memory child index.
func cascadeLevels(repo *repositories.WBSRepository, projectID, rootID uint, rootLevel int) error {
	items, err := repo.FindByProject(projectID)
	if err != nil {
		return utils.StoreError("load project items", err)
	}
	index := childIndex(items)

	type frame struct {
		id    uint
		level int
	}
	queue := []frame{{id: rootID, level: rootLevel}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range index[cur.id] {
			level := cur.level + 1
			if child.LevelNumber != level {
				if err := repo.UpdateLevel(child.ID, level); err != nil {
					return utils.StoreError("cascade level", err)
				}
			}
			queue = append(queue, frame{id: child.ID, level: level})
		}
	}
	return nil
}

// wbsSnapshot serializes an item for the audit trail
func wbsSnapshot(item *models.WBSItem) datatypes.JSON {
	copied := *item
	copied.Children = nil
	b, err := json.Marshal(copied)
	if err != nil {
		return nil
	}
	return b
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
