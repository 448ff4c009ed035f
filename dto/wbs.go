package dto

// CreateWBSItemRequest carries the fields for a new WBS item. ProjectID
// comes from the route, never the body.
type CreateWBSItemRequest struct {
	ParentID     *uint   `json:"parentId"`
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	ChangeReason *string `json:"changeReason"`
}

// UpdateWBSItemRequest carries content edits. Structural fields
// (parent, order, level) are reorder's job and are rejected here.
type UpdateWBSItemRequest struct {
	Code         *string `json:"code"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ChangeReason *string `json:"changeReason"`
}

// ReorderWBSItemRequest moves an item to a new parent and/or position.
// NewSortOrder is a pointer so an explicit zero survives binding.
type ReorderWBSItemRequest struct {
	NewParentID  *uint   `json:"newParentId"`
	NewSortOrder *int    `json:"newSortOrder" binding:"required"`
	ChangeReason *string `json:"changeReason"`
}

// DeleteWBSItemRequest carries the mandatory audit reason for deletion
type DeleteWBSItemRequest struct {
	ChangeReason string `json:"changeReason" binding:"required"`
}

// ReorderSnapshot is the positional before/after recorded for REORDER
// change-log entries (not a full node snapshot)
type ReorderSnapshot struct {
	ParentID    *uint `json:"parentId"`
	SortOrder   int   `json:"sortOrder"`
	LevelNumber int   `json:"levelNumber"`
}
