package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChangeOperation tags a WBS change-log entry with the mutation kind
type ChangeOperation string

const (
	ChangeOpCreate  ChangeOperation = "CREATE"
	ChangeOpUpdate  ChangeOperation = "UPDATE"
	ChangeOpDelete  ChangeOperation = "DELETE"
	ChangeOpReorder ChangeOperation = "REORDER"
)

// WBSChangeLog is an append-only audit record of a WBS item mutation.
// Entries are written once after the mutation commits and never touched
// again.
type WBSChangeLog struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	WBSItemID uint            `json:"wbsItemId" gorm:"not null;index"`
	UserID    string          `json:"userId" gorm:"type:uuid;not null;index"`
	Operation ChangeOperation `json:"operation" gorm:"type:varchar(10);not null"`
	Before    datatypes.JSON  `json:"before,omitempty" gorm:"default:null"`
	After     datatypes.JSON  `json:"after,omitempty" gorm:"default:null"`
	Reason    string          `json:"reason" gorm:"default:null"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TableName keeps the audit table name stable across model renames
func (WBSChangeLog) TableName() string {
	return "wbs_change_logs"
}
