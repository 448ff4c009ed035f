package dto

import "github.com/pcm-backend/models"

// ProjectDashboard aggregates read-only project figures. Recomputed on
// every request, nothing is cached.
type ProjectDashboard struct {
	ProjectID           uint                  `json:"projectId"`
	WBSItemCount        int64                 `json:"wbsItemCount"`
	WBSMaxDepth         int                   `json:"wbsMaxDepth"`
	ReportCounts        map[string]int64      `json:"reportCounts"`
	PendingApprovals    int64                 `json:"pendingApprovals"`
	MemberCount         int64                 `json:"memberCount"`
	ActiveAnnouncements []models.Announcement `json:"activeAnnouncements"`
}
