package dto

// CreateReportRequest carries the fields for a new daily report
type CreateReportRequest struct {
	ReportDate string `json:"reportDate" binding:"required"` // RFC 3339 date
	Content    string `json:"content" binding:"required"`
}

// UpdateReportRequest edits a draft report
type UpdateReportRequest struct {
	ReportDate *string `json:"reportDate"`
	Content    *string `json:"content"`
}

// ReviewReportRequest approves or rejects a submitted report
type ReviewReportRequest struct {
	Note string `json:"note"`
}
