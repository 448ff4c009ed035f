package dto

// CreateAnnouncementRequest carries the fields for a new announcement
type CreateAnnouncementRequest struct {
	Title    string  `json:"title" binding:"required"`
	Body     string  `json:"body" binding:"required"`
	StartsAt string  `json:"startsAt" binding:"required"` // RFC 3339
	EndsAt   *string `json:"endsAt"`
}

// UpdateAnnouncementRequest edits an announcement
type UpdateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	StartsAt *string `json:"startsAt"`
	EndsAt   *string `json:"endsAt"`
}
