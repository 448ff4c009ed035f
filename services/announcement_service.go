package services

import (
	"errors"
	"time"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/repositories"
	"github.com/pcm-backend/utils"
	"gorm.io/gorm"
)

// AnnouncementService handles platform announcements
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: repositories.NewAnnouncementRepository(db),
	}
}

// ListAll retrieves every announcement
func (s *AnnouncementService) ListAll() ([]models.Announcement, error) {
	return s.announcementRepo.FindAll()
}

// ListActive retrieves announcements currently visible to users
func (s *AnnouncementService) ListActive() ([]models.Announcement, error) {
	return s.announcementRepo.FindActive()
}

// GetAnnouncement retrieves an announcement by ID
func (s *AnnouncementService) GetAnnouncement(id uint) (models.Announcement, error) {
	announcement, err := s.announcementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Announcement{}, utils.NotFoundError("announcement %d", id)
		}
		return models.Announcement{}, err
	}
	return announcement, nil
}

// CreateAnnouncement creates an announcement. The active flag is set
// immediately when the window already covers now, so a fresh
// announcement does not wait for the next scheduler tick.
func (s *AnnouncementService) CreateAnnouncement(authorID string, req dto.CreateAnnouncementRequest) (models.Announcement, error) {
	starts, err := parseDatePtr(&req.StartsAt)
	if err != nil || starts == nil {
		return models.Announcement{}, utils.ValidationError("invalid startsAt")
	}
	ends, err := parseDatePtr(req.EndsAt)
	if err != nil {
		return models.Announcement{}, utils.ValidationError("invalid endsAt")
	}
	if ends != nil && ends.Before(*starts) {
		return models.Announcement{}, utils.ValidationError("endsAt precedes startsAt")
	}

	announcement := models.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: authorID,
		StartsAt: *starts,
		EndsAt:   ends,
	}
	announcement.Active = announcement.InWindow(time.Now())

	return s.announcementRepo.Create(announcement)
}

// UpdateAnnouncement edits an announcement and re-evaluates its window
func (s *AnnouncementService) UpdateAnnouncement(id uint, req dto.UpdateAnnouncementRequest) (models.Announcement, error) {
	announcement, err := s.GetAnnouncement(id)
	if err != nil {
		return models.Announcement{}, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.Announcement{}, utils.ValidationError("title cannot be empty")
		}
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.StartsAt != nil {
		starts, err := parseDatePtr(req.StartsAt)
		if err != nil || starts == nil {
			return models.Announcement{}, utils.ValidationError("invalid startsAt")
		}
		announcement.StartsAt = *starts
	}
	if req.EndsAt != nil {
		ends, err := parseDatePtr(req.EndsAt)
		if err != nil {
			return models.Announcement{}, utils.ValidationError("invalid endsAt")
		}
		announcement.EndsAt = ends
	}
	if announcement.EndsAt != nil && announcement.EndsAt.Before(announcement.StartsAt) {
		return models.Announcement{}, utils.ValidationError("endsAt precedes startsAt")
	}

	announcement.Active = announcement.InWindow(time.Now())
	if err := s.announcementRepo.Update(announcement); err != nil {
		return models.Announcement{}, err
	}
	return announcement, nil
}

// DeleteAnnouncement removes an announcement
func (s *AnnouncementService) DeleteAnnouncement(id uint) error {
	rows, err := s.announcementRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return utils.NotFoundError("announcement %d", id)
	}
	return nil
}
