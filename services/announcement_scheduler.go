package services

import (
	"context"
	"time"

	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/repositories"
	"gorm.io/gorm"
)

// AnnouncementScheduler flips announcement visibility as publish
// windows open and close. One sweep per tick; each sweep is a pair of
// bulk updates, so missing a tick only delays visibility by one
// interval.
type AnnouncementScheduler struct {
	announcementRepo *repositories.AnnouncementRepository
	log              *logger.Logger
	interval         time.Duration
}

// NewAnnouncementScheduler creates a scheduler sweeping at the given
// interval (defaults to a minute when zero)
func NewAnnouncementScheduler(db *gorm.DB, log *logger.Logger, interval time.Duration) *AnnouncementScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AnnouncementScheduler{
		announcementRepo: repositories.NewAnnouncementRepository(db),
		log:              log,
		interval:         interval,
	}
}

// Run sweeps until the context is cancelled. Call in its own goroutine.
func (s *AnnouncementScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep once up front so restarts converge immediately
	s.Sweep(time.Now())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("announcement scheduler stopped")
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// Sweep reconciles the active flag against the clock once
func (s *AnnouncementScheduler) Sweep(now time.Time) {
	changed, err := s.announcementRepo.ActivateWindowed(now)
	if err != nil {
		s.log.Error("announcement sweep failed", "error", err)
		return
	}
	if changed > 0 {
		s.log.Info("announcement visibility updated", "changed", changed)
	}
}
