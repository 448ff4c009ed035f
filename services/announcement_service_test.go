package services

import (
	"testing"
	"time"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementActiveOnCreateWhenInWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)
	author := createTestUser(t, db, "pm@pcm.test", models.RoleManager)

	now := time.Now()
	live, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Site closed Friday",
		Body:     "Crane maintenance",
		StartsAt: now.Add(-time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.True(t, live.Active)

	future, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Holiday schedule",
		Body:     "Posted early",
		StartsAt: now.Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.False(t, future.Active)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].ID)
}

func TestAnnouncementValidatesWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)
	author := createTestUser(t, db, "pm@pcm.test", models.RoleManager)

	now := time.Now()
	_, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Backwards window",
		Body:     "x",
		StartsAt: now.Format(time.RFC3339),
		EndsAt:   strPtr(now.Add(-time.Hour).Format(time.RFC3339)),
	})
	assert.True(t, utils.IsValidation(err))

	_, err = svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Bad date",
		Body:     "x",
		StartsAt: "soon",
	})
	assert.True(t, utils.IsValidation(err))
}

func TestSchedulerSweepFlipsWindows(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)
	author := createTestUser(t, db, "pm@pcm.test", models.RoleManager)

	now := time.Now()
	opening, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Opens in an hour",
		Body:     "x",
		StartsAt: now.Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	closing, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Closes in an hour",
		Body:     "x",
		StartsAt: now.Add(-time.Hour).Format(time.RFC3339),
		EndsAt:   strPtr(now.Add(time.Hour).Format(time.RFC3339)),
	})
	require.NoError(t, err)
	assert.False(t, opening.Active)
	assert.True(t, closing.Active)

	// Two hours later the roles have swapped
	scheduler := NewAnnouncementScheduler(db, logger.NewNop(), time.Minute)
	scheduler.Sweep(now.Add(2 * time.Hour))

	reOpening, err := svc.GetAnnouncement(opening.ID)
	require.NoError(t, err)
	reClosing, err := svc.GetAnnouncement(closing.ID)
	require.NoError(t, err)
	assert.True(t, reOpening.Active)
	assert.False(t, reClosing.Active)
}

func TestAnnouncementDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)
	author := createTestUser(t, db, "pm@pcm.test", models.RoleManager)

	created, err := svc.CreateAnnouncement(author.ID, dto.CreateAnnouncementRequest{
		Title:    "Temp",
		Body:     "x",
		StartsAt: time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAnnouncement(created.ID))
	err = svc.DeleteAnnouncement(created.ID)
	assert.True(t, utils.IsNotFound(err))
}
