package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pcm-backend/database"
	"github.com/pcm-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite store with the full
// schema and permission seed applied
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared-cache memory DB per test so the pool sees one store
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, database.SeedPermissions(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Email:    email,
		Password: "irrelevant-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, owner models.User) models.Project {
	t.Helper()
	project := models.Project{
		Name:    "Test Project",
		OwnerID: owner.ID,
		Status:  models.ProjectActive,
	}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    owner.ID,
		Role:      models.RoleManager,
	}).Error)
	return project
}

func addTestMember(t *testing.T, db *gorm.DB, project models.Project, user models.User, role models.Role) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      role,
	}).Error)
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }
func strPtr(v string) *string { return &v }
