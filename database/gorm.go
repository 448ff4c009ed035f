package database

import (
	"log"
	"os"
	"time"

	"github.com/pcm-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted type, in migration order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Permission{},
		&models.RolePermission{},
		&models.Project{},
		&models.ProjectMember{},
		&models.WBSItem{},
		&models.WBSChangeLog{},
		&models.DailyReport{},
		&models.Announcement{},
	}
}

// Connect opens the GORM database connection and tunes the pool
func Connect(dbURL string) (*gorm.DB, error) {
	// Configure GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate applies the schema for every registered model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
