package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart-rw-svc/internal/config"
	"smart-rw-svc/internal/models"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection using gorm.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the provisioning workflow relies on.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return &Database{DB: db}, nil
}

// AutoMigrate runs schema migrations for all application models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.User{},
		&models.RW{},
		&models.RT{},
		&models.Family{},
		&models.Resident{},
		&models.Document{},
		&models.Complaint{},
		&models.Event{},
		&models.SocialAssistance{},
		&models.SocialAssistanceRecipient{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.Notification{},
		&models.SchedulerLog{},
	)
}

// Close closes the underlying SQL connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
