package database

import (
	"fmt"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/config"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.GetDSN(), cfg.AppEnv)
}

// Open connects to dsn. SQL is logged in development only.
func Open(dsn, appEnv string) (*gorm.DB, error) {
	var logLevel gormlogger.LogLevel
	if appEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.AuthToken{},
		&models.Category{},
		&models.House{},
		&models.Advertisement{},
		&models.RentRequest{},
		&models.Review{},
		&models.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

var defaultCategories = []models.Category{
	{Name: "Family", Slug: "family"},
	{Name: "Bachelor", Slug: "bachelor"},
	{Name: "Sublet", Slug: "sublet"},
	{Name: "Office Space", Slug: "office-space"},
}

// SeedCategories inserts the starter categories into an empty table.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding default categories...", "count", len(defaultCategories))
	categories := make([]models.Category, len(defaultCategories))
	copy(categories, defaultCategories)
	return db.Create(&categories).Error
}
