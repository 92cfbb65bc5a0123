package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brewline/coffee-shop/models"
)

// InitDB opens the database connection. MySQL when DB_HOST is configured,
// otherwise a local SQLite file so the service runs without external infra.
func InitDB() (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			host,
			getEnv("DB_PORT", "3306"),
			getEnv("DB_NAME", "coffee_shop"),
		)
		return gorm.Open(mysql.Open(dsn), cfg)
	}

	return gorm.Open(sqlite.Open(getEnv("DB_FILE", "coffee_shop.db")), cfg)
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.CompletedOrder{},
		&models.PickupCounter{},
		&models.DBChange{},
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
