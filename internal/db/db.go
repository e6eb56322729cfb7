package db

import (
	"fmt"
	"log"
	"os"
	"support-portal/internal/config"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database described by cfg.
func Connect(cfg config.Config, zlog *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Error
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      level,
			Colorful:      !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}
	zlog.Info("Success connecting to db", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	return db, nil
}

func Close(db *gorm.DB, zlog *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Error("failed to get sql db", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		zlog.Error("failed to close db", zap.Error(err))
		return
	}
	zlog.Info("Closing DB")
}
