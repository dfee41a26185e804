package database

import (
	"fmt"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/config"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect открывает пул GORM по DSN из конфигурации
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.Server.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Частичные уникальные индексы: мягко удаленные строки не мешают повторной вставке
var partialIndexes = []struct {
	name string
	ddl  string
}{
	{
		name: repositories.ApplicationPairIndex,
		ddl:  `CREATE UNIQUE INDEX IF NOT EXISTS ` + repositories.ApplicationPairIndex + ` ON applications (candidate_profile_id, job_position_id) WHERE is_deleted = false`,
	},
	{
		name: repositories.CandidateEmailIndex,
		ddl:  `CREATE UNIQUE INDEX IF NOT EXISTS ` + repositories.CandidateEmailIndex + ` ON candidate_profiles (lower(email)) WHERE is_deleted = false`,
	},
	{
		name: repositories.CandidatePhoneIndex,
		ddl:  `CREATE UNIQUE INDEX IF NOT EXISTS ` + repositories.CandidatePhoneIndex + ` ON candidate_profiles (phone) WHERE is_deleted = false AND phone IS NOT NULL AND phone <> ''`,
	},
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.JobPosition{},
		&models.CandidateProfile{},
		&models.Application{},
		&models.Interview{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	for _, idx := range partialIndexes {
		if err := db.Exec(idx.ddl).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	logger.Info("AutoMigrate completed", "indexes", len(partialIndexes))
	return nil
}
