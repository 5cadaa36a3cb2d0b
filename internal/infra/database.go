package infra

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs
// AutoMigrate, and seeds the plan catalog. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey (the slug generator relies
// on this).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Plan{},
		&model.Account{},
		&model.Store{},
		&model.Location{},
		&model.Subscription{},
		&model.Task{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := seedPlans(db); err != nil {
		return nil, fmt.Errorf("seed plans: %w", err)
	}

	return db, nil
}

// seedPlans inserts the fixed plan catalog. Idempotent: existing rows are
// left untouched so price changes go through a deliberate migration.
func seedPlans(db *gorm.DB) error {
	plans := []model.Plan{
		{ID: model.FreePlanID, Name: "Free Demo", Price: decimal.Zero, Interval: model.IntervalMonth},
		{ID: 2, Name: "Starter", Price: decimal.NewFromInt(29), Interval: model.IntervalMonth},
		{ID: 3, Name: "Growth", Price: decimal.NewFromInt(79), Interval: model.IntervalMonth},
		{ID: 4, Name: "Growth Annual", Price: decimal.NewFromInt(790), Interval: model.IntervalYear},
	}
	for _, p := range plans {
		var count int64
		if err := db.Model(&model.Plan{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
