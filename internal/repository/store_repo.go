package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

type StoreRepository interface {
	// CreateWithLocations inserts the store, all its locations, and flips
	// the owner's store-setup flag in a single transaction, so a new store
	// becomes visible all-or-nothing.
	CreateWithLocations(ctx context.Context, store *model.Store, locations []model.Location) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.Store, error)
	CountLocationsByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type storeRepo struct{ db *gorm.DB }

func NewStoreRepository(db *gorm.DB) StoreRepository { return &storeRepo{db: db} }

func (r *storeRepo) CreateWithLocations(ctx context.Context, store *model.Store, locations []model.Location) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		for i := range locations {
			locations[i].StoreID = store.ID
		}
		if len(locations) > 0 {
			if err := tx.Create(&locations).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Account{}).Where("id = ?", store.AccountID).
			Update("store_setup_complete", true).Error
	})
}

func (r *storeRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *storeRepo) FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.Store, error) {
	var s model.Store
	err := r.db.WithContext(ctx).Preload("Locations").
		Where("account_id = ?", accountID).First(&s).Error
	return &s, err
}

func (r *storeRepo) CountLocationsByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Location{}).
		Joins("JOIN stores ON stores.id = locations.store_id").
		Where("stores.account_id = ?", accountID).
		Count(&count).Error
	return count, err
}
