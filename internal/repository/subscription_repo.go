package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

type SubscriptionRepository interface {
	// Upsert keys on account_id: a plan change updates the existing row in
	// place rather than inserting a second active subscription.
	Upsert(ctx context.Context, sub *model.Subscription) error
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.Subscription, error)
	UpdateEnd(ctx context.Context, accountID uuid.UUID, endsAt time.Time) error
}

type subscriptionRepo struct{ db *gorm.DB }

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Upsert(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_id", "starts_at", "ends_at", "total_price", "auto_renew", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *subscriptionRepo) FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.Subscription, error) {
	var s model.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("account_id = ?", accountID).First(&s).Error
	return &s, err
}

func (r *subscriptionRepo) UpdateEnd(ctx context.Context, accountID uuid.UUID, endsAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Subscription{}).Where("account_id = ?", accountID).
			Update("ends_at", endsAt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Account{}).Where("id = ?", accountID).
			Update("subscription_ends_at", endsAt).Error
	})
}
