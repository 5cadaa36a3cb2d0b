package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

type PlanRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var p model.Plan
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *planRepo) List(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.WithContext(ctx).Order("id").Find(&plans).Error
	return plans, err
}
