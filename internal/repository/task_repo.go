package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

type TaskRepository interface {
	// Create inserts the task and its assignment join rows in one
	// transaction; a failed assignment leaves no orphan task behind.
	Create(ctx context.Context, t *model.Task) error
	List(ctx context.Context) ([]model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) TaskRepository { return &taskRepo{db: db} }

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	// Omit("Assignees.*") writes the join rows without touching the
	// referenced account rows themselves.
	return r.db.WithContext(ctx).Omit("Assignees.*").Create(t).Error
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Preload("Assignees").
		Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}
