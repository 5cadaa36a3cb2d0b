package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

// AccountRepository persists accounts. IncrementLoginAttempts and
// LockUntil are atomic at the store layer so the gate and login flow do
// not need application-level read-then-write races.
type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, a *model.Account) error

	// IncrementLoginAttempts atomically bumps the counter and returns the
	// new value, so two concurrent failures cannot undercount.
	IncrementLoginAttempts(ctx context.Context, id uuid.UUID) (int, error)
	ResetLoginAttempts(ctx context.Context, id uuid.UUID) error

	// LockUntil applies a lock only when the account is not already locked,
	// so re-locking never extends an existing lock.
	LockUntil(ctx context.Context, id uuid.UUID, until time.Time) error

	SetDashboardCreated(ctx context.Context, id uuid.UUID) error
}

type accountRepo struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) AccountRepository { return &accountRepo{db: db} }

func (r *accountRepo) Create(ctx context.Context, a *model.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	return &a, err
}

func (r *accountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *accountRepo) FindByVerificationToken(ctx context.Context, token string) (*model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&a).Error
	return &a, err
}

func (r *accountRepo) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).Order("created_at").Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) Update(ctx context.Context, a *model.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *accountRepo) IncrementLoginAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	var attempts int
	err := r.db.WithContext(ctx).Raw(
		`UPDATE accounts SET login_attempts = login_attempts + 1, updated_at = now()
		 WHERE id = ? RETURNING login_attempts`, id,
	).Scan(&attempts).Error
	return attempts, err
}

func (r *accountRepo) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).
		Updates(map[string]interface{}{"login_attempts": 0, "locked_until": nil}).Error
}

func (r *accountRepo) LockUntil(ctx context.Context, id uuid.UUID, until time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE accounts SET locked_until = ?, updated_at = now()
		 WHERE id = ? AND (locked_until IS NULL OR locked_until < now())`, until, id,
	).Error
}

func (r *accountRepo) SetDashboardCreated(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).
		Update("dashboard_created", true).Error
}
