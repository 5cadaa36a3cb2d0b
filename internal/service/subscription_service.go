package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/onboarding"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

const (
	// freeDemoLocationLimit caps the free demo plan.
	freeDemoLocationLimit = 1000

	planCacheKey = "plans:catalog"
	planCacheTTL = 10 * time.Minute
)

// InvoiceRenderer writes a subscription invoice PDF and returns its path.
// Injected so tests can stub it out.
type InvoiceRenderer func(acct *model.Account, plan *model.Plan, sub *model.Subscription) (string, error)

type SubscriptionService interface {
	SelectPlan(ctx context.Context, acct *model.Account, planID uint) (*dto.SelectPlanResponse, error)
	UpdateEnd(ctx context.Context, acct *model.Account, endsAt time.Time) error
	Plans(ctx context.Context) ([]dto.PlanResponse, error)
}

type subscriptionService struct {
	subs     repository.SubscriptionRepository
	plans    repository.PlanRepository
	stores   repository.StoreRepository
	accounts repository.AccountRepository
	rdb      *redis.Client
	notifier Notifier
	invoice  InvoiceRenderer
}

func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	stores repository.StoreRepository,
	accounts repository.AccountRepository,
	rdb *redis.Client,
	notifier Notifier,
	invoice InvoiceRenderer,
) SubscriptionService {
	return &subscriptionService{
		subs: subs, plans: plans, stores: stores, accounts: accounts,
		rdb: rdb, notifier: notifier, invoice: invoice,
	}
}

func (s *subscriptionService) SelectPlan(ctx context.Context, acct *model.Account, planID uint) (*dto.SelectPlanResponse, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, ErrPlanNotFound
	}

	if plan.ID == model.FreePlanID {
		count, err := s.stores.CountLocationsByAccount(ctx, acct.ID)
		if err != nil {
			return nil, err
		}
		if count > freeDemoLocationLimit {
			return nil, ErrFreeDemoLimit
		}
	}

	now := time.Now()
	ends := now.AddDate(0, 1, 0)
	if plan.Interval == model.IntervalYear {
		ends = now.AddDate(1, 0, 0)
	}

	sub := &model.Subscription{
		AccountID:  acct.ID,
		PlanID:     plan.ID,
		StartsAt:   now,
		EndsAt:     ends,
		TotalPrice: plan.Price,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return nil, err
	}

	acct.PlanID = &plan.ID
	acct.SubscriptionEndsAt = &ends
	if plan.ID == model.FreePlanID {
		acct.TrialEndsAt = &ends
	}
	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}

	if plan.ID != model.FreePlanID {
		s.sendInvoice(ctx, acct, plan, sub)
	}

	return &dto.SelectPlanResponse{
		Message:    fmt.Sprintf("Plan %q selected", plan.Name),
		RedirectTo: onboarding.RedirectTarget(acct),
	}, nil
}

// sendInvoice renders the invoice PDF and queues the email. Both are best
// effort; a mail outage must not fail the plan selection itself.
func (s *subscriptionService) sendInvoice(ctx context.Context, acct *model.Account, plan *model.Plan, sub *model.Subscription) {
	if s.invoice == nil {
		return
	}
	pdfPath, err := s.invoice(acct, plan, sub)
	if err != nil {
		log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("render invoice pdf")
		return
	}
	subject := fmt.Sprintf("Your %s subscription", plan.Name)
	body := fmt.Sprintf("Thanks for subscribing to the %s plan. Your invoice is attached.", plan.Name)
	if err := s.notifier.EnqueueInvoiceEmail(ctx, acct.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", acct.Email).Msg("enqueue invoice email")
	}
}

func (s *subscriptionService) UpdateEnd(ctx context.Context, acct *model.Account, endsAt time.Time) error {
	if err := s.subs.UpdateEnd(ctx, acct.ID, endsAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *subscriptionService) Plans(ctx context.Context) ([]dto.PlanResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, planCacheKey).Bytes(); err == nil {
			var resp []dto.PlanResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
		}
	}

	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlanResponse, len(plans))
	for i, p := range plans {
		resp[i] = dto.PlanResponse{ID: p.ID, Name: p.Name, Price: p.Price, Interval: p.Interval}
	}

	// Populate cache — best effort, ignore errors.
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, planCacheKey, b, planCacheTTL).Err()
		}
	}
	return resp, nil
}
