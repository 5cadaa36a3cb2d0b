package service

import (
	"context"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/onboarding"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

// StatusService loads the rows the projector needs and returns the
// onboarding snapshot for one account.
type StatusService interface {
	Status(ctx context.Context, acct *model.Account) (*onboarding.Status, error)
}

type statusService struct {
	subs  repository.SubscriptionRepository
	plans repository.PlanRepository
}

func NewStatusService(subs repository.SubscriptionRepository, plans repository.PlanRepository) StatusService {
	return &statusService{subs: subs, plans: plans}
}

func (s *statusService) Status(ctx context.Context, acct *model.Account) (*onboarding.Status, error) {
	var (
		sub  *model.Subscription
		plan *model.Plan
	)
	if found, err := s.subs.FindByAccount(ctx, acct.ID); err == nil {
		sub = found
		if sub.Plan != nil {
			plan = sub.Plan
		} else if p, err := s.plans.FindByID(ctx, sub.PlanID); err == nil {
			plan = p
		}
	}
	status := onboarding.Project(acct, sub, plan)
	return &status, nil
}
