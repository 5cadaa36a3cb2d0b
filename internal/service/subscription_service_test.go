package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

type fakePlanRepo struct {
	plans map[uint]*model.Plan
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uint) (*model.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePlanRepo) List(_ context.Context) ([]model.Plan, error) {
	out := make([]model.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

type fakeSubRepo struct {
	byAccount map[uuid.UUID]*model.Subscription
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{byAccount: map[uuid.UUID]*model.Subscription{}}
}

func (f *fakeSubRepo) Upsert(_ context.Context, sub *model.Subscription) error {
	if existing, ok := f.byAccount[sub.AccountID]; ok {
		sub.ID = existing.ID
	} else {
		sub.ID = uuid.New()
	}
	cp := *sub
	f.byAccount[sub.AccountID] = &cp
	return nil
}

func (f *fakeSubRepo) FindByAccount(_ context.Context, accountID uuid.UUID) (*model.Subscription, error) {
	s, ok := f.byAccount[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubRepo) UpdateEnd(_ context.Context, accountID uuid.UUID, endsAt time.Time) error {
	s, ok := f.byAccount[accountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.EndsAt = endsAt
	return nil
}

// fakeLocationCounter wraps fakeStoreRepo with a fixed location count.
type fakeLocationCounter struct {
	*fakeStoreRepo
	count int64
}

func (f *fakeLocationCounter) CountLocationsByAccount(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.count, nil
}

func testPlans() *fakePlanRepo {
	return &fakePlanRepo{plans: map[uint]*model.Plan{
		1: {ID: 1, Name: "Free Demo", Price: decimal.Zero, Interval: model.IntervalMonth},
		2: {ID: 2, Name: "Starter", Price: decimal.NewFromInt(29), Interval: model.IntervalMonth},
		4: {ID: 4, Name: "Growth Annual", Price: decimal.NewFromInt(790), Interval: model.IntervalYear},
	}}
}

type subFixture struct {
	svc      SubscriptionService
	subs     *fakeSubRepo
	accounts *fakeAccountRepo
	notifier *fakeNotifier
	rendered int
}

func newSubFixture(t *testing.T, locations int64) *subFixture {
	t.Helper()
	f := &subFixture{
		subs:     newFakeSubRepo(),
		accounts: newFakeAccountRepo(),
		notifier: &fakeNotifier{},
	}
	renderer := func(*model.Account, *model.Plan, *model.Subscription) (string, error) {
		f.rendered++
		return "/tmp/invoice.pdf", nil
	}
	f.svc = NewSubscriptionService(
		f.subs,
		testPlans(),
		&fakeLocationCounter{fakeStoreRepo: newFakeStoreRepo(), count: locations},
		f.accounts,
		nil, // no redis in unit tests
		f.notifier,
		renderer,
	)
	return f
}

func subTestAccount(t *testing.T, f *subFixture) *model.Account {
	t.Helper()
	acct := seedAccount(t, f.accounts, "owner@example.com", "password123", true)
	acct.StoreSetupComplete = true
	return acct
}

func TestSelectPlan_UnknownPlan(t *testing.T) {
	f := newSubFixture(t, 0)
	_, err := f.svc.SelectPlan(context.Background(), subTestAccount(t, f), 99)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSelectPlan_FreeDemoWithinLimit(t *testing.T) {
	f := newSubFixture(t, 1000)
	acct := subTestAccount(t, f)

	resp, err := f.svc.SelectPlan(context.Background(), acct, model.FreePlanID)
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/dashboard", resp.RedirectTo)

	require.NotNil(t, acct.PlanID)
	assert.Equal(t, model.FreePlanID, *acct.PlanID)
	assert.NotNil(t, acct.TrialEndsAt)

	// Free demo never renders or mails an invoice.
	assert.Zero(t, f.rendered)
	assert.Empty(t, f.notifier.invoiceTo)
}

func TestSelectPlan_FreeDemoOverLimit(t *testing.T) {
	f := newSubFixture(t, 1001)
	_, err := f.svc.SelectPlan(context.Background(), subTestAccount(t, f), model.FreePlanID)
	assert.ErrorIs(t, err, ErrFreeDemoLimit)
}

func TestSelectPlan_PaidMonthly(t *testing.T) {
	f := newSubFixture(t, 0)
	acct := subTestAccount(t, f)

	_, err := f.svc.SelectPlan(context.Background(), acct, 2)
	require.NoError(t, err)

	sub, err := f.subs.FindByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), sub.PlanID)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), sub.EndsAt, time.Minute)
	assert.True(t, sub.TotalPrice.Equal(decimal.NewFromInt(29)))

	assert.Equal(t, 1, f.rendered)
	require.Len(t, f.notifier.invoiceTo, 1)
	assert.Equal(t, "owner@example.com", f.notifier.invoiceTo[0])
	assert.Nil(t, acct.TrialEndsAt)
}

func TestSelectPlan_PaidAnnual(t *testing.T) {
	f := newSubFixture(t, 0)
	acct := subTestAccount(t, f)

	_, err := f.svc.SelectPlan(context.Background(), acct, 4)
	require.NoError(t, err)

	sub, err := f.subs.FindByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), sub.EndsAt, time.Minute)
}

func TestSelectPlan_ChangeUpdatesInPlace(t *testing.T) {
	f := newSubFixture(t, 0)
	acct := subTestAccount(t, f)

	_, err := f.svc.SelectPlan(context.Background(), acct, 2)
	require.NoError(t, err)
	first, err := f.subs.FindByAccount(context.Background(), acct.ID)
	require.NoError(t, err)

	_, err = f.svc.SelectPlan(context.Background(), acct, 4)
	require.NoError(t, err)
	second, err := f.subs.FindByAccount(context.Background(), acct.ID)
	require.NoError(t, err)

	// Same row, new plan. One active subscription per account.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, uint(4), second.PlanID)
	assert.Len(t, f.subs.byAccount, 1)
}

func TestUpdateEnd_NoSubscription(t *testing.T) {
	f := newSubFixture(t, 0)
	err := f.svc.UpdateEnd(context.Background(), subTestAccount(t, f), time.Now().AddDate(0, 2, 0))
	assert.ErrorIs(t, err, ErrNotFound)
}

// brokenSubRepo fails UpdateEnd with an infrastructure error.
type brokenSubRepo struct {
	*fakeSubRepo
	err error
}

func (b *brokenSubRepo) UpdateEnd(context.Context, uuid.UUID, time.Time) error {
	return b.err
}

func TestUpdateEnd_InfrastructureErrorIsNotNotFound(t *testing.T) {
	f := newSubFixture(t, 0)
	dbErr := errors.New("connection reset by peer")
	svc := NewSubscriptionService(
		&brokenSubRepo{fakeSubRepo: newFakeSubRepo(), err: dbErr},
		testPlans(),
		newFakeStoreRepo(),
		f.accounts,
		nil,
		f.notifier,
		nil,
	)

	err := svc.UpdateEnd(context.Background(), subTestAccount(t, f), time.Now().AddDate(0, 1, 0))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, dbErr)
}

func TestUpdateEnd_Extends(t *testing.T) {
	f := newSubFixture(t, 0)
	acct := subTestAccount(t, f)
	_, err := f.svc.SelectPlan(context.Background(), acct, 2)
	require.NoError(t, err)

	newEnd := time.Now().AddDate(0, 6, 0)
	require.NoError(t, f.svc.UpdateEnd(context.Background(), acct, newEnd))

	sub, err := f.subs.FindByAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, newEnd, sub.EndsAt, time.Second)
}

func TestPlans_ListsCatalogWithoutCache(t *testing.T) {
	f := newSubFixture(t, 0)
	plans, err := f.svc.Plans(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 3)
}
