package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
)

// fakeAccountRepo is an in-memory AccountRepository keyed by account ID.
type fakeAccountRepo struct {
	byID map[uuid.UUID]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: map[uuid.UUID]*model.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) FindByVerificationToken(_ context.Context, token string) (*model.Account, error) {
	for _, a := range f.byID {
		if a.VerificationToken != nil && *a.VerificationToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) List(_ context.Context) ([]model.Account, error) {
	out := make([]model.Account, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, a *model.Account) error {
	if _, ok := f.byID[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) IncrementLoginAttempts(_ context.Context, id uuid.UUID) (int, error) {
	a, ok := f.byID[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	a.LoginAttempts++
	return a.LoginAttempts, nil
}

func (f *fakeAccountRepo) ResetLoginAttempts(_ context.Context, id uuid.UUID) error {
	a, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.LoginAttempts = 0
	a.LockedUntil = nil
	return nil
}

func (f *fakeAccountRepo) LockUntil(_ context.Context, id uuid.UUID, until time.Time) error {
	a, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Mirrors the conditional UPDATE: never extend an active lock.
	if a.LockedUntil != nil && a.LockedUntil.After(time.Now()) {
		return nil
	}
	a.LockedUntil = &until
	return nil
}

func (f *fakeAccountRepo) SetDashboardCreated(_ context.Context, id uuid.UUID) error {
	a, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.DashboardCreated = true
	return nil
}

// fakeNotifier records enqueued mail instead of touching redis.
type fakeNotifier struct {
	verificationTo     []string
	verificationTokens []string
	invoiceTo          []string
}

func (n *fakeNotifier) EnqueueVerificationEmail(_ context.Context, to, token string) error {
	n.verificationTo = append(n.verificationTo, to)
	n.verificationTokens = append(n.verificationTokens, token)
	return nil
}

func (n *fakeNotifier) EnqueueInvoiceEmail(_ context.Context, to, _, _, _ string) error {
	n.invoiceTo = append(n.invoiceTo, to)
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeAccountRepo, *fakeNotifier) {
	t.Helper()
	repo := newFakeAccountRepo()
	notifier := &fakeNotifier{}
	tokens := auth.NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)
	return NewAuthService(repo, tokens, notifier), repo, notifier
}

func seedAccount(t *testing.T, repo *fakeAccountRepo, email, password string, verified bool) *model.Account {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	acct := &model.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleOwner,
	}
	if verified {
		now := time.Now()
		acct.EmailVerifiedAt = &now
	}
	require.NoError(t, repo.Create(context.Background(), acct))
	return repo.byID[acct.ID]
}

func TestRegister_CreatesAccountAndEnqueuesEmail(t *testing.T) {
	svc, repo, notifier := newAuthFixture(t)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "owner@example.com", Password: "hunter2hunter2", Role: "owner",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.VerificationToken)

	acct, err := repo.FindByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, acct.Role)
	assert.Nil(t, acct.EmailVerifiedAt)
	require.NotNil(t, acct.VerificationToken)
	assert.Equal(t, resp.VerificationToken, *acct.VerificationToken)

	require.Len(t, notifier.verificationTo, 1)
	assert.Equal(t, "owner@example.com", notifier.verificationTo[0])
	assert.Equal(t, resp.VerificationToken, notifier.verificationTokens[0])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedAccount(t, repo, "taken@example.com", "password123", true)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "taken@example.com", Password: "password123", Role: "owner",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", true)
	acct.LoginAttempts = 3

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	assert.Equal(t, "/onboarding/store", resp.RedirectTo)

	// A successful login clears earlier failures.
	assert.Zero(t, repo.byID[acct.ID].LoginAttempts)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever1",
	})
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPasswordIncrements(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.byID[acct.ID].LoginAttempts)
	assert.Nil(t, repo.byID[acct.ID].LockedUntil)
}

func TestLogin_FifthFailureLocks(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", true)

	for i := 0; i < MaxLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "owner@example.com", Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	stored := repo.byID[acct.ID]
	assert.Equal(t, MaxLoginAttempts, stored.LoginAttempts)
	require.NotNil(t, stored.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(LockoutDuration), *stored.LockedUntil, 5*time.Second)

	// Correct password is still refused while locked.
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLogin_LockExpiryResets(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", true)
	past := time.Now().Add(-time.Minute)
	stored := repo.byID[acct.ID]
	stored.LoginAttempts = MaxLoginAttempts
	stored.LockedUntil = &past

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Zero(t, repo.byID[acct.ID].LoginAttempts)
	assert.Nil(t, repo.byID[acct.ID].LockedUntil)
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailNotVerified)
	// A correct password against an unverified account is not a failed attempt.
	assert.Zero(t, repo.byID[acct.ID].LoginAttempts)
}

func TestRefresh_IssuesNewSession(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedAccount(t, repo, "owner@example.com", "password123", true)

	first, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "owner@example.com", resp.User.Email)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifyEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", false)
	token := "verify-token-1"
	repo.byID[acct.ID].VerificationToken = &token

	resp, err := svc.VerifyEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.Email)

	stored := repo.byID[acct.ID]
	assert.NotNil(t, stored.EmailVerifiedAt)
	assert.Nil(t, stored.VerificationToken)

	// The token is single-use.
	_, err = svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, ErrVerificationInvalid)
}

func TestResendVerification_RotatesToken(t *testing.T) {
	svc, repo, notifier := newAuthFixture(t)
	acct := seedAccount(t, repo, "owner@example.com", "password123", false)
	token := "verify-token-1"
	repo.byID[acct.ID].VerificationToken = &token

	require.NoError(t, svc.ResendVerification(context.Background(), token))

	stored := repo.byID[acct.ID]
	require.NotNil(t, stored.VerificationToken)
	assert.NotEqual(t, token, *stored.VerificationToken)
	require.Len(t, notifier.verificationTokens, 1)
	assert.Equal(t, *stored.VerificationToken, notifier.verificationTokens[0])
}

func TestUpdateEmail_RotatesAndUnverifies(t *testing.T) {
	svc, repo, notifier := newAuthFixture(t)
	acct := seedAccount(t, repo, "old@example.com", "password123", false)
	token := "verify-token-1"
	repo.byID[acct.ID].VerificationToken = &token

	resp, err := svc.UpdateEmail(context.Background(), dto.UpdateEmailRequest{
		Email: "new@example.com", Token: token,
	})
	require.NoError(t, err)
	assert.NotEqual(t, token, resp.Token)

	stored := repo.byID[acct.ID]
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Nil(t, stored.EmailVerifiedAt)
	require.Len(t, notifier.verificationTo, 1)
	assert.Equal(t, "new@example.com", notifier.verificationTo[0])
}

func TestUpdateEmail_TakenByOther(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedAccount(t, repo, "other@example.com", "password123", true)
	acct := seedAccount(t, repo, "old@example.com", "password123", false)
	token := "verify-token-1"
	repo.byID[acct.ID].VerificationToken = &token

	_, err := svc.UpdateEmail(context.Background(), dto.UpdateEmailRequest{
		Email: "other@example.com", Token: token,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
