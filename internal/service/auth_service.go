package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/onboarding"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

const (
	// MaxLoginAttempts failed logins lock the account for LockoutDuration.
	MaxLoginAttempts = 5
	LockoutDuration  = 15 * time.Minute
)

// Notifier enqueues outbound mail onto the async worker queue.
type Notifier interface {
	EnqueueVerificationEmail(ctx context.Context, to, token string) error
	EnqueueInvoiceEmail(ctx context.Context, to, subject, body, pdfPath string) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error)
	ResendVerification(ctx context.Context, token string) error
	UpdateEmail(ctx context.Context, req dto.UpdateEmailRequest) (*dto.UpdateEmailResponse, error)
}

type authService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenManager
	notifier Notifier
}

func NewAuthService(accounts repository.AccountRepository, tokens *auth.TokenManager, notifier Notifier) AuthService {
	return &authService{accounts: accounts, tokens: tokens, notifier: notifier}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := s.accounts.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	token := uuid.NewString()
	acct := &model.Account{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              model.Role(req.Role),
		VerificationToken: &token,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, err
	}

	if err := s.notifier.EnqueueVerificationEmail(ctx, acct.Email, token); err != nil {
		// Registration already committed; the token in the response still
		// lets the client drive verification, so log and carry on.
		log.Error().Err(err).Str("email", acct.Email).Msg("enqueue verification email")
	}

	return &dto.RegisterResponse{
		Message:           "Registration successful. Check your inbox to verify your email.",
		VerificationToken: token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	acct, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if acct.LoginAttempts >= MaxLoginAttempts {
		if acct.LockedUntil == nil || time.Now().Before(*acct.LockedUntil) {
			// (Re-)apply the lock; the conditional update in the store never
			// extends an existing one.
			if lockErr := s.accounts.LockUntil(ctx, acct.ID, time.Now().Add(LockoutDuration)); lockErr != nil {
				log.Error().Err(lockErr).Str("account_id", acct.ID.String()).Msg("apply lockout")
			}
			return nil, ErrAccountLocked
		}
		// Lock elapsed — clear the counter and evaluate this attempt fresh.
		if err := s.accounts.ResetLoginAttempts(ctx, acct.ID); err != nil {
			return nil, err
		}
	}

	if !auth.VerifyPassword(req.Password, acct.PasswordHash) {
		attempts, incErr := s.accounts.IncrementLoginAttempts(ctx, acct.ID)
		if incErr != nil {
			log.Error().Err(incErr).Str("account_id", acct.ID.String()).Msg("increment login attempts")
		} else if attempts >= MaxLoginAttempts {
			if lockErr := s.accounts.LockUntil(ctx, acct.ID, time.Now().Add(LockoutDuration)); lockErr != nil {
				log.Error().Err(lockErr).Str("account_id", acct.ID.String()).Msg("apply lockout")
			}
		}
		return nil, ErrInvalidCredentials
	}

	if acct.EmailVerifiedAt == nil {
		return nil, ErrEmailNotVerified
	}

	if err := s.accounts.ResetLoginAttempts(ctx, acct.ID); err != nil {
		return nil, err
	}

	return s.issueSession(acct)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, auth.ErrTokenInvalid
	}
	acct, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.issueSession(acct)
}

func (s *authService) issueSession(acct *model.Account) (*dto.LoginResponse, error) {
	access, err := s.tokens.IssueAccess(acct.ID.String(), acct.Email, string(acct.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(acct.ID.String(), acct.Email, string(acct.Role))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         toUserResponse(acct),
		RedirectTo:   onboarding.RedirectTarget(acct),
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*dto.VerifyEmailResponse, error) {
	acct, err := s.accounts.FindByVerificationToken(ctx, token)
	if err != nil {
		return nil, ErrVerificationInvalid
	}
	now := time.Now()
	acct.EmailVerifiedAt = &now
	acct.VerificationToken = nil
	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	return &dto.VerifyEmailResponse{Message: "Email verified", Email: acct.Email}, nil
}

func (s *authService) ResendVerification(ctx context.Context, token string) error {
	acct, err := s.accounts.FindByVerificationToken(ctx, token)
	if err != nil {
		return ErrVerificationInvalid
	}
	// Rotate so stale links stop working.
	fresh := uuid.NewString()
	acct.VerificationToken = &fresh
	if err := s.accounts.Update(ctx, acct); err != nil {
		return err
	}
	return s.notifier.EnqueueVerificationEmail(ctx, acct.Email, fresh)
}

func (s *authService) UpdateEmail(ctx context.Context, req dto.UpdateEmailRequest) (*dto.UpdateEmailResponse, error) {
	acct, err := s.accounts.FindByVerificationToken(ctx, req.Token)
	if err != nil {
		return nil, ErrVerificationInvalid
	}
	if other, err := s.accounts.FindByEmail(ctx, req.Email); err == nil && other.ID != acct.ID {
		return nil, ErrEmailTaken
	}
	fresh := uuid.NewString()
	acct.Email = req.Email
	acct.VerificationToken = &fresh
	acct.EmailVerifiedAt = nil
	if err := s.accounts.Update(ctx, acct); err != nil {
		return nil, err
	}
	if err := s.notifier.EnqueueVerificationEmail(ctx, acct.Email, fresh); err != nil {
		log.Error().Err(err).Str("email", acct.Email).Msg("enqueue verification email")
	}
	return &dto.UpdateEmailResponse{Message: "Email updated, verification re-sent", Token: fresh}, nil
}

func toUserResponse(a *model.Account) dto.UserResponse {
	return dto.UserResponse{
		ID:            a.ID.String(),
		Email:         a.Email,
		Name:          a.Name,
		Role:          string(a.Role),
		EmailVerified: a.EmailVerifiedAt != nil,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
