package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fullbootcamp/pos-saas-sub000/internal/apierror"
	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/metrics"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
	"github.com/fullbootcamp/pos-saas-sub000/internal/service"
)

const (
	// AccountKey is the gin context key the gate stores the resolved
	// account under on success.
	AccountKey = "account"

	// MFAHeader carries the time-based one-time code for accounts with
	// multi-factor enabled.
	MFAHeader = "x-mfa-token"
)

// bootstrapRoutes are exempt from the subscription and lockout stages:
// an incompletely-onboarded account must still be able to check its
// status, create its store, pick a plan, and bootstrap its dashboard.
var bootstrapRoutes = map[string]bool{
	"/api/status":                                true,
	"/api/stores":                                true,
	"/api/subscriptions":                         true,
	"/api/subscriptions/update-subscription-end": true,
	"/api/dashboard":                             true,
}

// AuthGate is the sequential decision pipeline every protected request
// passes through: bearer token presence, signature/expiry verification,
// identity resolution, multi-factor, bootstrap allow-list, subscription
// validity, lockout. Each stage either fails with a terminal response or
// proceeds; falling through every stage attaches the account to the
// context. (The request-rate stage runs before this middleware, see
// RateLimiter.)
func AuthGate(tokens *auth.TokenManager, accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			reject(c, http.StatusUnauthorized, apierror.CodeTokenMissing, "Authentication required")
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if err == auth.ErrTokenExpired {
				// Distinct code so the SPA silently redirects to login
				// instead of showing a generic error.
				reject(c, http.StatusUnauthorized, apierror.CodeTokenExpired, "Session expired, please log in again")
				return
			}
			reject(c, http.StatusUnauthorized, apierror.CodeTokenInvalid, "Invalid session")
			return
		}

		id, err := uuid.Parse(claims.AccountID)
		if err != nil {
			reject(c, http.StatusUnauthorized, apierror.CodeTokenInvalid, "Invalid session")
			return
		}

		ctx := c.Request.Context()
		acct, err := accounts.FindByID(ctx, id)
		if err != nil {
			// Account deleted after the token was issued; an auth failure,
			// not a 500.
			reject(c, http.StatusNotFound, apierror.CodeUserNotFound, "User not found")
			return
		}

		if acct.MFAEnabled {
			code := c.GetHeader(MFAHeader)
			if acct.MFASecret == nil || !auth.VerifyTOTP(code, *acct.MFASecret) {
				reject(c, http.StatusUnauthorized, apierror.CodeMFARequired, "MFA code required or invalid")
				return
			}
		}

		if bootstrapRoutes[c.FullPath()] {
			c.Set(AccountKey, acct)
			c.Next()
			return
		}

		if subscriptionExpired(acct, time.Now()) {
			reject(c, http.StatusForbidden, apierror.CodeSubscriptionExpired, "Subscription expired")
			return
		}

		if acct.LoginAttempts >= service.MaxLoginAttempts {
			if acct.LockedUntil == nil || time.Now().Before(*acct.LockedUntil) {
				if lockErr := accounts.LockUntil(ctx, acct.ID, time.Now().Add(service.LockoutDuration)); lockErr != nil {
					log.Error().Err(lockErr).Str("account_id", acct.ID.String()).Msg("apply lockout")
				}
				reject(c, http.StatusForbidden, apierror.CodeAccountLocked, "Account locked, try again later")
				return
			}
			// Lock elapsed — clear the counter and let the request through.
			if resetErr := accounts.ResetLoginAttempts(ctx, acct.ID); resetErr != nil {
				log.Error().Err(resetErr).Str("account_id", acct.ID.String()).Msg("reset login attempts")
			}
		}

		c.Set(AccountKey, acct)
		c.Next()
	}
}

// subscriptionExpired reports whether the account's paid subscription has
// lapsed as of now. Strict "end before now": an end timestamp exactly
// equal to now is still valid. Accounts without a plan or on the free demo
// never expire.
func subscriptionExpired(acct *model.Account, now time.Time) bool {
	if acct.PlanID == nil || *acct.PlanID == model.FreePlanID {
		return false
	}
	return acct.SubscriptionEndsAt == nil || acct.SubscriptionEndsAt.Before(now)
}

// reject aborts the request with the terminal failure response and
// counts the rejection for the /metrics endpoint.
func reject(c *gin.Context, status int, code, detail string) {
	metrics.GateRejectionsTotal.WithLabelValues(code).Inc()
	c.AbortWithStatusJSON(status, apierror.New(code, detail))
}

// RequireRole rejects requests whose resolved account role is not in the
// allowed list. Must run after AuthGate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		acct := GetAccount(c)
		if acct == nil || !allowed[acct.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.New(apierror.CodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetAccount retrieves the account the gate attached, nil when absent.
func GetAccount(c *gin.Context) *model.Account {
	v, ok := c.Get(AccountKey)
	if !ok {
		return nil
	}
	acct, _ := v.(*model.Account)
	return acct
}
