package auth

import (
	"github.com/pquerna/otp/totp"
)

// VerifyTOTP validates a time-based one-time code against the account's
// shared secret. Empty inputs are never valid.
func VerifyTOTP(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}

// GenerateTOTPSecret creates a new shared secret for enrolling an account
// in multi-factor authentication. The returned string is the base32 secret
// the authenticator app needs.
func GenerateTOTPSecret(accountEmail string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "launchpos",
		AccountName: accountEmail,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}
