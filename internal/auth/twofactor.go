package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	util "github.com/spec-kit/food-order-service/pkg/util"
)

const totpPeriod = 30

// TwoFactorManager provisions and verifies time-based one-time codes for the
// admin role. Secrets are stored under a derived owner key so the collection
// never holds raw user ids.
type TwoFactorManager struct {
	lookupKey []byte
	issuer    string
}

// NewTwoFactorManager builds a manager from the configured lookup key and
// TOTP issuer name.
func NewTwoFactorManager(lookupKey, issuer string) *TwoFactorManager {
	return &TwoFactorManager{lookupKey: []byte(lookupKey), issuer: issuer}
}

// OwnerKey derives the deterministic storage key for a user id.
func (m *TwoFactorManager) OwnerKey(ownerID string) string {
	mac := hmac.New(sha256.New, m.lookupKey)
	mac.Write([]byte(ownerID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Provision generates a fresh TOTP secret for the owner. Called exactly once,
// at registration, for admin identities.
func (m *TwoFactorManager) Provision(ownerID string) (ownerKey, secret string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.issuer,
		AccountName: ownerID,
		Period:      totpPeriod,
	})
	if err != nil {
		return "", "", util.NewInternalError(err)
	}
	return m.OwnerKey(ownerID), key.Secret(), nil
}

// VerifyCode checks a code against the secret at the current time, tolerating
// one period of clock drift in either direction.
func (m *TwoFactorManager) VerifyCode(secret, code string) bool {
	return m.VerifyCodeAt(secret, code, time.Now())
}

// VerifyCodeAt checks a code against the secret at a given time.
func (m *TwoFactorManager) VerifyCodeAt(secret, code string, at time.Time) bool {
	valid, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}
