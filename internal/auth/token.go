package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	util "github.com/spec-kit/food-order-service/pkg/util"
)

// TokenManager handles issuing and validating signed bearer tokens. Tokens
// carry only the subject identity; resolving the subject against the store is
// the middleware's job, never the parser's.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. The default validity window is 24h.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string `json:"sub_id"`
	jwt.RegisteredClaims
}

// IssueToken builds and signs a JWT for the subject.
func (tm *TokenManager) IssueToken(subjectID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, util.NewInternalError(err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the token and returns its claims. Expiry is reported
// distinctly from any other validation failure.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, util.NewExpiredToken()
		}
		return nil, util.NewInvalidToken("invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, util.NewInvalidToken("invalid token claims")
	}
	return claims, nil
}
