package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	util "github.com/spec-kit/food-order-service/pkg/util"
)

// AuthService coordinates registration and login flows, including the
// second-factor challenge for the admin role.
type AuthService struct {
	users        repository.UserRepository
	twoFactor    repository.TwoFactorRepository
	tokens       *auth.TokenManager
	secondFactor *auth.TwoFactorManager
	bcryptCost   int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo      repository.UserRepository
	TwoFactorRepo repository.TwoFactorRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		twoFactor:    deps.TwoFactorRepo,
		tokens:       auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		secondFactor: auth.NewTwoFactorManager(cfg.Auth.TwoFactorLookupKey, cfg.Auth.TwoFactorIssuer),
		bcryptCost:   cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries new-account fields.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.UserRole
}

// Register creates a new identity. Admin accounts additionally get a TOTP
// secret provisioned; the secret is returned exactly once, here, so the
// caller can enroll an authenticator.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, "", util.NewValidationError("name, email, phone and password are required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, "", util.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", util.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", util.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", util.MapError(err)
	}

	if user.Role != domain.RoleAdmin {
		return user, "", nil
	}

	ownerKey, secret, err := s.secondFactor.Provision(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	record := &domain.TwoFactorSecret{OwnerKey: ownerKey, Secret: secret}
	if err := s.twoFactor.Create(ctx, record); err != nil {
		return nil, "", util.MapError(err)
	}
	return user, secret, nil
}

// Login verifies credentials and, for admin identities, the second-factor
// code, then issues a bearer token. A missing account denies the same way as
// a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password, code string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", time.Time{}, util.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, util.MapError(err)
	}

	match, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !match {
		return nil, "", time.Time{}, util.NewInvalidCredentials()
	}

	if user.Role == domain.RoleAdmin {
		if err := s.verifySecondFactor(ctx, user, code); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID.Hex())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

func (s *AuthService) verifySecondFactor(ctx context.Context, user *domain.User, code string) error {
	record, err := s.twoFactor.GetByOwnerKey(ctx, s.secondFactor.OwnerKey(user.ID.Hex()))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.NewSecondFactorNotProvisioned()
		}
		return util.MapError(err)
	}
	if code == "" {
		return util.NewSecondFactorRequired()
	}
	if !s.secondFactor.VerifyCode(record.Secret, code) {
		return util.NewSecondFactorRejected()
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
