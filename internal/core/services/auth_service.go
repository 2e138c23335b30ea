package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradeledger/trade_ledger_app/internal/apperrors"
	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portsrepo "github.com/tradeledger/trade_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
	"github.com/tradeledger/trade_ledger_app/internal/platform/config"
	"github.com/tradeledger/trade_ledger_app/internal/utils"
)

// authService handles registration, password login and token issuance.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a user with an empty inventory.
func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		InventoryID:  uuid.NewString(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.CreateUserWithInventory(ctx, user); err != nil {
		logger.Warn("Failed to register user", "error", err)
		return nil, err
	}

	logger.Info("User registered", "user_id", user.UserID)
	return &user, nil
}

// Authenticate verifies the email/password pair.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		logger.Warn("Login attempt for unknown email")
		return nil, fmt.Errorf("%w: incorrect email or password", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", "user_id", user.UserID)
		return nil, fmt.Errorf("%w: incorrect email or password", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// IssueToken creates a signed bearer token for the user.
func (s *authService) IssueToken(user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}
