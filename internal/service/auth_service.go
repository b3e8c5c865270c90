package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/config"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/notify"
	"github.com/tickety/tickety-server/internal/repository"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

// ForgotPasswordMessage is returned whether or not the email exists.
const ForgotPasswordMessage = "If your email exists, you will receive a reset link."

// AuthService coordinates registration, login, profile and reset flows for
// both principal tables.
type AuthService struct {
	customers  repository.CustomerRepository
	assignees  repository.AssigneeRepository
	resets     repository.PasswordResetRepository
	mailer     notify.Mailer
	logger     *zap.Logger
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	CustomerRepo      repository.CustomerRepository
	AssigneeRepo      repository.AssigneeRepository
	PasswordResetRepo repository.PasswordResetRepository
	Mailer            notify.Mailer
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		customers:  deps.CustomerRepo,
		assignees:  deps.AssigneeRepo,
		resets:     deps.PasswordResetRepo,
		mailer:     deps.Mailer,
		logger:     deps.Logger,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// CustomerRegistration carries registration input.
type CustomerRegistration struct {
	FullName      string
	Email         string
	Password      string
	ContactNumber string
}

// AssigneeRegistration carries registration input; assignees additionally
// record an address.
type AssigneeRegistration struct {
	FullName      string
	Email         string
	Password      string
	ContactNumber string
	Address       string
}

// RegisterCustomer creates a new customer account. Duplicate emails surface
// as the database's uniqueness conflict.
func (s *AuthService) RegisterCustomer(ctx context.Context, input CustomerRegistration) (*domain.Customer, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		FullName:      input.FullName,
		Email:         input.Email,
		PasswordHash:  hash,
		ContactNumber: input.ContactNumber,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return customer, nil
}

// RegisterAssignee creates a new assignee account.
func (s *AuthService) RegisterAssignee(ctx context.Context, input AssigneeRegistration) (*domain.Assignee, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	assignee := &domain.Assignee{
		FullName:      input.FullName,
		Email:         input.Email,
		PasswordHash:  hash,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
	}
	if err := s.assignees.Create(ctx, assignee); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return assignee, nil
}

// LoginCustomer authenticates a customer. Unknown email and wrong password
// yield the same error so accounts cannot be enumerated here.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, time.Time, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, domain.RoleCustomer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// LoginAssignee authenticates an assignee.
func (s *AuthService) LoginAssignee(ctx context.Context, email, password string) (*domain.Assignee, string, time.Time, error) {
	assignee, err := s.assignees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(assignee.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(assignee.ID, domain.RoleAssignee)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return assignee, token, exp, nil
}

// CustomerProfileUpdate carries self-service profile changes. Password is
// optional; empty leaves the hash untouched.
type CustomerProfileUpdate struct {
	FullName      string
	Email         string
	ContactNumber string
	Password      string
}

// AssigneeProfileUpdate mirrors CustomerProfileUpdate plus address.
type AssigneeProfileUpdate struct {
	FullName      string
	Email         string
	ContactNumber string
	Address       string
	Password      string
}

// UpdateCustomerProfile applies a self-service update.
func (s *AuthService) UpdateCustomerProfile(ctx context.Context, customerID string, input CustomerProfileUpdate) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.FullName = input.FullName
	customer.Email = input.Email
	customer.ContactNumber = input.ContactNumber
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = hash
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return customer, nil
}

// UpdateAssigneeProfile applies a self-service update.
func (s *AuthService) UpdateAssigneeProfile(ctx context.Context, assigneeID string, input AssigneeProfileUpdate) (*domain.Assignee, error) {
	assignee, err := s.assignees.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	assignee.FullName = input.FullName
	assignee.Email = input.Email
	assignee.ContactNumber = input.ContactNumber
	assignee.Address = input.Address
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		assignee.PasswordHash = hash
	}
	if err := s.assignees.Update(ctx, assignee); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return assignee, nil
}

// RequestPasswordReset creates a reset token for a customer email and sends
// the link best-effort. Callers always receive the same outcome regardless of
// whether the email exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	reset := &domain.PasswordReset{
		CustomerID: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(customer.Email, reset.Token); err != nil {
		s.logger.Error("failed to send password reset email", zap.Error(err))
	}
	return nil
}

// ConfirmPasswordReset validates the reset token, updates the customer's
// password, and deletes the token row so it cannot be replayed.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	reset, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("invalid or expired token", nil)
		}
		return err
	}
	if reset.Expired(time.Now()) {
		return apperrors.NewValidationError("invalid or expired token", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	customer, err := s.customers.GetByID(ctx, reset.CustomerID)
	if err != nil {
		return err
	}
	customer.PasswordHash = hash
	if err := s.customers.Update(ctx, customer); err != nil {
		return err
	}

	return s.resets.Delete(ctx, reset.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
