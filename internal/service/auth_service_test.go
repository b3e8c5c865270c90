package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tickety/tickety-server/internal/auth"
	"github.com/tickety/tickety-server/internal/config"
	"github.com/tickety/tickety-server/internal/domain"
	"github.com/tickety/tickety-server/internal/service"
	apperrors "github.com/tickety/tickety-server/pkg/util"
)

type authFixture struct {
	svc       *service.AuthService
	customers *fakeCustomerRepo
	assignees *fakeAssigneeRepo
	resets    *fakeResetRepo
	mailer    *fakeMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	customers := newFakeCustomerRepo()
	assignees := newFakeAssigneeRepo()
	resets := newFakeResetRepo()
	mailer := &fakeMailer{}

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.PasswordResetTTLMinutes = 60
	cfg.Auth.BcryptCost = 4

	svc := service.NewAuthService(cfg, service.AuthDependencies{
		CustomerRepo:      customers,
		AssigneeRepo:      assignees,
		PasswordResetRepo: resets,
		Mailer:            mailer,
		Logger:            zap.NewNop(),
	})
	return &authFixture{svc: svc, customers: customers, assignees: assignees, resets: resets, mailer: mailer}
}

func (f *authFixture) registerCustomer(t *testing.T, email string) *domain.Customer {
	t.Helper()
	customer, err := f.svc.RegisterCustomer(context.Background(), service.CustomerRegistration{
		FullName:      "Ada Example",
		Email:         email,
		Password:      "initial-pw",
		ContactNumber: "+100000001",
	})
	require.NoError(t, err)
	return customer
}

func requireDomainCode(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestRegisterCustomerHashesPassword(t *testing.T) {
	f := newAuthFixture(t)

	customer := f.registerCustomer(t, "ada@example.com")
	require.NotEmpty(t, customer.ID)
	assert.NotEqual(t, "initial-pw", customer.PasswordHash)
	assert.NoError(t, auth.ComparePassword(customer.PasswordHash, "initial-pw"))
}

func TestRegisterCustomerDuplicateEmailConflicts(t *testing.T) {
	f := newAuthFixture(t)
	f.registerCustomer(t, "ada@example.com")

	_, err := f.svc.RegisterCustomer(context.Background(), service.CustomerRegistration{
		FullName: "Other Ada",
		Email:    "ada@example.com",
		Password: "another-pw",
	})
	requireDomainCode(t, err, "CONFLICT")
}

func TestRegisterAssigneeKeepsAddress(t *testing.T) {
	f := newAuthFixture(t)

	assignee, err := f.svc.RegisterAssignee(context.Background(), service.AssigneeRegistration{
		FullName:      "Sam Support",
		Email:         "sam@example.com",
		Password:      "support-pw",
		ContactNumber: "+100000002",
		Address:       "12 Desk Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "12 Desk Street", assignee.Address)
}

func TestLoginCustomerSuccess(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.registerCustomer(t, "ada@example.com")

	customer, token, expiresAt, err := f.svc.LoginCustomer(context.Background(), "ada@example.com", "initial-pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, customer.ID)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := f.svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.registerCustomer(t, "ada@example.com")

	_, _, _, unknownErr := f.svc.LoginCustomer(context.Background(), "nobody@example.com", "whatever")
	_, _, _, wrongPwErr := f.svc.LoginCustomer(context.Background(), "ada@example.com", "wrong-pw")

	unknown := requireDomainCode(t, unknownErr, "UNAUTHORIZED")
	wrongPw := requireDomainCode(t, wrongPwErr, "UNAUTHORIZED")
	assert.Equal(t, unknown.Message, wrongPw.Message)
}

func TestLoginAssigneeIssuesAssigneeToken(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.RegisterAssignee(context.Background(), service.AssigneeRegistration{
		FullName: "Sam Support",
		Email:    "sam@example.com",
		Password: "support-pw",
	})
	require.NoError(t, err)

	_, token, _, err := f.svc.LoginAssignee(context.Background(), "sam@example.com", "support-pw")
	require.NoError(t, err)

	claims, err := f.svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssignee, claims.Role)
}

func TestUpdateCustomerProfileKeepsPasswordWhenEmpty(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.registerCustomer(t, "ada@example.com")

	updated, err := f.svc.UpdateCustomerProfile(context.Background(), registered.ID, service.CustomerProfileUpdate{
		FullName:      "Ada Renamed",
		Email:         "ada.new@example.com",
		ContactNumber: "+100000009",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Renamed", updated.FullName)
	assert.Equal(t, registered.PasswordHash, updated.PasswordHash)

	_, _, _, err = f.svc.LoginCustomer(context.Background(), "ada.new@example.com", "initial-pw")
	assert.NoError(t, err)
}

func TestUpdateCustomerProfileRehashesNewPassword(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.registerCustomer(t, "ada@example.com")

	updated, err := f.svc.UpdateCustomerProfile(context.Background(), registered.ID, service.CustomerProfileUpdate{
		FullName: "Ada Example",
		Email:    "ada@example.com",
		Password: "rotated-pw",
	})
	require.NoError(t, err)
	assert.NotEqual(t, registered.PasswordHash, updated.PasswordHash)

	_, _, _, err = f.svc.LoginCustomer(context.Background(), "ada@example.com", "rotated-pw")
	assert.NoError(t, err)
}

func TestRequestPasswordResetKnownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.registerCustomer(t, "ada@example.com")

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ada@example.com"))

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ada@example.com", f.mailer.sent[0].To)
	assert.Len(t, f.mailer.sent[0].Token, 64)
	assert.Equal(t, 1, f.resets.count())
}

func TestRequestPasswordResetUnknownEmailSilent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "nobody@example.com"))

	assert.Empty(t, f.mailer.sent)
	assert.Zero(t, f.resets.count())
}

func TestConfirmPasswordResetIsSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	f.registerCustomer(t, "ada@example.com")
	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	token := f.mailer.sent[0].Token

	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), token, "fresh-pw"))

	_, _, _, err := f.svc.LoginCustomer(context.Background(), "ada@example.com", "fresh-pw")
	assert.NoError(t, err)
	_, _, _, err = f.svc.LoginCustomer(context.Background(), "ada@example.com", "initial-pw")
	assert.Error(t, err)

	err = f.svc.ConfirmPasswordReset(context.Background(), token, "again-pw")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.registerCustomer(t, "ada@example.com")

	reset := &domain.PasswordReset{
		CustomerID: registered.ID,
		Token:      "stale-token",
		ExpiresAt:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, f.resets.Create(context.Background(), reset))

	err := f.svc.ConfirmPasswordReset(context.Background(), "stale-token", "fresh-pw")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestConfirmPasswordResetUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ConfirmPasswordReset(context.Background(), "no-such-token", "fresh-pw")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}
