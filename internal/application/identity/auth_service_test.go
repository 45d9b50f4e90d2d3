package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainidentity "github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/infrastructure/auth"
	"github.com/inkasso/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainidentity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domainidentity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter domainidentity.UserFilter) ([]*domainidentity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domainidentity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "unit-test-secret-key-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "inkasso-test",
		MaxRefreshCount:        3,
	})
}

func newAuthServiceUnderTest(userRepo *MockUserRepository) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(userRepo, newTestJWTService(), blacklist, DefaultAuthServiceConfig(), zap.NewNop())
	return svc, blacklist
}

func newActiveUser(t *testing.T, role domainidentity.Role, password string) *domainidentity.User {
	t.Helper()
	var tenantID *uuid.UUID
	if role.RequiresTenant() {
		id := uuid.New()
		tenantID = &id
	}
	user, err := domainidentity.NewUser("actor@inkasso.example", password, "Test Actor", role, tenantID)
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	const password = "Sup3r$ecret!"

	t.Run("valid credentials return token pair and user info", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)

		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: password})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "AGENT", result.User.Role)
		assert.Nil(t, result.User.TenantID)
		assert.NotNil(t, user.LastLoginAt)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)

		userRepo.On("FindByEmail", ctx, "nobody@inkasso.example").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "nobody@inkasso.example", Password: password})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("wrong password records a failed attempt", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)

		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "wrong-password"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("account locks after max failed attempts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)

		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		var lastErr error
		for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
			_, lastErr = svc.Login(ctx, LoginInput{Email: user.Email, Password: "wrong-password"})
		}

		var domainErr *shared.DomainError
		require.ErrorAs(t, lastErr, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())

		// Even the correct password is rejected while locked
		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: password})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)
		require.NoError(t, user.Deactivate())

		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: password})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	const password = "Sup3r$ecret!"

	login := func(t *testing.T, svc *AuthService, userRepo *MockUserRepository, user *domainidentity.User) *LoginResult {
		t.Helper()
		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)
		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: password})
		require.NoError(t, err)
		return result
	}

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleClient, password)
		loginResult := login(t, svc, userRepo, user)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-jwt"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("refresh fails for deactivated user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)
		loginResult := login(t, svc, userRepo, user)

		require.NoError(t, user.Deactivate())
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
	})

	t.Run("refresh fails after logout of all sessions", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)
		loginResult := login(t, svc, userRepo, user)

		// Token issuance and invalidation need distinct timestamps
		time.Sleep(1100 * time.Millisecond)

		require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: user.ID, AllSessions: true}))

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: loginResult.RefreshToken})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the access token jti", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, blacklist := newAuthServiceUnderTest(userRepo)

		err := svc.Logout(ctx, LogoutInput{
			UserID:       uuid.New(),
			TokenJTI:     "some-jti",
			RemainingTTL: time.Minute,
		})

		require.NoError(t, err)
		blacklisted, err := blacklist.IsBlacklisted(ctx, "some-jti")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired token needs no blacklisting", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, blacklist := newAuthServiceUnderTest(userRepo)

		err := svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "stale-jti", RemainingTTL: 0})

		require.NoError(t, err)
		blacklisted, err := blacklist.IsBlacklisted(ctx, "stale-jti")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	const password = "Sup3r$ecret!"

	t.Run("valid change updates the hash and revokes sessions", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, blacklist := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		issuedAt := time.Now().Add(-time.Minute)
		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: password,
			NewPassword: "N3w$ecret!pass",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("N3w$ecret!pass"))
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("wrong old password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		user := newActiveUser(t, domainidentity.RoleAgent, password)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong-password",
			NewPassword: "N3w$ecret!pass",
		})

		require.Error(t, err)
		assert.True(t, user.VerifyPassword(password))
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc, _ := newAuthServiceUnderTest(userRepo)
		userID := uuid.New()

		userRepo.On("FindByID", ctx, userID).Return(nil, errors.New("record not found"))

		err := svc.ChangePassword(ctx, ChangePasswordInput{UserID: userID, OldPassword: "x", NewPassword: "y"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
	})
}
