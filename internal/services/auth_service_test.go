package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vannt010391/staff-management/internal/models"
	"github.com/vannt010391/staff-management/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *serviceTestEnv) {
	env := newServiceTestEnv(t)
	return NewAuthService(repository.NewUserRepository(env.db)), env
}

func TestRegister_DefaultsToFreelancer(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{
		Username: "newuser",
		Email:    "newuser@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleFreelancer, user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_RejectsShortPasswordAndBadRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "u1", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(RegisterInput{Username: "u1", Password: "password123", Role: "wizard"})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "taken", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "taken", Password: "password456"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_VerifiesPasswordAndActiveFlag(t *testing.T) {
	svc, env := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     "worker",
		PasswordHash: string(hash),
		Role:         models.RoleStaff,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)

	got, err := svc.Login(LoginInput{Username: "worker", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.Login(LoginInput{Username: "worker", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Username: "ghost", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user.IsActive = false
	require.NoError(t, env.db.Save(user).Error)
	_, err = svc.Login(LoginInput{Username: "worker", Password: "password123"})
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "worker", Password: "password123"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "newpassword1"), ErrInvalidCredentials)
	require.ErrorIs(t, svc.ChangePassword(user.ID, "password123", "short"), ErrPasswordTooShort)
	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))

	_, err = svc.Login(LoginInput{Username: "worker", Password: "newpassword1"})
	require.NoError(t, err)
}
