package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-rent/internal/config"
	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *rentalTestEnv) {
	t.Helper()
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
	}
	svc := NewUserAuthService(cfg, repository.NewUserRepository(env.db), repository.NewCollegeRepository(env.db))
	return svc, env
}

func TestRegisterRequiresSupportedCollegeDomain(t *testing.T) {
	svc, env := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "kid@gmail.com", Password: "password1"}); !errors.Is(err, ErrCollegeNotSupported) {
		t.Fatalf("expected unsupported college, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "password1"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "kid@test.edu", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}

	user, token, _, err := svc.Register(RegisterInput{Email: " Kid@Test.EDU ", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "kid@test.edu" || user.CollegeID != env.college.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Role != constants.UserRoleStudent || user.IsLender {
		t.Fatalf("new user should be a plain student: %+v", user)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.CollegeID != env.college.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "kid@test.edu", Password: "password1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestRegisterRejectsInactiveCollege(t *testing.T) {
	svc, env := setupUserAuthServiceTest(t)
	if err := env.db.Model(&models.College{}).Where("id = ?", env.college.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate college failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "kid@test.edu", Password: "password1"}); !errors.Is(err, ErrCollegeNotSupported) {
		t.Fatalf("expected unsupported college, got %v", err)
	}
}

func TestLoginFlow(t *testing.T) {
	svc, env := setupUserAuthServiceTest(t)
	registered, _, _, err := svc.Register(RegisterInput{Email: "kid@test.edu", Password: "password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("kid@test.edu", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost@test.edu", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}

	user, token, _, err := svc.Login("KID@test.edu", "password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID || token == "" || user.LastLoginAt == nil {
		t.Fatalf("unexpected login result: %+v", user)
	}

	state, err := svc.ResolveAuthState(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.CollegeID != env.college.ID || state.Status != constants.UserStatusActive {
		t.Fatalf("unexpected auth state: %+v", state)
	}

	if err := env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("kid@test.edu", "password1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected disabled user, got %v", err)
	}
}

func TestParseUserJWTRejectsForeignSecret(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)
	other := &UserAuthService{jwtCfg: config.JWTConfig{SecretKey: "other-secret"}}
	token, _, err := other.GenerateUserJWT(&models.User{ID: 7, CollegeID: 1, Role: constants.UserRoleStudent})
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, err := svc.ResolveAuthState(context.Background(), 4242); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
