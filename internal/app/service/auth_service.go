package service

import (
	"context"
	"errors"
	"time"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/policy"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/pkg/logger"
	appRedis "github.com/avoronov/techstore-backend/pkg/redis"
	"github.com/avoronov/techstore-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this login or email already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPolicyDenied       = errors.New("operation not permitted")
)

// PolicyDeniedError wraps a policy denial so the boundary can map the
// reason tag to a response without re-running the check.
type PolicyDeniedError struct {
	Reason policy.Reason
}

func (e *PolicyDeniedError) Error() string {
	return "operation not permitted: " + string(e.Reason)
}

func (e *PolicyDeniedError) Is(target error) bool {
	return target == ErrPolicyDenied
}

type AuthService interface {
	Register(login, password, email, phone string, role model.UserRole) (*model.User, error)
	Login(login, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ListUsers() ([]model.User, error)
	DeleteUser(actor policy.Identity, targetID uint) error
}

type authService struct {
	userRepo    repository.UserRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Register(login, password, email, phone string, role model.UserRole) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"login": login,
		"email": email,
	})

	existing, err := s.userRepo.FindByLoginOrEmail(login, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"login": login,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: login or email already taken", map[string]interface{}{
			"login": login,
		})
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"login": login,
		})
		return nil, err
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Login:        login,
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        phone,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"login": login,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"login":   login,
		"role":    user.Role,
	})
	return user, nil
}

func (s *authService) Login(login, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"login": login,
	})

	user, err := s.userRepo.FindByLogin(login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"login": login,
			})
			return nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to fetch user for login", err, map[string]interface{}{
			"login": login,
		})
		return nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: password mismatch", map[string]interface{}{
			"login": login,
		})
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(user.ID, user.Login, string(user.Role), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"login":   login,
		"role":    user.Role,
	})
	return user, token, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
// Without Redis configured revocation is best-effort only: the token
// simply expires.
func (s *authService) Logout(ctx context.Context, token string) error {
	if !appRedis.Enabled() {
		logger.Debug("Logout without Redis: token left to expire naturally")
		return nil
	}
	return appRedis.BlacklistToken(ctx, token, s.tokenExpiry)
}

func (s *authService) ListUsers() ([]model.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list users", err)
		return nil, err
	}
	return users, nil
}

func (s *authService) DeleteUser(actor policy.Identity, targetID uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"actor_id":  actor.ID,
		"target_id": targetID,
	})

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User deletion failed: target not found", map[string]interface{}{
				"target_id": targetID,
			})
			return ErrUserNotFound
		}
		logger.Error("Failed to fetch user for deletion", err, map[string]interface{}{
			"target_id": targetID,
		})
		return err
	}

	if d := policy.CanDeleteUser(actor, target); !d.Allowed {
		logger.Warn("User deletion denied by policy", map[string]interface{}{
			"actor_id":  actor.ID,
			"target_id": targetID,
			"reason":    d.Reason,
		})
		return &PolicyDeniedError{Reason: d.Reason}
	}

	if err := s.userRepo.DeleteWithOwnedData(targetID); err != nil {
		logger.Error("Failed to delete user", err, map[string]interface{}{
			"target_id": targetID,
		})
		return err
	}

	logger.Info("User deleted successfully", map[string]interface{}{
		"actor_id":  actor.ID,
		"target_id": targetID,
	})
	return nil
}
