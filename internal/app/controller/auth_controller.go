package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/policy"
	"github.com/avoronov/techstore-backend/internal/app/service"
	apperrors "github.com/avoronov/techstore-backend/internal/errors"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"login": user.Login,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}

// respondPolicyDenied maps a policy denial to a 403 with the reason as a
// stable error code.
func respondPolicyDenied(c *gin.Context, err error) bool {
	var denied *service.PolicyDeniedError
	if !errors.As(err, &denied) {
		return false
	}

	code := apperrors.AuthzForbidden
	message := "Access denied"
	switch denied.Reason {
	case policy.ReasonSelfDeletion:
		code = apperrors.AuthzSelfDeletion
		message = "You cannot delete your own account"
	case policy.ReasonProtectedAdmin:
		code = apperrors.AuthzProtectedAdmin
		message = "Administrator accounts cannot be deleted"
	case policy.ReasonNotOwner:
		code = apperrors.AuthzOwnerOnly
		message = "Only the owner can modify this resource"
	}

	apperrors.RespondWithError(c, http.StatusForbidden, code, message)
	return true
}

// Register handles user registration
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	log.Debug("Processing registration", map[string]interface{}{
		"login": req.Login,
		"email": req.Email,
	})

	user, err := ctrl.authService.Register(req.Login, req.Password, req.Email, req.Phone, model.RoleUser)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			log.Warn("Registration failed: login or email already exists", map[string]interface{}{
				"login": req.Login,
			})
			apperrors.Conflict(c, apperrors.AuthLoginExists, "This login or email is already in use")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"login": req.Login,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userResponse(user),
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Login and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"login": req.Login,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid login or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"login": req.Login,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
		"token":   token,
	})
}

// Logout revokes the current session token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		// Logout always succeeds from the user's perspective
		log.Error("Failed to revoke token during logout", err)
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetMe returns current user information derived from the token
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity.ID == 0 {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    identity.ID,
			"login": identity.Login,
			"role":  identity.Role,
		},
	})
}

// ListUsers returns all registered users
// GET /api/v1/users (admin)
func (ctrl *AuthController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.authService.ListUsers()
	if err != nil {
		log.Error("Failed to list users", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// DeleteUser removes a user account and all data it owns
// DELETE /api/v1/users/:id (admin)
func (ctrl *AuthController) DeleteUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user id")
		return
	}

	actor := middleware.GetIdentity(c)
	if err := ctrl.authService.DeleteUser(actor, uint(targetID)); err != nil {
		if respondPolicyDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Failed to delete user", err, map[string]interface{}{
			"target_id": targetID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
