package middleware

import (
	"strings"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/policy"
	"github.com/avoronov/techstore-backend/internal/errors"
	appRedis "github.com/avoronov/techstore-backend/pkg/redis"
	"github.com/avoronov/techstore-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"net/http"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserLoginKey = "user_login"
	UserRoleKey  = "user_role"
	TokenKey     = "token"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// resolveIdentity extracts and verifies the bearer credential. Malformed,
// expired and absent credentials all resolve to "no identity"; the error
// distinguishes them only so the required-auth path can pick a 401 code.
func (m *AuthMiddleware) resolveIdentity(c *gin.Context) (policy.Identity, string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return policy.Identity{}, "", util.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Identity{}, "", util.ErrInvalidToken
	}

	token := parts[1]
	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		return policy.Identity{}, "", err
	}

	if appRedis.Enabled() {
		revoked, err := appRedis.IsTokenBlacklisted(c.Request.Context(), token)
		if err == nil && revoked {
			return policy.Identity{}, "", util.ErrInvalidToken
		}
	}

	return policy.Identity{
		ID:    claims.UserID,
		Login: claims.Login,
		Role:  model.UserRole(claims.Role),
	}, token, nil
}

// Authenticate validates the bearer token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		identity, token, err := m.resolveIdentity(c)
		if err != nil {
			log.Warn("Authentication failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Missing or invalid credential")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.ID)
		c.Set(UserLoginKey, identity.Login)
		c.Set(UserRoleKey, identity.Role)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": identity.ID,
			"login":   identity.Login,
			"role":    identity.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate resolves the bearer token if one is present.
// Missing, malformed or expired tokens leave the request anonymous
// instead of failing it.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		identity, token, err := m.resolveIdentity(c)
		if err != nil {
			log.Debug("No valid credential - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		c.Set(UserIDKey, identity.ID)
		c.Set(UserLoginKey, identity.Login)
		c.Set(UserRoleKey, identity.Role)
		c.Set(TokenKey, token)

		c.Next()
	}
}

// RequireRole checks if the authenticated user has one of the given roles
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userRole, exists := c.Get(UserRoleKey)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information not found")
			c.Abort()
			return
		}

		role := userRole.(model.UserRole)
		for _, r := range roles {
			if role == model.UserRole(r) {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "Access denied")
		c.Abort()
	}
}

// RequireCatalogWrite gates product and brand mutations on the catalog
// write policy.
func (m *AuthMiddleware) RequireCatalogWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetIdentity(c)
		if d := policy.CanWriteCatalog(actor); !d.Allowed {
			log := GetLoggerFromContext(c)
			log.Warn("Catalog write denied by policy", map[string]interface{}{
				"user_id": actor.ID,
				"role":    actor.Role,
				"path":    c.Request.URL.Path,
				"reason":  d.Reason,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Only administrators can modify the catalog")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetIdentity builds the policy identity from context. The zero identity
// means the request is anonymous.
func GetIdentity(c *gin.Context) policy.Identity {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return policy.Identity{}
	}

	identity := policy.Identity{ID: userID.(uint)}
	if login, ok := c.Get(UserLoginKey); ok {
		identity.Login = login.(string)
	}
	if role, ok := c.Get(UserRoleKey); ok {
		identity.Role = role.(model.UserRole)
	}
	return identity
}

// GetToken extracts the raw bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}
