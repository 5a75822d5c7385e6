package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

func setupMiddlewareTest() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	middleware := NewAuthMiddleware(testJWTSecret)
	return router, middleware
}

func generateTestToken(t *testing.T, userID uint, login, role string) string {
	token, err := util.GenerateToken(userID, login, role, testJWTSecret, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token := generateTestToken(t, 1, "tester", "user")

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": identity.ID,
			"login":   identity.Login,
			"role":    identity.Role,
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tester")
}

func TestAuthMiddleware_Authenticate_NoToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestAuthMiddleware_Authenticate_InvalidFormat(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "Missing Bearer prefix",
			header: "invalid-token",
		},
		{
			name:   "Wrong prefix",
			header: "Basic token123",
		},
		{
			name:   "Empty token",
			header: "Bearer ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestAuthMiddleware_Authenticate_ExpiredToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token, err := util.GenerateToken(1, "tester", "user", testJWTSecret, -time.Minute)
	require.NoError(t, err)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestAuthMiddleware_Authenticate_WrongSecret(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token, err := util.GenerateToken(1, "tester", "user", "another-secret", 15*time.Minute)
	require.NoError(t, err)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_OptionalAuthenticate_NoToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.GET("/test", authMiddleware.OptionalAuthenticate(), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"anonymous": identity.Anonymous(),
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// No credential still reaches the handler, just anonymously
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestAuthMiddleware_OptionalAuthenticate_GarbageToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.GET("/test", authMiddleware.OptionalAuthenticate(), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"anonymous": identity.Anonymous(),
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestAuthMiddleware_OptionalAuthenticate_ValidToken(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token := generateTestToken(t, 7, "known", "user")

	router.GET("/test", authMiddleware.OptionalAuthenticate(), func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"anonymous": identity.Anonymous(),
			"user_id":   identity.ID,
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":false`)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddleware_RequireRole_Allowed(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token := generateTestToken(t, 1, "admin", string(model.RoleAdmin))

	router.GET("/admin",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(string(model.RoleAdmin)),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		},
	)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RequireCatalogWrite(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	router.POST("/catalog",
		authMiddleware.Authenticate(),
		authMiddleware.RequireCatalogWrite(),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		},
	)

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{
			name:       "admin allowed",
			role:       string(model.RoleAdmin),
			wantStatus: http.StatusOK,
		},
		{
			name:       "plain user denied",
			role:       string(model.RoleUser),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := generateTestToken(t, 1, "actor", tt.role)

			req := httptest.NewRequest("POST", "/catalog", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "AUTHZ_ADMIN_ONLY")
			}
		})
	}
}

func TestAuthMiddleware_RequireRole_Denied(t *testing.T) {
	router, authMiddleware := setupMiddlewareTest()

	token := generateTestToken(t, 1, "plain", string(model.RoleUser))

	router.GET("/admin",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(string(model.RoleAdmin)),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		},
	)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
