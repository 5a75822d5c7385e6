package service

import (
	"testing"
	"time"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/policy"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/internal/db"
	"github.com/avoronov/techstore-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, "test-secret", time.Hour)

	return authService, testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("newuser", "password123", "new@example.com", "+70000000000", model.RoleUser)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "newuser", user.Login)
	assert.Equal(t, model.RoleUser, user.Role)

	// The stored hash must verify against the original password
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, util.VerifyPassword(user.PasswordHash, "password123"))
}

func TestAuthService_Register_DuplicateLogin(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("taken", "password123", "first@example.com", "", model.RoleUser)
	require.NoError(t, err)

	user, err := authService.Register("taken", "password456", "second@example.com", "", model.RoleUser)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("first", "password123", "shared@example.com", "", model.RoleUser)
	require.NoError(t, err)

	user, err := authService.Register("second", "password456", "shared@example.com", "", model.RoleUser)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Nil(t, user)
}

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("plain", "password123", "plain@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("loginuser", "password123", "login@example.com", "", model.RoleUser)
	require.NoError(t, err)

	user, token, err := authService.Login("loginuser", "password123")
	require.NoError(t, err)
	assert.Equal(t, "loginuser", user.Login)
	assert.NotEmpty(t, token)

	claims, err := util.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "loginuser", claims.Login)
	assert.Equal(t, string(model.RoleUser), claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("loginuser", "password123", "login@example.com", "", model.RoleUser)
	require.NoError(t, err)

	user, token, err := authService.Login("loginuser", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, token, err := authService.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthService_ListUsers(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("one", "password123", "one@example.com", "", model.RoleUser)
	require.NoError(t, err)
	_, err = authService.Register("two", "password123", "two@example.com", "", model.RoleAdmin)
	require.NoError(t, err)

	users, err := authService.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAuthService_DeleteUser(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "password123", "admin@example.com", "", model.RoleAdmin)
	require.NoError(t, err)
	target, err := authService.Register("victim", "password123", "victim@example.com", "", model.RoleUser)
	require.NoError(t, err)

	actor := policy.Identity{ID: admin.ID, Login: admin.Login, Role: admin.Role}
	err = authService.DeleteUser(actor, target.ID)
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.User{}).Where("id = ?", target.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAuthService_DeleteUser_RemovesOwnedData(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "password123", "admin@example.com", "", model.RoleAdmin)
	require.NoError(t, err)
	target, err := authService.Register("victim", "password123", "victim@example.com", "", model.RoleUser)
	require.NoError(t, err)

	testDB.Create(&model.Brand{Name: "Lenovo"})
	product := &model.Product{
		ID:            "thinkpad-x1",
		Brand:         "Lenovo",
		Category:      "laptops",
		Title:         "ThinkPad X1",
		Price:         149990,
		StockQuantity: 2,
	}
	testDB.Create(product)

	testDB.Create(&model.CartItem{UserID: target.ID, ProductID: product.ID, Quantity: 1})
	testDB.Create(&model.Rating{UserID: target.ID, ProductID: product.ID, Value: 5})
	testDB.Create(&model.FavoriteItem{UserID: target.ID, ProductID: product.ID})
	testDB.Create(&model.Comment{
		UserID:    target.ID,
		UserName:  target.Login,
		Body:      "nice laptop",
		Date:      time.Now().UTC(),
		ProductID: product.ID,
	})

	actor := policy.Identity{ID: admin.ID, Login: admin.Login, Role: admin.Role}
	require.NoError(t, authService.DeleteUser(actor, target.ID))

	for _, m := range []interface{}{&model.CartItem{}, &model.Rating{}, &model.FavoriteItem{}, &model.Comment{}} {
		var count int64
		testDB.Model(m).Where("user_id = ?", target.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	}
}

func TestAuthService_DeleteUser_SelfDeletionDenied(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "password123", "admin@example.com", "", model.RoleAdmin)
	require.NoError(t, err)

	actor := policy.Identity{ID: admin.ID, Login: admin.Login, Role: admin.Role}
	err = authService.DeleteUser(actor, admin.ID)
	assert.ErrorIs(t, err, ErrPolicyDenied)

	var denied *PolicyDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, policy.ReasonSelfDeletion, denied.Reason)

	var count int64
	testDB.Model(&model.User{}).Where("id = ?", admin.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_DeleteUser_ProtectedAdmin(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "password123", "admin@example.com", "", model.RoleAdmin)
	require.NoError(t, err)
	otherAdmin, err := authService.Register("admin2", "password123", "admin2@example.com", "", model.RoleAdmin)
	require.NoError(t, err)

	actor := policy.Identity{ID: admin.ID, Login: admin.Login, Role: admin.Role}
	err = authService.DeleteUser(actor, otherAdmin.ID)
	assert.ErrorIs(t, err, ErrPolicyDenied)

	var denied *PolicyDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, policy.ReasonProtectedAdmin, denied.Reason)
}

func TestAuthService_DeleteUser_NotFound(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	admin, err := authService.Register("admin", "password123", "admin@example.com", "", model.RoleAdmin)
	require.NoError(t, err)

	actor := policy.Identity{ID: admin.ID, Login: admin.Login, Role: admin.Role}
	err = authService.DeleteUser(actor, 99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
