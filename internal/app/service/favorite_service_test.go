package service

import (
	"testing"

	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/app/repository"
	"github.com/avoronov/techstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, productRepo)

	user := &model.User{
		Login:        "collector",
		Email:        "collector@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	testDB.Create(&model.Brand{Name: "Asus"})

	product := &model.Product{
		ID:            "rog-strix-g16",
		Brand:         "Asus",
		Category:      "laptops",
		Title:         "ROG Strix G16",
		Price:         189990,
		StockQuantity: 4,
	}
	testDB.Create(product)

	return favoriteService, testDB, user, product
}

func TestFavoriteService_AddAndList(t *testing.T) {
	favoriteService, _, user, product := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddToFavorites(user.ID, product.ID))

	items, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, product.Title, items[0].Product.Title)
}

func TestFavoriteService_Add_Idempotent(t *testing.T) {
	favoriteService, _, user, product := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddToFavorites(user.ID, product.ID))
	require.NoError(t, favoriteService.AddToFavorites(user.ID, product.ID))

	items, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFavoriteService_Add_UnknownProduct(t *testing.T) {
	favoriteService, _, user, _ := setupFavoriteServiceTest(t)

	err := favoriteService.AddToFavorites(user.ID, "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoriteService_Remove(t *testing.T) {
	favoriteService, _, user, product := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddToFavorites(user.ID, product.ID))
	require.NoError(t, favoriteService.RemoveFromFavorites(user.ID, product.ID))

	items, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestFavoriteService_Remove_MissingIsNoop(t *testing.T) {
	favoriteService, _, user, product := setupFavoriteServiceTest(t)

	assert.NoError(t, favoriteService.RemoveFromFavorites(user.ID, product.ID))
}
