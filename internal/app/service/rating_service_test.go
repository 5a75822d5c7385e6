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

func setupRatingServiceTest(t *testing.T) (RatingService, *gorm.DB, *model.User, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	ratingRepo := repository.NewRatingRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	ratingService := NewRatingService(ratingRepo, productRepo)

	alice := &model.User{
		Login:        "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(alice)

	bob := &model.User{
		Login:        "bob",
		Email:        "bob@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(bob)

	testDB.Create(&model.Brand{Name: "Xiaomi"})

	product := &model.Product{
		ID:            "redmi-note-13",
		Brand:         "Xiaomi",
		Category:      "smartphones",
		Title:         "Redmi Note 13",
		Price:         24990,
		StockQuantity: 20,
	}
	testDB.Create(product)

	return ratingService, testDB, alice, bob, product
}

func TestRatingService_Rate_AveragesAcrossUsers(t *testing.T) {
	ratingService, _, alice, bob, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 4)
	require.NoError(t, err)

	rating, err := ratingService.Rate(bob.ID, product.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 3.0, rating.Average)
	assert.Equal(t, int64(2), rating.Count)
	require.NotNil(t, rating.UserRating)
	assert.Equal(t, 2, *rating.UserRating)
}

func TestRatingService_Rate_RerateOverwrites(t *testing.T) {
	ratingService, testDB, alice, bob, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 4)
	require.NoError(t, err)
	_, err = ratingService.Rate(bob.ID, product.ID, 2)
	require.NoError(t, err)

	// Alice changes her mind: count stays at 2, average moves
	rating, err := ratingService.Rate(alice.ID, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, rating.Average)
	assert.Equal(t, int64(2), rating.Count)

	var rows int64
	testDB.Model(&model.Rating{}).Where("product_id = ?", product.ID).Count(&rows)
	assert.Equal(t, int64(2), rows)
}

func TestRatingService_Rate_RepeatIsIdempotent(t *testing.T) {
	ratingService, _, alice, _, product := setupRatingServiceTest(t)

	first, err := ratingService.Rate(alice.ID, product.ID, 3)
	require.NoError(t, err)

	second, err := ratingService.Rate(alice.ID, product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.Average, second.Average)
	assert.Equal(t, first.Count, second.Count)
}

func TestRatingService_Rate_RoundsToOneDecimal(t *testing.T) {
	ratingService, testDB, alice, bob, product := setupRatingServiceTest(t)

	carol := &model.User{
		Login:        "carol",
		Email:        "carol@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(carol)

	_, err := ratingService.Rate(alice.ID, product.ID, 5)
	require.NoError(t, err)
	_, err = ratingService.Rate(bob.ID, product.ID, 5)
	require.NoError(t, err)

	// (5+5+4)/3 = 4.666... -> 4.7
	rating, err := ratingService.Rate(carol.ID, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.7, rating.Average)
	assert.Equal(t, int64(3), rating.Count)
}

func TestRatingService_Rate_OutOfRange(t *testing.T) {
	ratingService, _, alice, _, product := setupRatingServiceTest(t)

	for _, value := range []int{0, -1, 6, 100} {
		rating, err := ratingService.Rate(alice.ID, product.ID, value)
		assert.ErrorIs(t, err, ErrInvalidRating, "value %d", value)
		assert.Nil(t, rating)
	}
}

func TestRatingService_Rate_UnknownProduct(t *testing.T) {
	ratingService, _, alice, _, _ := setupRatingServiceTest(t)

	rating, err := ratingService.Rate(alice.ID, "no-such-product", 4)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, rating)
}

func TestRatingService_Rate_RefreshesProductColumn(t *testing.T) {
	ratingService, testDB, alice, bob, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 5)
	require.NoError(t, err)
	_, err = ratingService.Rate(bob.ID, product.ID, 4)
	require.NoError(t, err)

	var updated model.Product
	require.NoError(t, testDB.Where("id = ?", product.ID).First(&updated).Error)
	assert.Equal(t, 4.5, updated.Rating)
}

func TestRatingService_GetProductRating_Anonymous(t *testing.T) {
	ratingService, _, alice, _, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 4)
	require.NoError(t, err)

	rating, err := ratingService.GetProductRating(product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating.Average)
	assert.Equal(t, int64(1), rating.Count)
	assert.Nil(t, rating.UserRating)
}

func TestRatingService_GetProductRating_WithOwnScore(t *testing.T) {
	ratingService, _, alice, bob, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 5)
	require.NoError(t, err)
	_, err = ratingService.Rate(bob.ID, product.ID, 2)
	require.NoError(t, err)

	rating, err := ratingService.GetProductRating(product.ID, &bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, rating.Average)
	require.NotNil(t, rating.UserRating)
	assert.Equal(t, 2, *rating.UserRating)
}

func TestRatingService_GetProductRating_UserWithoutScore(t *testing.T) {
	ratingService, _, alice, bob, product := setupRatingServiceTest(t)

	_, err := ratingService.Rate(alice.ID, product.ID, 3)
	require.NoError(t, err)

	rating, err := ratingService.GetProductRating(product.ID, &bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rating.Average)
	assert.Nil(t, rating.UserRating)
}

func TestRatingService_GetProductRating_NoRatings(t *testing.T) {
	ratingService, _, _, _, product := setupRatingServiceTest(t)

	rating, err := ratingService.GetProductRating(product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating.Average)
	assert.Equal(t, int64(0), rating.Count)
	assert.Nil(t, rating.UserRating)
}
