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

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	brandRepo := repository.NewBrandRepository(testDB)
	productService := NewProductService(productRepo, brandRepo)

	testDB.Create(&model.Brand{Name: "Samsung"})

	return productService, testDB
}

func validProductInput() ProductInput {
	return ProductInput{
		ID:            "galaxy-tab-s9",
		Brand:         "Samsung",
		Category:      "tablets",
		Title:         "Galaxy Tab S9",
		Description:   "11-inch tablet",
		Price:         59990,
		StockQuantity: 8,
		Memory:        "256GB",
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	product, err := productService.CreateProduct(validProductInput())
	require.NoError(t, err)
	assert.Equal(t, "galaxy-tab-s9", product.ID)
	assert.Equal(t, 8, product.StockQuantity)
	assert.Zero(t, product.Rating)
}

func TestProductService_CreateProduct_DuplicateID(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(validProductInput())
	require.NoError(t, err)

	product, err := productService.CreateProduct(validProductInput())
	assert.ErrorIs(t, err, ErrProductAlreadyExists)
	assert.Nil(t, product)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr error
	}{
		{
			name:    "zero price",
			mutate:  func(in *ProductInput) { in.Price = 0 },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative price",
			mutate:  func(in *ProductInput) { in.Price = -10 },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative stock",
			mutate:  func(in *ProductInput) { in.StockQuantity = -1 },
			wantErr: ErrInvalidStock,
		},
		{
			name:    "unknown brand",
			mutate:  func(in *ProductInput) { in.Brand = "Nokia" },
			wantErr: ErrBrandNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validProductInput()
			tt.mutate(&input)

			product, err := productService.CreateProduct(input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, product)
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(validProductInput())
	require.NoError(t, err)

	input := validProductInput()
	input.Price = 49990
	input.StockQuantity = 3

	product, err := productService.UpdateProduct("galaxy-tab-s9", input)
	require.NoError(t, err)
	assert.Equal(t, 49990.0, product.Price)
	assert.Equal(t, 3, product.StockQuantity)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	product, err := productService.UpdateProduct("ghost", validProductInput())
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(validProductInput())
	require.NoError(t, err)

	require.NoError(t, productService.DeleteProduct("galaxy-tab-s9"))

	_, err = productService.GetProductByID("galaxy-tab-s9")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	err := productService.DeleteProduct("ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_GetProducts_FilterAndSort(t *testing.T) {
	productService, testDB := setupProductServiceTest(t)

	products := []model.Product{
		{ID: "p-cheap", Brand: "Samsung", Category: "smartphones", Title: "Cheap", Price: 100, StockQuantity: 1},
		{ID: "p-mid", Brand: "Samsung", Category: "smartphones", Title: "Mid", Price: 500, StockQuantity: 1},
		{ID: "p-expensive", Brand: "Samsung", Category: "laptops", Title: "Expensive", Price: 1000, StockQuantity: 1},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	phones, err := productService.GetProducts(repository.ProductFilter{Category: "smartphones"})
	require.NoError(t, err)
	assert.Len(t, phones, 2)

	min := 200.0
	expensive, err := productService.GetProducts(repository.ProductFilter{PriceGTE: &min})
	require.NoError(t, err)
	assert.Len(t, expensive, 2)

	sorted, err := productService.GetProducts(repository.ProductFilter{SortPrice: "desc"})
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "p-expensive", sorted[0].ID)
	assert.Equal(t, "p-cheap", sorted[2].ID)
}

func TestProductService_ExportCatalog(t *testing.T) {
	productService, _ := setupProductServiceTest(t)

	_, err := productService.CreateProduct(validProductInput())
	require.NoError(t, err)

	f, err := productService.ExportCatalog()
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Catalog", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	id, err := f.GetCellValue("Catalog", "A2")
	require.NoError(t, err)
	assert.Equal(t, "galaxy-tab-s9", id)

	title, err := f.GetCellValue("Catalog", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Galaxy Tab S9", title)
}
