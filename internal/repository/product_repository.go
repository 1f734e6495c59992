package repository

import (
	"context"

	"gorm.io/gorm"

	"razzrel/internal/model"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update saves all columns of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName finds a product by its exact name.
func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List lists the whole catalog.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Delete removes a product and returns the number of rows removed.
func (r *productRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	return res.RowsAffected, res.Error
}
