package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"razzrel/internal/cache"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const (
	catalogCacheKey = "products:all"
	catalogCacheTTL = time.Minute
)

// ProductInput carries the editable catalog fields.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImagePath   string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if in.Price.IsNegative() {
		return apperrors.NewValidationError("price must not be negative")
	}
	return nil
}

// ProductService manages the package catalog.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product := &model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImagePath:   in.ImagePath,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	if in.ImagePath != "" {
		product.ImagePath = in.ImagePath
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return product, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List serves the catalog from cache when possible.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	var cached []model.Product
	if s.cache.GetJSON(ctx, catalogCacheKey, &cached) {
		return cached, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, catalogCacheKey, products, catalogCacheTTL)
	return products, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n == 0 {
		return apperrors.ErrProductNotFound
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return nil
}
