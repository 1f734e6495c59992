package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
)

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     ProductInput
		setupMock func(*MockProductRepository)
		wantErr   bool
	}{
		{
			name:  "valid package",
			input: ProductInput{Name: "Gold Wedding", Price: decimal.RequireFromString("1500.00"), Category: "wedding"},
			setupMock: func(m *MockProductRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
			},
		},
		{
			name:      "missing name",
			input:     ProductInput{Price: decimal.NewFromInt(10)},
			setupMock: func(*MockProductRepository) {},
			wantErr:   true,
		},
		{
			name:      "negative price",
			input:     ProductInput{Name: "Broken", Price: decimal.NewFromInt(-1)},
			setupMock: func(*MockProductRepository) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			tt.setupMock(mockRepo)
			svc := NewProductService(mockRepo, nil)

			product, err := svc.Create(context.Background(), tt.input)

			if tt.wantErr {
				var validationErr *apperrors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Nil(t, product)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.input.Price.Equal(product.Price))
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_UpdateKeepsImageWhenOmitted(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Product{ID: 3, Name: "Old", ImagePath: "/img/old.png"}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)
	svc := NewProductService(mockRepo, nil)

	product, err := svc.Update(context.Background(), 3, ProductInput{Name: "New", Price: decimal.NewFromInt(5)})

	require.NoError(t, err)
	assert.Equal(t, "New", product.Name)
	assert.Equal(t, "/img/old.png", product.ImagePath)
	mockRepo.AssertExpectations(t)
}

func TestProductService_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Delete", mock.Anything, uint(4)).Return(int64(0), nil)
	svc := NewProductService(mockRepo, nil)

	_, err := svc.Get(context.Background(), 4)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), 4), apperrors.ErrProductNotFound)
}

func TestProductService_ListWithoutCache(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Product{{ID: 1}, {ID: 2}}, nil).Twice()
	svc := NewProductService(mockRepo, nil)

	for i := 0; i < 2; i++ {
		products, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	}
	mockRepo.AssertExpectations(t)
}
