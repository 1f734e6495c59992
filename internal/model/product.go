package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a bookable event package in the catalog.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	Category    string          `json:"category" gorm:"size:100;index"`
	ImagePath   string          `json:"imagePath,omitempty" gorm:"size:512"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
