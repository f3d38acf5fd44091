package models

import "time"

// Fixed menu categories. Every MenuItem.Category must be one of these.
const (
	CategoryTiffin     = "Tiffin"
	CategoryCurries    = "Curries"
	CategoryBiryani    = "Biryani"
	CategoryBreads     = "Breads"
	CategoryAppetizers = "Appetizers"
	CategoryDesserts   = "Desserts"
	CategoryBeverages  = "Beverages"
)

func MenuCategories() []string {
	return []string{
		CategoryTiffin,
		CategoryCurries,
		CategoryBiryani,
		CategoryBreads,
		CategoryAppetizers,
		CategoryDesserts,
		CategoryBeverages,
	}
}

func IsValidCategory(category string) bool {
	for _, c := range MenuCategories() {
		if c == category {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `gorm:"size:30;not null;index" json:"category"`
	IsPopular   bool      `gorm:"not null;default:false" json:"is_popular"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
