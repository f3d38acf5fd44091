// Package seed holds the fixed default dataset used to initialize an empty
// store and as the degraded fallback when the store cannot be read at all.
package seed

import (
	"time"

	"curryleaf-backend/internal/models"
)

// Seeded items carry fixed ids so repeated seeding of an emptied store stays
// deterministic.
var baseTime = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func DefaultMenuItems() []models.MenuItem {
	items := []models.MenuItem{
		{ID: "tiffin-1705309200001", Name: "Idli Sambar", Description: "Steamed rice cakes served with sambar and coconut chutney.", Price: 7.99, Category: models.CategoryTiffin, IsPopular: true},
		{ID: "tiffin-1705309200002", Name: "Masala Dosa", Description: "Crispy rice crepe filled with spiced potato masala.", Price: 9.99, Category: models.CategoryTiffin, IsPopular: true},
		{ID: "tiffin-1705309200003", Name: "Medu Vada", Description: "Fried lentil doughnuts with sambar and chutney.", Price: 7.49, Category: models.CategoryTiffin},
		{ID: "curries-1705309200004", Name: "Butter Chicken", Description: "Tandoori chicken simmered in a creamy tomato gravy.", Price: 13.99, Category: models.CategoryCurries, IsPopular: true},
		{ID: "curries-1705309200005", Name: "Palak Paneer", Description: "Cottage cheese cubes in a spinach and garlic sauce.", Price: 12.49, Category: models.CategoryCurries},
		{ID: "curries-1705309200006", Name: "Chana Masala", Description: "Chickpeas cooked with onion, tomato and garam masala.", Price: 11.49, Category: models.CategoryCurries},
		{ID: "biryani-1705309200007", Name: "Hyderabadi Chicken Biryani", Description: "Basmati rice layered with marinated chicken and saffron.", Price: 14.99, Category: models.CategoryBiryani, IsPopular: true},
		{ID: "biryani-1705309200008", Name: "Vegetable Biryani", Description: "Fragrant basmati rice with seasonal vegetables and mint.", Price: 12.99, Category: models.CategoryBiryani},
		{ID: "breads-1705309200009", Name: "Garlic Naan", Description: "Leavened flatbread brushed with garlic butter.", Price: 3.49, Category: models.CategoryBreads},
		{ID: "breads-1705309200010", Name: "Tandoori Roti", Description: "Whole wheat flatbread baked in the tandoor.", Price: 2.99, Category: models.CategoryBreads},
		{ID: "appetizers-1705309200011", Name: "Samosa", Description: "Pastry triangles stuffed with spiced potatoes and peas.", Price: 5.99, Category: models.CategoryAppetizers, IsPopular: true},
		{ID: "appetizers-1705309200012", Name: "Chicken 65", Description: "Spicy deep-fried chicken with curry leaves.", Price: 10.99, Category: models.CategoryAppetizers},
		{ID: "desserts-1705309200013", Name: "Gulab Jamun", Description: "Milk dumplings soaked in rose-scented syrup.", Price: 4.99, Category: models.CategoryDesserts},
		{ID: "beverages-1705309200014", Name: "Mango Lassi", Description: "Yogurt smoothie blended with Alphonso mango.", Price: 4.49, Category: models.CategoryBeverages},
		{ID: "beverages-1705309200015", Name: "Masala Chai", Description: "Spiced black tea brewed with milk.", Price: 2.99, Category: models.CategoryBeverages},
	}
	for i := range items {
		items[i].IsAvailable = true
		items[i].CreatedAt = baseTime
		items[i].UpdatedAt = baseTime
	}
	return items
}

func DefaultBuffetSettings() models.BuffetSettings {
	return models.BuffetSettings{
		ID:          1,
		Price:       15.99,
		Hours:       "12:00 PM - 3:00 PM",
		Description: "Saturday lunch buffet with rotating curries, biryani, tiffin favorites and dessert.",
		IsActive:    true,
		UpdatedAt:   baseTime,
	}
}

func DefaultRestaurantInfo() models.RestaurantInfo {
	return models.RestaurantInfo{
		ID:             1,
		Name:           "Curry Leaf Kitchen",
		Address:        "412 Maple Avenue, Springfield, IL 62704",
		Phone:          "(217) 555-0148",
		Email:          "hello@curryleafkitchen.com",
		Website:        "https://curryleafkitchen.com",
		Description:    "Family-run South Indian kitchen serving tiffin, curries and dum biryani.",
		HoursMonday:    "Closed",
		HoursTuesday:   "11:00 AM - 9:00 PM",
		HoursWednesday: "11:00 AM - 9:00 PM",
		HoursThursday:  "11:00 AM - 9:00 PM",
		HoursFriday:    "11:00 AM - 10:00 PM",
		HoursSaturday:  "12:00 PM - 10:00 PM",
		HoursSunday:    "12:00 PM - 9:00 PM",
		UpdatedAt:      baseTime,
	}
}

// DefaultAggregate is both the one-time seed for an empty store and the
// degraded fallback returned when the store cannot be read.
func DefaultAggregate() *models.Aggregate {
	return &models.Aggregate{
		RestaurantInfo: DefaultRestaurantInfo(),
		Buffet:         DefaultBuffetSettings(),
		Categories:     models.MenuCategories(),
		MenuItems:      DefaultMenuItems(),
	}
}
