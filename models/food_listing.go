package models

import "time"

// A surplus food listing posted by a provider. ProviderType and Location
// are copied from the provider when the listing is created and never
// resynchronized afterwards.
type FoodListing struct {
	FoodID       int        `gorm:"column:food_id;primaryKey" json:"food_id"`
	FoodName     string     `gorm:"column:food_name;not null" json:"food_name"`
	Quantity     int        `gorm:"not null" json:"quantity"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	ProviderID   int        `gorm:"index;not null" json:"provider_id"`
	ProviderType string     `json:"provider_type"`
	Location     string     `json:"location"`
	FoodType     string     `json:"food_type"`
	MealType     string     `json:"meal_type"`
}

func (FoodListing) TableName() string { return "food_listings" }
