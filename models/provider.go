package models

// A food provider (restaurant, grocery store, …). Pre-populated by the
// seeding path; read-only for the dashboard.
type Provider struct {
	ProviderID int    `gorm:"column:provider_id;primaryKey" json:"provider_id"`
	Name       string `gorm:"not null" json:"name"`
	Type       string `json:"type"`
	Address    string `json:"address"`
	City       string `gorm:"index" json:"city"`
	Contact    string `json:"contact"`
}

func (Provider) TableName() string { return "providers" }
