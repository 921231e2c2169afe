package models

// An organization or individual that claims surplus food. Read-only.
type Receiver struct {
	ReceiverID int    `gorm:"column:receiver_id;primaryKey" json:"receiver_id"`
	Name       string `gorm:"not null" json:"name"`
	Type       string `json:"type"`
	City       string `gorm:"index" json:"city"`
	Contact    string `json:"contact"`
}

func (Receiver) TableName() string { return "receivers" }
