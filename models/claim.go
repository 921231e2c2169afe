package models

import "time"

// Claim statuses.
const (
	ClaimPending   = "Pending"
	ClaimCompleted = "Completed"
	ClaimCancelled = "Cancelled"
)

// A receiver's claim on a food listing. Timestamp is nil when the stored
// value could not be parsed.
type Claim struct {
	ClaimID    int        `gorm:"column:claim_id;primaryKey" json:"claim_id"`
	FoodID     int        `gorm:"index;not null" json:"food_id"`
	ReceiverID int        `gorm:"index;not null" json:"receiver_id"`
	Status     string     `json:"status"`
	Timestamp  *time.Time `json:"timestamp"`
}

func (Claim) TableName() string { return "claims" }
