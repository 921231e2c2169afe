package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"

	"gorm.io/gorm"
)

// ErrProviderNotFound is returned when an insert names a provider id that
// does not exist.
var ErrProviderNotFound = errors.New("provider not found")

// ErrListingNotFound is returned by update/delete for an unknown food id.
var ErrListingNotFound = errors.New("food listing not found")

// DependentClaimsError rejects a delete of a listing that claims still
// reference. Business-rule rejection, not a storage failure.
type DependentClaimsError struct {
	FoodID int `json:"food_id"`
	Count  int `json:"count"`
}

func (e *DependentClaimsError) Error() string {
	return fmt.Sprintf("cannot delete listing %d: %d dependent claims", e.FoodID, e.Count)
}

// ListingService is the sole write path of the system. Every successful
// write invalidates the snapshot cache and broadcasts a change event; the
// report engine only observes the change through the next Load.
type ListingService struct {
	db   *gorm.DB
	snap *SnapshotService
	hub  *RealtimeHub
}

func NewListingService(db *gorm.DB, snap *SnapshotService, hub *RealtimeHub) *ListingService {
	return &ListingService{db: db, snap: snap, hub: hub}
}

type NewListingInput struct {
	FoodName   string     `json:"food_name"`
	Quantity   int        `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date"`
	ProviderID int        `json:"provider_id"`
	FoodType   string     `json:"food_type"`
	MealType   string     `json:"meal_type"`
}

// Insert assigns the next food id (max+1, 1 when the table is empty — a
// single-writer scheme), copies the provider's type and city onto the
// listing, and persists it.
func (s *ListingService) Insert(ctx context.Context, in NewListingInput) (*models.FoodListing, error) {
	var provider models.Provider
	if err := s.db.WithContext(ctx).First(&provider, "provider_id = ?", in.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	var maxID int
	if err := s.db.WithContext(ctx).
		Model(&models.FoodListing{}).
		Select("COALESCE(MAX(food_id), 0)").
		Scan(&maxID).Error; err != nil {
		return nil, err
	}

	listing := models.FoodListing{
		FoodID:       maxID + 1,
		FoodName:     in.FoodName,
		Quantity:     in.Quantity,
		ExpiryDate:   in.ExpiryDate,
		ProviderID:   provider.ProviderID,
		ProviderType: provider.Type,
		Location:     provider.City,
		FoodType:     in.FoodType,
		MealType:     in.MealType,
	}
	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, err
	}

	s.changed("listing.created", listing.FoodID)
	return &listing, nil
}

type UpdateListingInput struct {
	FoodName   string     `json:"food_name"`
	Quantity   int        `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date"`
	FoodType   string     `json:"food_type"`
	MealType   string     `json:"meal_type"`
}

// Update rewrites the mutable fields of a listing. The id, provider and
// location stay as they were at insert time.
func (s *ListingService) Update(ctx context.Context, foodID int, in UpdateListingInput) (*models.FoodListing, error) {
	var listing models.FoodListing
	if err := s.db.WithContext(ctx).First(&listing, "food_id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	listing.FoodName = in.FoodName
	listing.Quantity = in.Quantity
	listing.ExpiryDate = in.ExpiryDate
	listing.FoodType = in.FoodType
	listing.MealType = in.MealType
	if err := s.db.WithContext(ctx).Save(&listing).Error; err != nil {
		return nil, err
	}

	s.changed("listing.updated", foodID)
	return &listing, nil
}

// Delete removes a listing, refusing with a DependentClaimsError when any
// claim still references it.
func (s *ListingService) Delete(ctx context.Context, foodID int) error {
	var claims int64
	if err := s.db.WithContext(ctx).
		Model(&models.Claim{}).
		Where("food_id = ?", foodID).
		Count(&claims).Error; err != nil {
		return err
	}
	if claims > 0 {
		return &DependentClaimsError{FoodID: foodID, Count: int(claims)}
	}

	res := s.db.WithContext(ctx).Delete(&models.FoodListing{}, "food_id = ?", foodID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrListingNotFound
	}

	s.changed("listing.deleted", foodID)
	return nil
}

// Filter narrows a snapshot's listings by location, food type and meal
// type. An empty value or "All" leaves that dimension unconstrained.
func (s *ListingService) Filter(snap *Snapshot, location, foodType, mealType string) []models.FoodListing {
	match := func(want, got string) bool {
		return want == "" || want == "All" || want == got
	}
	out := []models.FoodListing{}
	for _, l := range snap.Listings {
		if match(location, l.Location) && match(foodType, l.FoodType) && match(mealType, l.MealType) {
			out = append(out, l)
		}
	}
	return out
}

func (s *ListingService) changed(event string, foodID int) {
	s.snap.Invalidate()
	if s.hub != nil {
		s.hub.Broadcast(map[string]any{"kind": event, "food_id": foodID})
	}
}
