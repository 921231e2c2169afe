package services

import (
	"context"
	"testing"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newListingFixture(t *testing.T) (*gorm.DB, *SnapshotService, *ListingService) {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Provider{
		ProviderID: 1, Name: "Bakery One", Type: "Bakery", City: "Chennai",
	}).Error)

	snap := NewSnapshotService(db, time.Hour)
	svc := NewListingService(db, snap, nil)
	return db, snap, svc
}

func TestInsertAssignsFirstID(t *testing.T) {
	_, _, svc := newListingFixture(t)

	listing, err := svc.Insert(context.Background(), NewListingInput{
		FoodName: "Bread", Quantity: 5, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, FoodType: "Vegetarian", MealType: "Breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.FoodID, "empty table starts at 1")
}

func TestInsertAssignsMaxPlusOne(t *testing.T) {
	db, _, svc := newListingFixture(t)
	require.NoError(t, db.Create(&models.FoodListing{
		FoodID: 7, FoodName: "Rice", Quantity: 3, ProviderID: 1,
		ProviderType: "Bakery", Location: "Chennai", FoodType: "Vegan", MealType: "Lunch",
	}).Error)

	listing, err := svc.Insert(context.Background(), NewListingInput{
		FoodName: "Bread", Quantity: 5, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, FoodType: "Vegetarian", MealType: "Breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, listing.FoodID)
}

func TestInsertDenormalizesProvider(t *testing.T) {
	_, _, svc := newListingFixture(t)

	listing, err := svc.Insert(context.Background(), NewListingInput{
		FoodName: "Bread", Quantity: 5, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, FoodType: "Vegetarian", MealType: "Breakfast",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bakery", listing.ProviderType)
	assert.Equal(t, "Chennai", listing.Location)
}

func TestInsertUnknownProvider(t *testing.T) {
	_, _, svc := newListingFixture(t)

	_, err := svc.Insert(context.Background(), NewListingInput{
		FoodName: "Bread", Quantity: 5, ProviderID: 99,
		FoodType: "Vegetarian", MealType: "Breakfast",
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestInsertInvalidatesSnapshot(t *testing.T) {
	_, snap, svc := newListingFixture(t)

	before, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, before.Listings)

	_, err = svc.Insert(context.Background(), NewListingInput{
		FoodName: "Bread", Quantity: 5, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, FoodType: "Vegetarian", MealType: "Breakfast",
	})
	require.NoError(t, err)

	after, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	require.Len(t, after.Listings, 1)
	assert.Equal(t, "Bread", after.Listings[0].FoodName)
}

func TestUpdateRewritesMutableFieldsOnly(t *testing.T) {
	db, _, svc := newListingFixture(t)
	require.NoError(t, db.Create(&models.FoodListing{
		FoodID: 1, FoodName: "Bread", Quantity: 5, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, ProviderType: "Bakery", Location: "Chennai",
		FoodType: "Vegetarian", MealType: "Breakfast",
	}).Error)

	updated, err := svc.Update(context.Background(), 1, UpdateListingInput{
		FoodName: "Whole Grain Bread", Quantity: 2, ExpiryDate: datePtr(2025, 6, 5),
		FoodType: "Vegan", MealType: "Snacks",
	})
	require.NoError(t, err)

	assert.Equal(t, "Whole Grain Bread", updated.FoodName)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "Vegan", updated.FoodType)
	assert.Equal(t, "Snacks", updated.MealType)
	// provider association and denormalized copies stay put
	assert.Equal(t, 1, updated.ProviderID)
	assert.Equal(t, "Bakery", updated.ProviderType)
	assert.Equal(t, "Chennai", updated.Location)
}

func TestUpdateUnknownListing(t *testing.T) {
	_, _, svc := newListingFixture(t)
	_, err := svc.Update(context.Background(), 42, UpdateListingInput{FoodName: "X", Quantity: 1})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestDeleteRejectedWithDependentClaims(t *testing.T) {
	db, _, svc := newListingFixture(t)
	require.NoError(t, db.Create(&models.FoodListing{
		FoodID: 1, FoodName: "Bread", Quantity: 5, ProviderID: 1,
		ProviderType: "Bakery", Location: "Chennai", FoodType: "Vegetarian", MealType: "Breakfast",
	}).Error)
	require.NoError(t, db.Create(&models.Claim{ClaimID: 1, FoodID: 1, ReceiverID: 1, Status: models.ClaimPending}).Error)
	require.NoError(t, db.Create(&models.Claim{ClaimID: 2, FoodID: 1, ReceiverID: 2, Status: models.ClaimCompleted}).Error)

	err := svc.Delete(context.Background(), 1)
	var dep *DependentClaimsError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, 1, dep.FoodID)
	assert.Equal(t, 2, dep.Count)

	var remaining int64
	require.NoError(t, db.Model(&models.FoodListing{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining, "refused delete writes nothing")
}

func TestDeleteWithoutClaimsSucceeds(t *testing.T) {
	db, snap, svc := newListingFixture(t)
	require.NoError(t, db.Create(&models.FoodListing{
		FoodID: 1, FoodName: "Bread", Quantity: 5, ProviderID: 1,
		ProviderType: "Bakery", Location: "Chennai", FoodType: "Vegetarian", MealType: "Breakfast",
	}).Error)

	before, err := snap.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, before.Listings, 1)

	require.NoError(t, svc.Delete(context.Background(), 1))

	after, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, after.Listings, "next load observes the delete")
}

func TestDeleteUnknownListing(t *testing.T) {
	_, _, svc := newListingFixture(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrListingNotFound)
}

func TestFilterListings(t *testing.T) {
	_, _, svc := newListingFixture(t)
	snap := fixtureSnapshot()

	assert.Len(t, svc.Filter(snap, "", "", ""), 5)
	assert.Len(t, svc.Filter(snap, "All", "All", "All"), 5)
	assert.Len(t, svc.Filter(snap, "Chennai", "", ""), 4)
	assert.Len(t, svc.Filter(snap, "Chennai", "Vegetarian", ""), 2)
	assert.Len(t, svc.Filter(snap, "Chennai", "Vegetarian", "Breakfast"), 2)
	assert.Len(t, svc.Filter(snap, "Delhi", "Vegan", "Snacks"), 1)
	assert.Empty(t, svc.Filter(snap, "Delhi", "Vegetarian", ""))
}
