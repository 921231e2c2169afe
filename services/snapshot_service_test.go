package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/config"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestLoadCoercesDirtyCells(t *testing.T) {
	db := openTestDB(t)
	// row 2 has a non-numeric quantity and an unparseable expiry date
	require.NoError(t, db.Exec(
		`INSERT INTO food_listings (food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type)
		 VALUES (1, 'Bread', '5', '2025-06-01', 1, 'Bakery', 'Chennai', 'Vegetarian', 'Breakfast'),
		        (2, 'Rice', 'abc', 'soon', 1, 'Bakery', 'Chennai', 'Vegan', 'Lunch')`).Error)

	snap, err := NewSnapshotService(db, time.Hour).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Listings, 2)

	assert.Equal(t, 5, snap.Listings[0].Quantity)
	require.NotNil(t, snap.Listings[0].ExpiryDate)

	assert.Equal(t, 0, snap.Listings[1].Quantity, "bad quantity coerces to zero, not an error")
	assert.Nil(t, snap.Listings[1].ExpiryDate, "bad date coerces to nil")
}

func TestLoadReturnsCachedSnapshotWithinTTL(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Provider{ProviderID: 1, Name: "A", City: "Delhi"}).Error)

	svc := NewSnapshotService(db, time.Hour)
	first, err := svc.Load(context.Background())
	require.NoError(t, err)

	// a write that bypasses the mutation gateway is invisible until refresh
	require.NoError(t, db.Create(&models.Provider{ProviderID: 2, Name: "B", City: "Pune"}).Error)

	second, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, second.Providers, 1)
}

func TestLoadRefreshesAfterInvalidate(t *testing.T) {
	db := openTestDB(t)
	svc := NewSnapshotService(db, time.Hour)

	first, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, first.Providers)

	require.NoError(t, db.Create(&models.Provider{ProviderID: 1, Name: "A", City: "Delhi"}).Error)
	svc.Invalidate()

	second, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Providers, 1)
}

func TestLoadRefreshesAfterTTLExpires(t *testing.T) {
	db := openTestDB(t)
	svc := NewSnapshotService(db, time.Nanosecond)

	first, err := svc.Load(context.Background())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	second, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestLoadEmptyTables(t *testing.T) {
	db := openTestDB(t)
	snap, err := NewSnapshotService(db, time.Hour).Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Listings)
	assert.Empty(t, snap.Providers)
	assert.Empty(t, snap.Receivers)
	assert.Empty(t, snap.Claims)
}

func TestLoadAllFourTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Provider{ProviderID: 1, Name: "Bakery One", Type: "Bakery", City: "Chennai"}).Error)
	require.NoError(t, db.Create(&models.Receiver{ReceiverID: 1, Name: "Shelter", Type: "NGO", City: "Chennai"}).Error)
	require.NoError(t, db.Create(&models.FoodListing{
		FoodID: 1, FoodName: "Bread", Quantity: 10, ExpiryDate: datePtr(2025, 6, 1),
		ProviderID: 1, ProviderType: "Bakery", Location: "Chennai",
		FoodType: "Vegetarian", MealType: "Breakfast",
	}).Error)
	ts := time.Date(2025, 5, 28, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Claim{ClaimID: 1, FoodID: 1, ReceiverID: 1, Status: models.ClaimPending, Timestamp: &ts}).Error)

	snap, err := NewSnapshotService(db, time.Hour).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Listings, 1)
	require.Len(t, snap.Providers, 1)
	require.Len(t, snap.Receivers, 1)
	require.Len(t, snap.Claims, 1)

	assert.Equal(t, "Bread", snap.Listings[0].FoodName)
	assert.Equal(t, "Bakery One", snap.Providers[0].Name)
	assert.Equal(t, models.ClaimPending, snap.Claims[0].Status)
	require.NotNil(t, snap.Claims[0].Timestamp)
	assert.Equal(t, time.Wednesday, snap.Claims[0].Timestamp.Weekday())
}
