package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/utils"

	"gorm.io/gorm"
)

const defaultSnapshotTTL = time.Hour

// Snapshot is one full in-memory copy of the four tables. Reports treat it
// as read-only; a new snapshot replaces it wholesale.
type Snapshot struct {
	Listings  []models.FoodListing
	Providers []models.Provider
	Receivers []models.Receiver
	Claims    []models.Claim
	LoadedAt  time.Time
}

// SnapshotService loads the four tables, coercing dirty cells instead of
// failing, and caches the result until the TTL elapses or a write
// invalidates it.
type SnapshotService struct {
	db  *gorm.DB
	ttl time.Duration

	mu      sync.Mutex
	current *Snapshot
}

func NewSnapshotService(db *gorm.DB, ttl time.Duration) *SnapshotService {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotService{db: db, ttl: ttl}
}

// SnapshotTTLFromEnv reads SNAPSHOT_TTL (Go duration syntax, e.g. "1h") and
// falls back to the one-hour default.
func SnapshotTTLFromEnv() time.Duration {
	if v := os.Getenv("SNAPSHOT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultSnapshotTTL
}

// Load returns the cached snapshot when it is still fresh, otherwise
// re-reads all four tables. A storage error fails the whole load; no
// partial snapshot is ever returned.
func (s *SnapshotService) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && time.Since(s.current.LoadedAt) < s.ttl {
		return s.current, nil
	}

	snap, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	s.current = snap
	return snap, nil
}

// Invalidate drops the cached snapshot so the next Load re-queries.
// Called by the mutation gateway after every successful write.
func (s *SnapshotService) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *SnapshotService) loadAll(ctx context.Context) (*Snapshot, error) {
	listingRows, err := s.rawRows(ctx, "food_listings")
	if err != nil {
		return nil, err
	}
	providerRows, err := s.rawRows(ctx, "providers")
	if err != nil {
		return nil, err
	}
	receiverRows, err := s.rawRows(ctx, "receivers")
	if err != nil {
		return nil, err
	}
	claimRows, err := s.rawRows(ctx, "claims")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{LoadedAt: time.Now()}
	for _, row := range listingRows {
		snap.Listings = append(snap.Listings, listingFromRow(row))
	}
	for _, row := range providerRows {
		snap.Providers = append(snap.Providers, providerFromRow(row))
	}
	for _, row := range receiverRows {
		snap.Receivers = append(snap.Receivers, receiverFromRow(row))
	}
	for _, row := range claimRows {
		snap.Claims = append(snap.Claims, claimFromRow(row))
	}
	return snap, nil
}

// rawRows fetches a table as untyped rows so that a single malformed cell
// can be coerced rather than aborting the scan.
func (s *SnapshotService) rawRows(ctx context.Context, table string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	return rows, nil
}

// Per-row coercion: numeric columns fall back to 0, date columns to nil.

func listingFromRow(row map[string]interface{}) models.FoodListing {
	return models.FoodListing{
		FoodID:       utils.CoerceInt(row["food_id"]),
		FoodName:     utils.CoerceString(row["food_name"]),
		Quantity:     utils.CoerceInt(row["quantity"]),
		ExpiryDate:   utils.CoerceTime(row["expiry_date"]),
		ProviderID:   utils.CoerceInt(row["provider_id"]),
		ProviderType: utils.CoerceString(row["provider_type"]),
		Location:     utils.CoerceString(row["location"]),
		FoodType:     utils.CoerceString(row["food_type"]),
		MealType:     utils.CoerceString(row["meal_type"]),
	}
}

func providerFromRow(row map[string]interface{}) models.Provider {
	return models.Provider{
		ProviderID: utils.CoerceInt(row["provider_id"]),
		Name:       utils.CoerceString(row["name"]),
		Type:       utils.CoerceString(row["type"]),
		Address:    utils.CoerceString(row["address"]),
		City:       utils.CoerceString(row["city"]),
		Contact:    utils.CoerceString(row["contact"]),
	}
}

func receiverFromRow(row map[string]interface{}) models.Receiver {
	return models.Receiver{
		ReceiverID: utils.CoerceInt(row["receiver_id"]),
		Name:       utils.CoerceString(row["name"]),
		Type:       utils.CoerceString(row["type"]),
		City:       utils.CoerceString(row["city"]),
		Contact:    utils.CoerceString(row["contact"]),
	}
}

func claimFromRow(row map[string]interface{}) models.Claim {
	return models.Claim{
		ClaimID:    utils.CoerceInt(row["claim_id"]),
		FoodID:     utils.CoerceInt(row["food_id"]),
		ReceiverID: utils.CoerceInt(row["receiver_id"]),
		Status:     utils.CoerceString(row["status"]),
		Timestamp:  utils.CoerceTime(row["timestamp"]),
	}
}
