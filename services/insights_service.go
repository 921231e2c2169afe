package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"
)

// ErrNoData marks reports that need at least one row to have an answer
// (e.g. "city with most listings") being asked about an empty table. It is
// distinct from reports that legitimately return an empty list.
var ErrNoData = errors.New("no data available")

// InsightsService is the fixed catalog of insight reports. Every report is
// a pure function of a Snapshot (plus explicit parameters, including the
// current date where one is needed) and never touches storage. Ranked
// reports sort descending by their aggregate and break ties by the group
// key ascending.
type InsightsService struct{}

func NewInsightsService() *InsightsService { return &InsightsService{} }

// ---------- Cities ----------

type CityEntityCount struct {
	City          string `json:"city"`
	ProviderCount int    `json:"provider_count"`
	ReceiverCount int    `json:"receiver_count"`
	TotalEntities int    `json:"total_entities"`
}

// CityEntitySummary counts providers and receivers per city (outer merge:
// a city present on only one side shows a zero for the other).
func (s *InsightsService) CityEntitySummary(snap *Snapshot) []CityEntityCount {
	byCity := map[string]*CityEntityCount{}
	row := func(city string) *CityEntityCount {
		if byCity[city] == nil {
			byCity[city] = &CityEntityCount{City: city}
		}
		return byCity[city]
	}
	for _, p := range snap.Providers {
		row(p.City).ProviderCount++
	}
	for _, r := range snap.Receivers {
		row(r.City).ReceiverCount++
	}

	out := make([]CityEntityCount, 0, len(byCity))
	for _, c := range byCity {
		c.TotalEntities = c.ProviderCount + c.ReceiverCount
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalEntities != out[j].TotalEntities {
			return out[i].TotalEntities > out[j].TotalEntities
		}
		return out[i].City < out[j].City
	})
	return out
}

type CityListingCount struct {
	City     string `json:"city"`
	Listings int    `json:"listings"`
}

// CityWithMostListings ranks listing locations by listing count and returns
// the top city alongside the full ranking. ErrNoData when there are no
// listings at all.
func (s *InsightsService) CityWithMostListings(snap *Snapshot) (CityListingCount, []CityListingCount, error) {
	counts := map[string]int{}
	for _, l := range snap.Listings {
		counts[l.Location]++
	}
	if len(counts) == 0 {
		return CityListingCount{}, nil, ErrNoData
	}

	out := make([]CityListingCount, 0, len(counts))
	for city, n := range counts {
		out = append(out, CityListingCount{City: city, Listings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Listings != out[j].Listings {
			return out[i].Listings > out[j].Listings
		}
		return out[i].City < out[j].City
	})
	return out[0], out, nil
}

// ProvidersInCity lists provider contact details, optionally restricted to
// one city. An empty city or "All" means no filter.
func (s *InsightsService) ProvidersInCity(snap *Snapshot, city string) []models.Provider {
	out := []models.Provider{}
	for _, p := range snap.Providers {
		if city == "" || city == "All" || p.City == city {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ---------- Providers ----------

type TypeQuantity struct {
	Type          string `json:"type"`
	TotalQuantity int    `json:"total_quantity"`
}

// ProviderTypeContribution joins listings to providers and sums the listed
// quantity per provider type. Listings whose provider is missing are
// dropped (inner-join semantics).
func (s *InsightsService) ProviderTypeContribution(snap *Snapshot) []TypeQuantity {
	typeByProvider := map[int]string{}
	for _, p := range snap.Providers {
		typeByProvider[p.ProviderID] = p.Type
	}

	totals := map[string]int{}
	for _, l := range snap.Listings {
		t, ok := typeByProvider[l.ProviderID]
		if !ok {
			continue
		}
		totals[t] += l.Quantity
	}

	out := make([]TypeQuantity, 0, len(totals))
	for t, q := range totals {
		out = append(out, TypeQuantity{Type: t, TotalQuantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].Type < out[j].Type
	})
	return out
}

type TypeAverage struct {
	Type        string  `json:"type"`
	AvgQuantity float64 `json:"avg_quantity"`
}

// AverageQuantityPerProviderType reports the mean listed quantity per
// provider type over the listings joined to providers.
func (s *InsightsService) AverageQuantityPerProviderType(snap *Snapshot) []TypeAverage {
	typeByProvider := map[int]string{}
	for _, p := range snap.Providers {
		typeByProvider[p.ProviderID] = p.Type
	}

	type acc struct {
		sum, n int
	}
	accs := map[string]*acc{}
	for _, l := range snap.Listings {
		t, ok := typeByProvider[l.ProviderID]
		if !ok {
			continue
		}
		if accs[t] == nil {
			accs[t] = &acc{}
		}
		accs[t].sum += l.Quantity
		accs[t].n++
	}

	out := make([]TypeAverage, 0, len(accs))
	for t, a := range accs {
		out = append(out, TypeAverage{Type: t, AvgQuantity: round2(float64(a.sum) / float64(a.n))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgQuantity != out[j].AvgQuantity {
			return out[i].AvgQuantity > out[j].AvgQuantity
		}
		return out[i].Type < out[j].Type
	})
	return out
}

type ProviderQuantity struct {
	ProviderID    int    `json:"provider_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	TotalQuantity int    `json:"total_quantity"`
}

// ProviderDonationTotals sums listed quantity per provider.
func (s *InsightsService) ProviderDonationTotals(snap *Snapshot) []ProviderQuantity {
	totals := map[int]int{}
	for _, l := range snap.Listings {
		totals[l.ProviderID] += l.Quantity
	}

	out := []ProviderQuantity{}
	for _, p := range snap.Providers {
		q, ok := totals[p.ProviderID]
		if !ok {
			continue
		}
		out = append(out, ProviderQuantity{ProviderID: p.ProviderID, Name: p.Name, Type: p.Type, TotalQuantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ProviderID < out[j].ProviderID
	})
	return out
}

type ProviderClaimCount struct {
	ProviderID       int    `json:"provider_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	SuccessfulClaims int    `json:"successful_claims"`
}

// TopProviderBySuccessfulClaims counts Completed claims per provider
// (claims joined to listings to recover the provider). ErrNoData when no
// claim has completed yet.
func (s *InsightsService) TopProviderBySuccessfulClaims(snap *Snapshot) (ProviderClaimCount, []ProviderClaimCount, error) {
	providerByFood := map[int]int{}
	for _, l := range snap.Listings {
		providerByFood[l.FoodID] = l.ProviderID
	}

	counts := map[int]int{}
	for _, c := range snap.Claims {
		if c.Status != models.ClaimCompleted {
			continue
		}
		pid, ok := providerByFood[c.FoodID]
		if !ok {
			continue
		}
		counts[pid]++
	}
	if len(counts) == 0 {
		return ProviderClaimCount{}, nil, ErrNoData
	}

	out := []ProviderClaimCount{}
	for _, p := range snap.Providers {
		n, ok := counts[p.ProviderID]
		if !ok {
			continue
		}
		out = append(out, ProviderClaimCount{ProviderID: p.ProviderID, Name: p.Name, Type: p.Type, SuccessfulClaims: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SuccessfulClaims != out[j].SuccessfulClaims {
			return out[i].SuccessfulClaims > out[j].SuccessfulClaims
		}
		return out[i].ProviderID < out[j].ProviderID
	})
	return out[0], out, nil
}

// ProvidersWithoutClaims returns providers with zero claims against their
// listings: the set difference between all providers and the provider ids
// reachable from claims joined through listings.
func (s *InsightsService) ProvidersWithoutClaims(snap *Snapshot) []models.Provider {
	providerByFood := map[int]int{}
	for _, l := range snap.Listings {
		providerByFood[l.FoodID] = l.ProviderID
	}
	claimed := map[int]bool{}
	for _, c := range snap.Claims {
		if pid, ok := providerByFood[c.FoodID]; ok {
			claimed[pid] = true
		}
	}

	out := []models.Provider{}
	for _, p := range snap.Providers {
		if !claimed[p.ProviderID] {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderID < out[j].ProviderID })
	return out
}

type ProviderListingCount struct {
	ProviderID int    `json:"provider_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	City       string `json:"city"`
	Listings   int    `json:"listings"`
}

// HighlyActiveProviders returns providers with at least minListings
// listings.
func (s *InsightsService) HighlyActiveProviders(snap *Snapshot, minListings int) []ProviderListingCount {
	counts := map[int]int{}
	for _, l := range snap.Listings {
		counts[l.ProviderID]++
	}

	out := []ProviderListingCount{}
	for _, p := range snap.Providers {
		n := counts[p.ProviderID]
		if n < minListings {
			continue
		}
		out = append(out, ProviderListingCount{ProviderID: p.ProviderID, Name: p.Name, Type: p.Type, City: p.City, Listings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Listings != out[j].Listings {
			return out[i].Listings > out[j].Listings
		}
		return out[i].ProviderID < out[j].ProviderID
	})
	return out
}

// ---------- Receivers ----------

type ReceiverClaimTotal struct {
	ReceiverID    int    `json:"receiver_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	TotalQuantity int    `json:"total_quantity"`
}

// TopReceiversByClaimedQuantity joins claims to listings to recover each
// claim's quantity, sums per receiver and keeps the top limit rows
// (limit <= 0 returns everything).
func (s *InsightsService) TopReceiversByClaimedQuantity(snap *Snapshot, limit int) []ReceiverClaimTotal {
	qtyByFood := map[int]int{}
	for _, l := range snap.Listings {
		qtyByFood[l.FoodID] = l.Quantity
	}

	totals := map[int]int{}
	for _, c := range snap.Claims {
		q, ok := qtyByFood[c.FoodID]
		if !ok {
			continue
		}
		totals[c.ReceiverID] += q
	}

	out := []ReceiverClaimTotal{}
	for _, r := range snap.Receivers {
		q, ok := totals[r.ReceiverID]
		if !ok {
			continue
		}
		out = append(out, ReceiverClaimTotal{ReceiverID: r.ReceiverID, Name: r.Name, Type: r.Type, TotalQuantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ReceiverID < out[j].ReceiverID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type ReceiverAvgClaim struct {
	ReceiverID  int     `json:"receiver_id"`
	Name        string  `json:"name"`
	AvgQuantity float64 `json:"avg_quantity"`
}

// AverageQuantityClaimedPerReceiver reports the mean quantity of the
// listings each receiver has claimed.
func (s *InsightsService) AverageQuantityClaimedPerReceiver(snap *Snapshot) []ReceiverAvgClaim {
	qtyByFood := map[int]int{}
	for _, l := range snap.Listings {
		qtyByFood[l.FoodID] = l.Quantity
	}

	type acc struct {
		sum, n int
	}
	accs := map[int]*acc{}
	for _, c := range snap.Claims {
		q, ok := qtyByFood[c.FoodID]
		if !ok {
			continue
		}
		if accs[c.ReceiverID] == nil {
			accs[c.ReceiverID] = &acc{}
		}
		accs[c.ReceiverID].sum += q
		accs[c.ReceiverID].n++
	}

	out := []ReceiverAvgClaim{}
	for _, r := range snap.Receivers {
		a, ok := accs[r.ReceiverID]
		if !ok {
			continue
		}
		out = append(out, ReceiverAvgClaim{ReceiverID: r.ReceiverID, Name: r.Name, AvgQuantity: round2(float64(a.sum) / float64(a.n))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgQuantity != out[j].AvgQuantity {
			return out[i].AvgQuantity > out[j].AvgQuantity
		}
		return out[i].ReceiverID < out[j].ReceiverID
	})
	return out
}

type ReceiverInfo struct {
	ReceiverID int    `json:"receiver_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	City       string `json:"city"`
}

// VeganFoodReceivers lists the receivers that have claimed at least one
// Vegan listing, each receiver once.
func (s *InsightsService) VeganFoodReceivers(snap *Snapshot) []ReceiverInfo {
	veganFood := map[int]bool{}
	for _, l := range snap.Listings {
		if l.FoodType == "Vegan" {
			veganFood[l.FoodID] = true
		}
	}
	claimedBy := map[int]bool{}
	for _, c := range snap.Claims {
		if veganFood[c.FoodID] {
			claimedBy[c.ReceiverID] = true
		}
	}

	out := []ReceiverInfo{}
	for _, r := range snap.Receivers {
		if claimedBy[r.ReceiverID] {
			out = append(out, ReceiverInfo{ReceiverID: r.ReceiverID, Name: r.Name, Type: r.Type, City: r.City})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceiverID < out[j].ReceiverID })
	return out
}

// ---------- Listings ----------

// TotalQuantityAvailable sums the quantity over every listing.
func (s *InsightsService) TotalQuantityAvailable(snap *Snapshot) int {
	total := 0
	for _, l := range snap.Listings {
		total += l.Quantity
	}
	return total
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// FoodTypeCounts counts listings per food type.
func (s *InsightsService) FoodTypeCounts(snap *Snapshot) []CategoryCount {
	counts := map[string]int{}
	for _, l := range snap.Listings {
		counts[l.FoodType]++
	}
	return sortedCategoryCounts(counts)
}

// MealTypeDistribution counts listings per meal type.
func (s *InsightsService) MealTypeDistribution(snap *Snapshot) []CategoryCount {
	counts := map[string]int{}
	for _, l := range snap.Listings {
		counts[l.MealType]++
	}
	return sortedCategoryCounts(counts)
}

type FoodQuantity struct {
	FoodName      string `json:"food_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// TopFoodItemsByQuantity sums listed quantity per food name and keeps the
// top n (ties adjacent, name ascending).
func (s *InsightsService) TopFoodItemsByQuantity(snap *Snapshot, n int) []FoodQuantity {
	totals := map[string]int{}
	for _, l := range snap.Listings {
		totals[l.FoodName] += l.Quantity
	}

	out := make([]FoodQuantity, 0, len(totals))
	for name, q := range totals {
		out = append(out, FoodQuantity{FoodName: name, TotalQuantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].FoodName < out[j].FoodName
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LowQuantityListings returns listings with quantity strictly below the
// threshold, lowest first.
func (s *InsightsService) LowQuantityListings(snap *Snapshot, threshold int) []models.FoodListing {
	out := []models.FoodListing{}
	for _, l := range snap.Listings {
		if l.Quantity < threshold {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].FoodID < out[j].FoodID
	})
	return out
}

// ListingsExpiringWithin returns listings whose expiry date falls between
// today and today+days inclusive, soonest first. The current date is a
// parameter so results are reproducible; listings without a parseable
// expiry are skipped.
func (s *InsightsService) ListingsExpiringWithin(snap *Snapshot, today time.Time, days int) []models.FoodListing {
	from := dayStart(today)
	until := from.AddDate(0, 0, days)

	out := []models.FoodListing{}
	for _, l := range snap.Listings {
		if l.ExpiryDate == nil {
			continue
		}
		d := dayStart(*l.ExpiryDate)
		if d.Before(from) || d.After(until) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(*out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
		}
		return out[i].FoodID < out[j].FoodID
	})
	return out
}

// ---------- Claims ----------

type FoodClaimCount struct {
	FoodID   int    `json:"food_id"`
	FoodName string `json:"food_name"`
	Claims   int    `json:"claims"`
}

// ClaimsPerFoodItem counts claims per listing (claims whose listing is
// gone are dropped).
func (s *InsightsService) ClaimsPerFoodItem(snap *Snapshot) []FoodClaimCount {
	nameByFood := map[int]string{}
	for _, l := range snap.Listings {
		nameByFood[l.FoodID] = l.FoodName
	}

	counts := map[int]int{}
	for _, c := range snap.Claims {
		if _, ok := nameByFood[c.FoodID]; ok {
			counts[c.FoodID]++
		}
	}

	out := make([]FoodClaimCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, FoodClaimCount{FoodID: id, FoodName: nameByFood[id], Claims: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Claims != out[j].Claims {
			return out[i].Claims > out[j].Claims
		}
		return out[i].FoodID < out[j].FoodID
	})
	return out
}

type StatusPercent struct {
	Status  string  `json:"status"`
	Percent float64 `json:"percent"`
}

// ClaimStatusPercentages reports the share of each claim status. Percentages
// sum to 100 for a non-empty claims table; an empty table yields an empty
// slice rather than a division error.
func (s *InsightsService) ClaimStatusPercentages(snap *Snapshot) []StatusPercent {
	counts := map[string]int{}
	for _, c := range snap.Claims {
		counts[c.Status]++
	}
	total := len(snap.Claims)
	if total == 0 {
		return []StatusPercent{}
	}

	out := make([]StatusPercent, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusPercent{Status: status, Percent: round2(float64(n) / float64(total) * 100)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percent != out[j].Percent {
			return out[i].Percent > out[j].Percent
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// MealTypeClaimCounts counts claims per meal type of the claimed listing.
func (s *InsightsService) MealTypeClaimCounts(snap *Snapshot) []CategoryCount {
	mealByFood := map[int]string{}
	for _, l := range snap.Listings {
		mealByFood[l.FoodID] = l.MealType
	}

	counts := map[string]int{}
	for _, c := range snap.Claims {
		if meal, ok := mealByFood[c.FoodID]; ok {
			counts[meal]++
		}
	}
	return sortedCategoryCounts(counts)
}

type DayClaimCount struct {
	Day    string `json:"day"`
	Claims int    `json:"claims"`
}

// ClaimsByDayOfWeek buckets claims by the weekday of their timestamp over
// the canonical Monday..Sunday order, zero-filled. Claims without a
// parseable timestamp are skipped.
func (s *InsightsService) ClaimsByDayOfWeek(snap *Snapshot) []DayClaimCount {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	counts := map[time.Weekday]int{}
	for _, c := range snap.Claims {
		if c.Timestamp == nil {
			continue
		}
		counts[c.Timestamp.Weekday()]++
	}

	out := make([]DayClaimCount, 0, len(order))
	for _, d := range order {
		out = append(out, DayClaimCount{Day: d.String(), Claims: counts[d]})
	}
	return out
}

type QuantityComparison struct {
	TotalListed  int `json:"total_listed"`
	TotalClaimed int `json:"total_claimed"`
}

// ClaimedVsListedQuantity compares the quantity listed overall with the
// quantity reachable through claims (each claim counts the full listing
// quantity, as the original did).
func (s *InsightsService) ClaimedVsListedQuantity(snap *Snapshot) QuantityComparison {
	qtyByFood := map[int]int{}
	listed := 0
	for _, l := range snap.Listings {
		qtyByFood[l.FoodID] = l.Quantity
		listed += l.Quantity
	}
	claimed := 0
	for _, c := range snap.Claims {
		claimed += qtyByFood[c.FoodID]
	}
	return QuantityComparison{TotalListed: listed, TotalClaimed: claimed}
}

// ---------- helpers ----------

func sortedCategoryCounts(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
