package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/services"

	"github.com/gin-gonic/gin"
)

// InsightsController serves the report catalog. Each handler loads the
// (cached) snapshot and runs one pure report over it.
type InsightsController struct {
	Snap *services.SnapshotService
	Svc  *services.InsightsService
}

func NewInsightsController(snap *services.SnapshotService, svc *services.InsightsService) *InsightsController {
	return &InsightsController{Snap: snap, Svc: svc}
}

func (h *InsightsController) snapshot(c *gin.Context) (*services.Snapshot, bool) {
	snap, err := h.Snap.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return snap, true
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}

// GET /insights/cities
func (h *InsightsController) CitySummary(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.CityEntitySummary(snap))
}

// GET /insights/provider-type-contribution
func (h *InsightsController) ProviderTypeContribution(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ProviderTypeContribution(snap))
}

// GET /insights/providers?city=Chennai (omit or "All" for every city)
func (h *InsightsController) ProvidersInCity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ProvidersInCity(snap, c.Query("city")))
}

// GET /insights/top-receivers?limit=10
func (h *InsightsController) TopReceivers(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 10)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.TopReceiversByClaimedQuantity(snap, limit))
}

// GET /insights/total-quantity
func (h *InsightsController) TotalQuantity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_quantity": h.Svc.TotalQuantityAvailable(snap)})
}

// GET /insights/top-city
func (h *InsightsController) TopCity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	top, ranking, err := h.Svc.CityWithMostListings(snap)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"top": top, "ranking": ranking})
}

// GET /insights/food-types
func (h *InsightsController) FoodTypes(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.FoodTypeCounts(snap))
}

// GET /insights/claims-per-food
func (h *InsightsController) ClaimsPerFood(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ClaimsPerFoodItem(snap))
}

// GET /insights/top-provider-successful-claims
func (h *InsightsController) TopProviderSuccess(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	top, ranking, err := h.Svc.TopProviderBySuccessfulClaims(snap)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"top": top, "ranking": ranking})
}

// GET /insights/claim-status-percentages
func (h *InsightsController) ClaimStatusPercentages(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ClaimStatusPercentages(snap))
}

// GET /insights/avg-claimed-per-receiver
func (h *InsightsController) AvgClaimedPerReceiver(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.AverageQuantityClaimedPerReceiver(snap))
}

// GET /insights/meal-type-claims
func (h *InsightsController) MealTypeClaims(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.MealTypeClaimCounts(snap))
}

// GET /insights/provider-donations
func (h *InsightsController) ProviderDonations(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ProviderDonationTotals(snap))
}

// GET /insights/low-quantity?threshold=10
func (h *InsightsController) LowQuantity(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	threshold, ok := intQuery(c, "threshold", 10)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.LowQuantityListings(snap, threshold))
}

// GET /insights/providers-without-claims
func (h *InsightsController) ProvidersWithoutClaims(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ProvidersWithoutClaims(snap))
}

// GET /insights/avg-quantity-per-provider-type
func (h *InsightsController) AvgQuantityPerProviderType(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.AverageQuantityPerProviderType(snap))
}

// GET /insights/top-foods?n=5
func (h *InsightsController) TopFoods(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	n, ok := intQuery(c, "n", 5)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.TopFoodItemsByQuantity(snap, n))
}

// GET /insights/claims-by-day
func (h *InsightsController) ClaimsByDay(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ClaimsByDayOfWeek(snap))
}

// GET /insights/vegan-receivers
func (h *InsightsController) VeganReceivers(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.VeganFoodReceivers(snap))
}

// GET /insights/claimed-vs-listed
func (h *InsightsController) ClaimedVsListed(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.ClaimedVsListedQuantity(snap))
}

// GET /insights/expiring?days=7&today=2025-08-01
// `today` is optional and exists so callers (and tests) can pin the date.
func (h *InsightsController) Expiring(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	days, ok := intQuery(c, "days", 7)
	if !ok {
		return
	}
	today := time.Now()
	if v := c.Query("today"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today date, use YYYY-MM-DD"})
			return
		}
		today = t
	}
	c.JSON(http.StatusOK, h.Svc.ListingsExpiringWithin(snap, today, days))
}

// GET /insights/meal-types
func (h *InsightsController) MealTypes(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.MealTypeDistribution(snap))
}

// GET /insights/active-providers?min=5
func (h *InsightsController) ActiveProviders(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	min, ok := intQuery(c, "min", 5)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Svc.HighlyActiveProviders(snap, min))
}
