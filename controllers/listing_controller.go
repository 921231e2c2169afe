package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/services"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	Snap *services.SnapshotService
	Svc  *services.ListingService
}

func NewListingController(snap *services.SnapshotService, svc *services.ListingService) *ListingController {
	return &ListingController{Snap: snap, Svc: svc}
}

type listingBody struct {
	FoodName   string `json:"food_name" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	ProviderID int    `json:"provider_id"`
	FoodType   string `json:"food_type" binding:"required,oneof=Vegetarian Non-Vegetarian Vegan"`
	MealType   string `json:"meal_type" binding:"required,oneof=Breakfast Lunch Dinner Snacks"`
}

func (b *listingBody) expiry(c *gin.Context) (*time.Time, bool) {
	t, err := time.Parse("2006-01-02", b.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_date, use YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// GET /listings?location=...&food_type=...&meal_type=...  ("All" or omitted = no filter)
func (h *ListingController) List(c *gin.Context) {
	snap, err := h.Snap.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := h.Svc.Filter(snap, c.Query("location"), c.Query("food_type"), c.Query("meal_type"))
	c.JSON(http.StatusOK, out)
}

// POST /listings
func (h *ListingController) Create(c *gin.Context) {
	var body listingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiry, ok := body.expiry(c)
	if !ok {
		return
	}

	listing, err := h.Svc.Insert(c.Request.Context(), services.NewListingInput{
		FoodName:   body.FoodName,
		Quantity:   body.Quantity,
		ExpiryDate: expiry,
		ProviderID: body.ProviderID,
		FoodType:   body.FoodType,
		MealType:   body.MealType,
	})
	if err != nil {
		if errors.Is(err, services.ErrProviderNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// PUT /listings/:id
func (h *ListingController) Update(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	var body listingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expiry, ok := body.expiry(c)
	if !ok {
		return
	}

	listing, err := h.Svc.Update(c.Request.Context(), foodID, services.UpdateListingInput{
		FoodName:   body.FoodName,
		Quantity:   body.Quantity,
		ExpiryDate: expiry,
		FoodType:   body.FoodType,
		MealType:   body.MealType,
	})
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DELETE /listings/:id
func (h *ListingController) Delete(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), foodID); err != nil {
		var dep *services.DependentClaimsError
		if errors.As(err, &dep) {
			c.JSON(http.StatusConflict, gin.H{"error": dep.Error(), "dependent_claims": dep.Count})
			return
		}
		if errors.Is(err, services.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
