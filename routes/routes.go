package routes

import (
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/controllers"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	insights *controllers.InsightsController,
	listings *controllers.ListingController,
	realtime *controllers.RealtimeController,
	digest *controllers.DigestController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())

	r.POST("/auth/login", controllers.Login)

	// Read-only dashboard surface
	in := r.Group("/insights")
	{
		in.GET("/cities", insights.CitySummary)
		in.GET("/provider-type-contribution", insights.ProviderTypeContribution)
		in.GET("/providers", insights.ProvidersInCity)
		in.GET("/top-receivers", insights.TopReceivers)
		in.GET("/total-quantity", insights.TotalQuantity)
		in.GET("/top-city", insights.TopCity)
		in.GET("/food-types", insights.FoodTypes)
		in.GET("/claims-per-food", insights.ClaimsPerFood)
		in.GET("/top-provider-successful-claims", insights.TopProviderSuccess)
		in.GET("/claim-status-percentages", insights.ClaimStatusPercentages)
		in.GET("/avg-claimed-per-receiver", insights.AvgClaimedPerReceiver)
		in.GET("/meal-type-claims", insights.MealTypeClaims)
		in.GET("/provider-donations", insights.ProviderDonations)
		in.GET("/low-quantity", insights.LowQuantity)
		in.GET("/providers-without-claims", insights.ProvidersWithoutClaims)
		in.GET("/avg-quantity-per-provider-type", insights.AvgQuantityPerProviderType)
		in.GET("/top-foods", insights.TopFoods)
		in.GET("/claims-by-day", insights.ClaimsByDay)
		in.GET("/vegan-receivers", insights.VeganReceivers)
		in.GET("/claimed-vs-listed", insights.ClaimedVsListed)
		in.GET("/expiring", insights.Expiring)
		in.GET("/meal-types", insights.MealTypes)
		in.GET("/active-providers", insights.ActiveProviders)
	}

	r.GET("/listings", listings.List)
	r.GET("/ws/updates", realtime.UpdatesWS)

	// Write path, operator only
	write := r.Group("/")
	write.Use(middlewares.AuthMiddleware())
	{
		write.POST("/listings", listings.Create)
		write.PUT("/listings/:id", listings.Update)
		write.DELETE("/listings/:id", listings.Delete)
		write.POST("/digest/expiry", digest.SendExpiryDigest)
	}

	return r
}
