package main

import (
	"log"
	"os"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/config"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/controllers"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/routes"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/services"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/utils"
)

func main() {
	config.LoadEnv()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := utils.InitMailer(); err != nil {
		log.Printf("mailer unavailable: %v", err)
	}

	snap := services.NewSnapshotService(db, services.SnapshotTTLFromEnv())
	insights := services.NewInsightsService()
	hub := services.NewRealtimeHub()
	listings := services.NewListingService(db, snap, hub)
	digest := services.NewDigestService(snap, insights)

	r := routes.SetupRouter(
		controllers.NewInsightsController(snap, insights),
		controllers.NewListingController(snap, listings),
		controllers.NewRealtimeController(hub),
		controllers.NewDigestController(digest),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
