// Command seed performs the one-time bulk load of the four tables from the
// CSV exports (providers_data.csv, receivers_data.csv,
// food_listings_data.csv, claims_data.csv). Existing rows are replaced.
// Cells follow the same coercion rules as the live loader: bad numbers
// become 0, bad dates become null.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/config"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/models"
	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/utils"

	"gorm.io/gorm"
)

const batchSize = 500

func main() {
	dir := flag.String("dir", ".", "directory holding the four CSV files")
	flag.Parse()

	config.LoadEnv()
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := seedProviders(db, *dir+"/providers_data.csv"); err != nil {
		log.Fatalf("providers: %v", err)
	}
	if err := seedReceivers(db, *dir+"/receivers_data.csv"); err != nil {
		log.Fatalf("receivers: %v", err)
	}
	if err := seedListings(db, *dir+"/food_listings_data.csv"); err != nil {
		log.Fatalf("food listings: %v", err)
	}
	if err := seedClaims(db, *dir+"/claims_data.csv"); err != nil {
		log.Fatalf("claims: %v", err)
	}

	log.Println("seeding complete")
}

// readCSV yields each data row as a header→cell map.
func readCSV(path string, row func(map[string]string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", path, err)
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				m[col] = rec[i]
			}
		}
		row(m)
	}
}

func replaceAll[T any](db *gorm.DB, model any, rows []T) error {
	if err := db.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.CreateInBatches(rows, batchSize).Error
}

func seedProviders(db *gorm.DB, path string) error {
	var rows []models.Provider
	err := readCSV(path, func(m map[string]string) {
		rows = append(rows, models.Provider{
			ProviderID: utils.CoerceInt(m["Provider_ID"]),
			Name:       m["Name"],
			Type:       m["Type"],
			Address:    m["Address"],
			City:       m["City"],
			Contact:    m["Contact"],
		})
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d providers from %s", len(rows), path)
	return replaceAll(db, &models.Provider{}, rows)
}

func seedReceivers(db *gorm.DB, path string) error {
	var rows []models.Receiver
	err := readCSV(path, func(m map[string]string) {
		rows = append(rows, models.Receiver{
			ReceiverID: utils.CoerceInt(m["Receiver_ID"]),
			Name:       m["Name"],
			Type:       m["Type"],
			City:       m["City"],
			Contact:    m["Contact"],
		})
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d receivers from %s", len(rows), path)
	return replaceAll(db, &models.Receiver{}, rows)
}

func seedListings(db *gorm.DB, path string) error {
	var rows []models.FoodListing
	err := readCSV(path, func(m map[string]string) {
		rows = append(rows, models.FoodListing{
			FoodID:       utils.CoerceInt(m["Food_ID"]),
			FoodName:     m["Food_Name"],
			Quantity:     utils.CoerceInt(m["Quantity"]),
			ExpiryDate:   utils.CoerceTime(m["Expiry_Date"]),
			ProviderID:   utils.CoerceInt(m["Provider_ID"]),
			ProviderType: m["Provider_Type"],
			Location:     m["Location"],
			FoodType:     m["Food_Type"],
			MealType:     m["Meal_Type"],
		})
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d food listings from %s", len(rows), path)
	return replaceAll(db, &models.FoodListing{}, rows)
}

func seedClaims(db *gorm.DB, path string) error {
	var rows []models.Claim
	err := readCSV(path, func(m map[string]string) {
		rows = append(rows, models.Claim{
			ClaimID:    utils.CoerceInt(m["Claim_ID"]),
			FoodID:     utils.CoerceInt(m["Food_ID"]),
			ReceiverID: utils.CoerceInt(m["Receiver_ID"]),
			Status:     m["Status"],
			Timestamp:  utils.CoerceTime(m["Timestamp"]),
		})
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d claims from %s", len(rows), path)
	return replaceAll(db, &models.Claim{}, rows)
}
