package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/avelina-r/foodgram/backend/config"
	"github.com/avelina-r/foodgram/backend/internal/database"
	"github.com/avelina-r/foodgram/backend/internal/models"
)

// Bulk-loads ingredient reference data from a CSV file with
// "name,measurement_unit" rows. Rows already present are skipped.
func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer f.Close()

	loaded, skipped, err := load(db, f)
	if err != nil {
		log.Fatalf("Load failed: %v", err)
	}
	log.Printf("Loaded %d ingredients, skipped %d existing", loaded, skipped)
}

func load(db *gorm.DB, r io.Reader) (loaded, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return loaded, skipped, err
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			continue
		}
		if max := config.DefaultLimits().MaxIngredientLen; len([]rune(name)) > max || len([]rune(unit)) > max {
			return loaded, skipped, fmt.Errorf("ingredient %q: field exceeds %d characters", name, max)
		}

		var count int64
		if err := db.Model(&models.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", name, unit).
			Count(&count).Error; err != nil {
			return loaded, skipped, err
		}
		if count > 0 {
			skipped++
			continue
		}

		if err := db.Create(&models.Ingredient{Name: name, MeasurementUnit: unit}).Error; err != nil {
			return loaded, skipped, err
		}
		loaded++
	}
	return loaded, skipped, nil
}
